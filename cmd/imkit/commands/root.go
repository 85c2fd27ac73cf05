package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"imkit/internal/app"
	"imkit/internal/domain"
)

var (
	configPath string
	home       string
	backendURL string
	passphrase string
	profiles   string
	clientID   string
	unsigned   bool
	verbose    bool
	timeout    time.Duration

	cfg    *app.Config
	wiring *app.Wire
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
)

func Execute() error {
	root := &cobra.Command{
		Use:           "imkit",
		Short:         "Drive the IM kit from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("home") {
				c.Home = home
			}
			if flags.Changed("backend") {
				c.BackendURL = backendURL
			}
			if flags.Changed("passphrase") {
				c.Passphrase = passphrase
			}
			if flags.Changed("profiles") {
				c.ProfilesFile = profiles
			}
			if flags.Changed("unsigned") {
				c.Signing.Unsigned = unsigned
			}
			if flags.Changed("verbose") {
				c.Logging.Verbose = verbose
			}
			cfg = c
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (.toml, .yaml or .json)")
	pf.StringVar(&home, "home", "", "state dir (default ~/.imkit)")
	pf.StringVar(&backendURL, "backend", "", "backend base URL (e.g. http://127.0.0.1:8080)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the signing key")
	pf.StringVar(&profiles, "profiles", "", "YAML or JSON profile directory file")
	pf.StringVarP(&clientID, "client", "u", "", "client id to open the session as")
	pf.BoolVar(&unsigned, "unsigned", false, "run without a signing callback")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")

	root.AddCommand(
		keygenCmd(),
		fingerprintCmd(),
		openCmd(),
		createCmd(),
		inviteCmd(),
		kickCmd(),
		profilesCmd(),
		settingsCmd(),
		badgeCmd(),
	)

	err := root.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// wire builds the dependency graph on first use.
func wire() (*app.Wire, error) {
	if wiring != nil {
		return wiring, nil
	}
	w, err := app.NewWire(*cfg, app.Hooks{}, os.Stderr)
	if err != nil {
		return nil, err
	}
	wiring = w
	return w, nil
}

// withSession opens a session for --client, runs fn and closes it again.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, w *app.Wire) error) error {
	if clientID == "" {
		return fmt.Errorf("client id required (-u)")
	}
	w, err := wire()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := w.Sessions.OpenSession(ctx, clientID); err != nil {
		return err
	}
	defer func() { _ = w.Sessions.CloseSession(context.WithoutCancel(ctx)) }()
	return fn(ctx, w)
}

func reportError(err error) {
	if code := domain.ErrorCode(err); code != "" {
		errColor.Fprintf(os.Stderr, "%s: ", code)
		fmt.Fprintln(os.Stderr, err)
		return
	}
	errColor.Fprint(os.Stderr, "error: ")
	fmt.Fprintln(os.Stderr, err)
}
