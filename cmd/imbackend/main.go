package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"imkit/internal/app"
	"imkit/internal/backend"
	"imkit/internal/crypto"
	"imkit/internal/signer"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		verifyKey  string
	)
	cmd := &cobra.Command{
		Use:          "imbackend",
		Short:        "In-memory IM backend for development",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("verify-key") {
				cfg.Signing.VerifyKey = verifyKey
			}
			return serve(cmd.Context(), cfg, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (.toml, .yaml or .json)")
	cmd.Flags().StringVar(&listen, "listen", ":8080", "listen address")
	cmd.Flags().StringVar(&verifyKey, "verify-key", "", "base64 Ed25519 public key; enables signature checks")
	return cmd
}

func serve(parent context.Context, cfg *app.Config, configPath string) error {
	level := new(slog.LevelVar)
	logger := app.NewLogger(cfg.Logging, os.Stderr, level)
	applyLevel(level, cfg.Logging.Verbose)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var verifier *signer.Verifier
	if cfg.Signing.VerifyKey != "" {
		pub, err := crypto.ParsePublicKey(cfg.Signing.VerifyKey)
		if err != nil {
			return err
		}
		verifier = signer.NewVerifier(pub, cfg.MaxAge())
		logger.Info("signature verification enabled", "kid", crypto.Fingerprint(pub))
	} else {
		logger.Warn("signature verification disabled")
	}

	if configPath != "" {
		err := app.Watch(ctx, configPath, func(c *app.Config) {
			applyLevel(level, c.Logging.Verbose)
		}, logger)
		if err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           backend.NewServer(verifier, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("backend listening", "addr", cfg.Listen)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// applyLevel keeps the access log (info) visible unless verbose asks for more.
func applyLevel(level *slog.LevelVar, verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}
