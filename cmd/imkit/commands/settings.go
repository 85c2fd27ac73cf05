package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"imkit/internal/app"
)

func settingsCmd() *cobra.Command {
	var (
		logs    string
		devPush string
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Settings do not need a signing key.
			cfg.Signing.Unsigned = true
			w, err := wire()
			if err != nil {
				return err
			}
			if logs != "" {
				on, err := strconv.ParseBool(logs)
				if err != nil {
					return fmt.Errorf("--logs: %w", err)
				}
				if err := w.Settings.SetAllLogsEnabled(on); err != nil {
					return err
				}
			}
			if devPush != "" {
				on, err := strconv.ParseBool(devPush)
				if err != nil {
					return fmt.Errorf("--dev-push: %w", err)
				}
				if err := w.Settings.SetUseDevPushCertificate(on); err != nil {
					return err
				}
			}
			fmt.Printf("version:   %s\n", w.Settings.Version())
			fmt.Printf("all logs:  %t\n", w.Settings.AllLogsEnabled())
			fmt.Printf("dev push:  %t\n", w.Settings.UseDevPushCertificate())
			return nil
		},
	}
	cmd.Flags().StringVar(&logs, "logs", "", "enable all logs (true/false)")
	cmd.Flags().StringVar(&devPush, "dev-push", "", "use the development push certificate (true/false)")
	return cmd
}

func badgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badge <count>",
		Short: "Push the unread badge count to the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("badge count: %w", err)
			}
			return withSession(cmd, func(ctx context.Context, w *app.Wire) error {
				if err := w.Settings.SyncBadge(ctx, count); err != nil {
					return err
				}
				okColor.Printf("Badge set to %d\n", count)
				return nil
			})
		},
	}
}
