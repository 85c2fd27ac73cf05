package commands

import (
	"context"

	"github.com/spf13/cobra"

	"imkit/internal/app"
	"imkit/internal/services/signature"
)

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open a session for --client and close it again",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(_ context.Context, w *app.Wire) error {
				if w.Gateway.Mode() == signature.ModeUnsigned {
					warnColor.Printf("Session open for %s (unsigned)\n", clientID)
					return nil
				}
				okColor.Printf("Session open for %s (signed, key %s)\n", clientID, w.Signer.KeyID())
				return nil
			})
		},
	}
}
