package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"imkit/internal/crypto"
	"imkit/internal/store"
)

func fingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the signing key fingerprint and public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := store.NewKeyFileStore(cfg.Home).LoadSigningKey(cfg.Passphrase)
			if err != nil {
				return err
			}
			defer crypto.Wipe(priv)
			pub := crypto.PublicKey(priv)
			fmt.Printf("Fingerprint: %s\nPublic key:  %s\n", crypto.Fingerprint(pub), crypto.B64(pub))
			return nil
		},
	}
}
