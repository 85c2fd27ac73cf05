package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"imkit/internal/crypto"
	"imkit/internal/store"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate the signing key and store it sealed under the passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}
			priv, pub, err := crypto.GenerateEd25519()
			if err != nil {
				return err
			}
			defer crypto.Wipe(priv)
			if err := store.NewKeyFileStore(cfg.Home).SaveSigningKey(cfg.Passphrase, priv); err != nil {
				return err
			}
			okColor.Println("Signing key created.")
			fmt.Printf("Fingerprint: %s\nPublic key:  %s\n", crypto.Fingerprint(pub), crypto.B64(pub))
			return nil
		},
	}
}
