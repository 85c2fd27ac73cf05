package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles <user>...",
		Short: "Resolve user profiles through the profile directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Signing.Unsigned = true
			w, err := wire()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			found, err := w.Users.ResolveProfiles(ctx, args)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(args))
			seen := make(map[string]bool)
			for _, id := range args {
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
			sort.Strings(ids)
			for _, id := range ids {
				p, ok := found[id]
				if !ok {
					warnColor.Printf("%s\t(unavailable)\n", id)
					continue
				}
				fmt.Printf("%s\t%s\t%s\n", id, p.Name, p.AvatarURL)
			}
			return nil
		},
	}
}
