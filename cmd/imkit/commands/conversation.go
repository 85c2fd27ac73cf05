package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"imkit/internal/app"
)

func createCmd() *cobra.Command {
	var (
		name  string
		attrs []string
	)
	cmd := &cobra.Command{
		Use:   "create <member>...",
		Short: "Create a conversation with the given members",
		RunE: func(cmd *cobra.Command, args []string) error {
			attributes, err := parseAttrs(attrs)
			if err != nil {
				return err
			}
			return withSession(cmd, func(ctx context.Context, w *app.Wire) error {
				conv, err := w.Conversations.CreateConversation(ctx, args, name, attributes)
				if err != nil {
					return err
				}
				okColor.Printf("Conversation %s created\n", conv.ID)
				fmt.Printf("Members: %s\n", strings.Join(conv.Members, ", "))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "conversation name")
	cmd.Flags().StringSliceVar(&attrs, "attr", nil, "attribute key=value (repeatable)")
	return cmd
}

func inviteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invite <conversation> <member>...",
		Short: "Add members to a conversation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, w *app.Wire) error {
				if err := w.Conversations.AddMembers(ctx, args[0], args[1:]); err != nil {
					return err
				}
				okColor.Printf("Added %d member(s) to %s\n", len(args)-1, args[0])
				return nil
			})
		},
	}
}

func kickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <conversation> <member>...",
		Short: "Remove members from a conversation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, w *app.Wire) error {
				if err := w.Conversations.RemoveMembers(ctx, args[0], args[1:]); err != nil {
					return err
				}
				okColor.Printf("Removed %d member(s) from %s\n", len(args)-1, args[0])
				return nil
			})
		},
	}
}

func parseAttrs(kvs []string) (map[string]string, error) {
	if len(kvs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("attribute %q: want key=value", kv)
		}
		out[k] = v
	}
	return out, nil
}
