package interfaces

import (
	"context"

	domaintypes "imkit/internal/domain/types"
)

// IMClient is how we talk to the IM backend, all with context. A nil
// signature means the action runs unsigned.
type IMClient interface {
	Open(ctx context.Context, clientID domaintypes.ClientID, sig *domaintypes.Signature) error
	Close(ctx context.Context, clientID domaintypes.ClientID) error

	CreateConversation(
		ctx context.Context,
		req domaintypes.CreateConversationRequest,
		sig *domaintypes.Signature,
	) (domaintypes.Conversation, error)
	Invite(
		ctx context.Context,
		conversationID domaintypes.ConversationID,
		clientIDs []domaintypes.ClientID,
		sig *domaintypes.Signature,
	) error
	Kick(
		ctx context.Context,
		conversationID domaintypes.ConversationID,
		clientIDs []domaintypes.ClientID,
		sig *domaintypes.Signature,
	) error

	SyncBadge(ctx context.Context, clientID domaintypes.ClientID, count int, devPush bool) error
}
