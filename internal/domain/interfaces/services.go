package interfaces

import (
	"context"

	domaintypes "imkit/internal/domain/types"
)

// SessionService opens and closes the IM client for the local peer.
type SessionService interface {
	OpenSession(ctx context.Context, clientID domaintypes.ClientID) error
	CloseSession(ctx context.Context) error
	State() domaintypes.SessionState
	ClientID() domaintypes.ClientID
}

// FetchProfilesCallback delivers the outcome of a profile fetch. On failure
// the host passes nil profiles and the reason.
type FetchProfilesCallback func(profiles []domaintypes.Profile, err error)

// FetchProfilesFunc is the host's batch profile lookup. It may resolve
// synchronously or from another goroutine, and must call callback exactly once.
type FetchProfilesFunc func(
	ctx context.Context,
	userIDs []domaintypes.ClientID,
	callback FetchProfilesCallback,
)

// UserSystemService resolves peer profiles through the host's user system.
type UserSystemService interface {
	ResolveProfiles(
		ctx context.Context,
		userIDs []domaintypes.ClientID,
	) (map[domaintypes.ClientID]domaintypes.Profile, error)
}

// SignatureCallback delivers the host's signature for one action. Exactly
// one of sig and err must be non-nil.
type SignatureCallback func(sig *domaintypes.Signature, err error)

// GenerateSignatureFunc signs one action. action is one of "open", "start",
// "add" or "remove"; conversationID is "" for open. The function must call
// callback exactly once.
type GenerateSignatureFunc func(
	ctx context.Context,
	clientID domaintypes.ClientID,
	conversationID domaintypes.ConversationID,
	action string,
	clientIDs []domaintypes.ClientID,
	callback SignatureCallback,
)

// SignatureService authorizes security-sensitive actions.
type SignatureService interface {
	Authorize(
		ctx context.Context,
		descriptor domaintypes.ActionDescriptor,
	) (domaintypes.SignatureResult, error)
}

// ConversationService creates conversations and changes their membership.
type ConversationService interface {
	CreateConversation(
		ctx context.Context,
		members []domaintypes.ClientID,
		name string,
		attributes map[string]string,
	) (domaintypes.Conversation, error)
	AddMembers(
		ctx context.Context,
		conversationID domaintypes.ConversationID,
		clientIDs []domaintypes.ClientID,
	) error
	RemoveMembers(
		ctx context.Context,
		conversationID domaintypes.ConversationID,
		clientIDs []domaintypes.ClientID,
	) error
}

// OpenProfileFunc hands a profile over to the host UI. hostContext is the
// host's view context and is opaque to imkit.
type OpenProfileFunc func(userID domaintypes.ClientID, hostContext any)

// UIService forwards UI hand-offs to the host.
type UIService interface {
	OpenProfile(userID domaintypes.ClientID, hostContext any) bool
}

// SettingService exposes global toggles and the badge sync trigger.
type SettingService interface {
	SetAllLogsEnabled(enabled bool) error
	AllLogsEnabled() bool
	Version() string
	SyncBadge(ctx context.Context, count int) error
	SetUseDevPushCertificate(enabled bool) error
	UseDevPushCertificate() bool
}
