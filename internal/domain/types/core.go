package types

// ClientID identifies a peer in the host's user system.
type ClientID = string

// ConversationID identifies a conversation on the IM backend.
type ConversationID = string

// SessionState is the externally observable state of the IM session.
type SessionState string

const (
	SessionClosed SessionState = "closed"
	SessionOpen   SessionState = "open"
)

// String returns the string form of the state.
func (s SessionState) String() string { return string(s) }
