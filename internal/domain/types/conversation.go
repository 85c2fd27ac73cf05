package types

// CreateConversationRequest is what the conversation facade sends to the
// backend after a start action has been authorized.
type CreateConversationRequest struct {
	ID         ConversationID    `json:"id"`
	Creator    ClientID          `json:"creator"`
	Members    []ClientID        `json:"members"`
	Name       string            `json:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Conversation is a conversation as acknowledged by the backend.
type Conversation struct {
	ID         ConversationID    `json:"id"`
	Creator    ClientID          `json:"creator"`
	Members    []ClientID        `json:"members"`
	Name       string            `json:"name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
