// Package fakeim provides a recording domain.IMClient for tests.
package fakeim

import (
	"context"
	"sync"

	"imkit/internal/domain"
)

// Call is one recorded backend call.
type Call struct {
	Method         string
	ClientID       domain.ClientID
	ConversationID domain.ConversationID
	ClientIDs      []domain.ClientID
	Signature      *domain.Signature
	Request        domain.CreateConversationRequest
	Badge          int
	DevPush        bool
}

// Client records every call and answers with Err when set.
type Client struct {
	mu    sync.Mutex
	calls []Call

	// Err, when non-nil, is returned by every method after recording.
	Err error
}

// Calls returns a copy of the recorded calls.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallsTo returns the recorded calls of one method.
func (c *Client) CallsTo(method string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

func (c *Client) record(call Call) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
	return c.Err
}

func (c *Client) Open(_ context.Context, clientID domain.ClientID, sig *domain.Signature) error {
	return c.record(Call{Method: "Open", ClientID: clientID, Signature: sig})
}

func (c *Client) Close(_ context.Context, clientID domain.ClientID) error {
	return c.record(Call{Method: "Close", ClientID: clientID})
}

func (c *Client) CreateConversation(
	_ context.Context,
	req domain.CreateConversationRequest,
	sig *domain.Signature,
) (domain.Conversation, error) {
	if err := c.record(Call{
		Method:         "CreateConversation",
		ClientID:       req.Creator,
		ConversationID: req.ID,
		ClientIDs:      req.Members,
		Signature:      sig,
		Request:        req,
	}); err != nil {
		return domain.Conversation{}, err
	}
	return domain.Conversation{
		ID:         req.ID,
		Creator:    req.Creator,
		Members:    req.Members,
		Name:       req.Name,
		Attributes: req.Attributes,
	}, nil
}

func (c *Client) Invite(
	_ context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
	sig *domain.Signature,
) error {
	return c.record(Call{Method: "Invite", ConversationID: conversationID, ClientIDs: clientIDs, Signature: sig})
}

func (c *Client) Kick(
	_ context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
	sig *domain.Signature,
) error {
	return c.record(Call{Method: "Kick", ConversationID: conversationID, ClientIDs: clientIDs, Signature: sig})
}

func (c *Client) SyncBadge(_ context.Context, clientID domain.ClientID, count int, devPush bool) error {
	return c.record(Call{Method: "SyncBadge", ClientID: clientID, Badge: count, DevPush: devPush})
}

// Compile-time assertion that Client implements domain.IMClient.
var _ domain.IMClient = (*Client)(nil)
