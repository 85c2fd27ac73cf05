package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"imkit/internal/domain"
)

// ErrNotOpen is returned by conversation calls made before Open.
var ErrNotOpen = errors.New("backend client not open")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// HTTP is a JSON/HTTP IM backend client bound to one client id.
type HTTP struct {
	Base string
	HTTP *http.Client

	mu       sync.Mutex
	clientID domain.ClientID
}

// NewHTTP returns a client for base. A nil hc uses http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Open logs clientID in and binds this client to it.
func (c *HTTP) Open(ctx context.Context, clientID domain.ClientID, sig *domain.Signature) error {
	if err := c.post(ctx, "/v1/sessions/open", openRequest{ClientID: clientID, Signature: sig}, nil); err != nil {
		return err
	}
	c.mu.Lock()
	c.clientID = clientID
	c.mu.Unlock()
	return nil
}

// Close logs clientID out and unbinds the client.
func (c *HTTP) Close(ctx context.Context, clientID domain.ClientID) error {
	c.mu.Lock()
	if c.clientID == clientID {
		c.clientID = ""
	}
	c.mu.Unlock()
	return c.post(ctx, "/v1/sessions/close", closeRequest{ClientID: clientID}, nil)
}

func (c *HTTP) CreateConversation(
	ctx context.Context,
	req domain.CreateConversationRequest,
	sig *domain.Signature,
) (domain.Conversation, error) {
	me, err := c.bound()
	if err != nil {
		return domain.Conversation{}, err
	}
	var out domain.Conversation
	if err := c.post(ctx, "/v1/conversations", createRequest{
		ClientID:     me,
		Conversation: req,
		Signature:    sig,
	}, &out); err != nil {
		return domain.Conversation{}, err
	}
	return out, nil
}

func (c *HTTP) Invite(
	ctx context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
	sig *domain.Signature,
) error {
	return c.members(ctx, conversationID, "invite", clientIDs, sig)
}

func (c *HTTP) Kick(
	ctx context.Context,
	conversationID domain.ConversationID,
	clientIDs []domain.ClientID,
	sig *domain.Signature,
) error {
	return c.members(ctx, conversationID, "kick", clientIDs, sig)
}

func (c *HTTP) SyncBadge(ctx context.Context, clientID domain.ClientID, count int, devPush bool) error {
	return c.post(ctx, "/v1/badge", badgeRequest{ClientID: clientID, Count: count, DevPush: devPush}, nil)
}

// Conversation fetches a conversation; used by the CLI to show results.
func (c *HTTP) Conversation(ctx context.Context, id domain.ConversationID) (domain.Conversation, error) {
	var out domain.Conversation
	if err := c.do(ctx, http.MethodGet, "/v1/conversations/"+url.PathEscape(id), nil, &out); err != nil {
		return domain.Conversation{}, err
	}
	return out, nil
}

func (c *HTTP) members(
	ctx context.Context,
	conversationID domain.ConversationID,
	verb string,
	clientIDs []domain.ClientID,
	sig *domain.Signature,
) error {
	me, err := c.bound()
	if err != nil {
		return err
	}
	path := "/v1/conversations/" + url.PathEscape(conversationID) + "/" + verb
	return c.post(ctx, path, membersRequest{ClientID: me, ClientIDs: clientIDs, Signature: sig}, nil)
}

func (c *HTTP) bound() (domain.ClientID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clientID == "" {
		return "", ErrNotOpen
	}
	return c.clientID, nil
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *HTTP) do(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var e errorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Message: e.Error}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Compile-time assertion that HTTP implements domain.IMClient.
var _ domain.IMClient = (*HTTP)(nil)
