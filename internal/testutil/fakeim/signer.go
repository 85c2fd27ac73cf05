package fakeim

import (
	"context"
	"sync"

	"imkit/internal/domain"
)

// SignCall is one recorded invocation of a host signing function.
type SignCall struct {
	ClientID       domain.ClientID
	ConversationID domain.ConversationID
	Action         string
	ClientIDs      []domain.ClientID
}

// Signer is a host signing function that answers every call with Sig or Err.
type Signer struct {
	mu    sync.Mutex
	calls []SignCall

	Sig *domain.Signature
	Err error
}

// Generate matches domain.GenerateSignatureFunc.
func (s *Signer) Generate(
	_ context.Context,
	clientID domain.ClientID,
	conversationID domain.ConversationID,
	action string,
	clientIDs []domain.ClientID,
	callback domain.SignatureCallback,
) {
	s.mu.Lock()
	s.calls = append(s.calls, SignCall{clientID, conversationID, action, clientIDs})
	sig, err := s.Sig, s.Err
	s.mu.Unlock()
	callback(sig, err)
}

// Calls returns a copy of the recorded calls.
func (s *Signer) Calls() []SignCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SignCall(nil), s.calls...)
}
