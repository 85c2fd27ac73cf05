package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"

	"imkit/internal/crypto"
	"imkit/internal/domain"
)

// Options tune a Signer.
type Options struct {
	// Deny lists action kinds the signer refuses, answering with an error.
	Deny []domain.ActionKind
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Signer signs actions with an Ed25519 key.
type Signer struct {
	signer jose.Signer
	kid    string
	deny   map[string]bool
	logger *slog.Logger
	now    func() time.Time
}

// New returns a Signer for key.
func New(key ed25519.PrivateKey, opts Options) (*Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("signing key: want %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}
	kid := crypto.Fingerprint(crypto.PublicKey(key))
	js, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.EdDSA, Key: key},
		(&jose.SignerOptions{}).WithType(tokenType).WithHeader("kid", kid),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	s := &Signer{
		signer: js,
		kid:    kid,
		deny:   make(map[string]bool, len(opts.Deny)),
		logger: opts.Logger,
		now:    opts.Now,
	}
	for _, k := range opts.Deny {
		s.deny[k.String()] = true
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "signer", "kid", kid)
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// KeyID returns the fingerprint used as the JOSE "kid".
func (s *Signer) KeyID() string { return s.kid }

// Sign produces the signature for one action.
func (s *Signer) Sign(a Action) (domain.Signature, error) {
	if s.deny[a.Action] {
		return domain.Signature{}, fmt.Errorf("action %q denied by local policy", a.Action)
	}
	claims := Claims{
		ClientID:       a.ClientID,
		ConversationID: a.ConversationID,
		Action:         a.Action,
		Members:        canonicalMembers(a.ClientIDs),
		IssuedAt:       s.now().Unix(),
		Nonce:          uuid.NewString(),
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return domain.Signature{}, err
	}
	obj, err := s.signer.Sign(payload)
	if err != nil {
		return domain.Signature{}, fmt.Errorf("sign %s: %w", a.Action, err)
	}
	token, err := obj.CompactSerialize()
	if err != nil {
		return domain.Signature{}, fmt.Errorf("serialize %s signature: %w", a.Action, err)
	}
	return domain.Signature{Value: token, Timestamp: claims.IssuedAt, Nonce: claims.Nonce}, nil
}

// Generate matches domain.GenerateSignatureFunc. It signs on its own
// goroutine and resolves callback exactly once.
func (s *Signer) Generate(
	ctx context.Context,
	clientID domain.ClientID,
	conversationID domain.ConversationID,
	action string,
	clientIDs []domain.ClientID,
	callback domain.SignatureCallback,
) {
	go func() {
		if err := ctx.Err(); err != nil {
			callback(nil, err)
			return
		}
		sig, err := s.Sign(Action{
			ClientID:       clientID,
			ConversationID: conversationID,
			Action:         action,
			ClientIDs:      clientIDs,
		})
		if err != nil {
			s.logger.Debug("refused to sign", "action", action, "client", clientID, "error", err)
			callback(nil, err)
			return
		}
		callback(&sig, nil)
	}()
}
