package signer

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-jose/go-jose/v4"

	"imkit/internal/domain"
)

// ErrBadSignature is returned for any signature that does not verify.
var ErrBadSignature = errors.New("bad action signature")

// Verifier checks action signatures against a public key.
type Verifier struct {
	pub    ed25519.PublicKey
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier returns a Verifier. A zero maxAge disables the freshness check.
func NewVerifier(pub ed25519.PublicKey, maxAge time.Duration) *Verifier {
	return &Verifier{pub: pub, maxAge: maxAge, now: time.Now}
}

// Verify checks that sig was produced for exactly a.
func (v *Verifier) Verify(sig *domain.Signature, a Action) error {
	if sig == nil || sig.Value == "" {
		return fmt.Errorf("%w: missing", ErrBadSignature)
	}
	obj, err := jose.ParseSigned(sig.Value, []jose.SignatureAlgorithm{jose.EdDSA})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	payload, err := obj.Verify(v.pub)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return fmt.Errorf("%w: payload: %v", ErrBadSignature, err)
	}
	switch {
	case c.ClientID != a.ClientID:
		return fmt.Errorf("%w: signed for client %q", ErrBadSignature, c.ClientID)
	case c.ConversationID != a.ConversationID:
		return fmt.Errorf("%w: signed for conversation %q", ErrBadSignature, c.ConversationID)
	case c.Action != a.Action:
		return fmt.Errorf("%w: signed for action %q", ErrBadSignature, c.Action)
	case !slices.Equal(c.Members, canonicalMembers(a.ClientIDs)):
		return fmt.Errorf("%w: member list differs", ErrBadSignature)
	case c.IssuedAt != sig.Timestamp || c.Nonce != sig.Nonce:
		return fmt.Errorf("%w: timestamp or nonce differs from envelope", ErrBadSignature)
	}
	if v.maxAge > 0 {
		age := v.now().Sub(time.Unix(c.IssuedAt, 0))
		if age > v.maxAge || age < -v.maxAge {
			return fmt.Errorf("%w: issued %s ago", ErrBadSignature, age.Round(time.Second))
		}
	}
	return nil
}
