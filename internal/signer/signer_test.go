package signer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imkit/internal/crypto"
	"imkit/internal/domain"
	"imkit/internal/domain/types"
	"imkit/internal/services/signature"
	"imkit/internal/signer"
)

func newSigner(t *testing.T, opts signer.Options) (*signer.Signer, *signer.Verifier) {
	t.Helper()
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	s, err := signer.New(priv, opts)
	require.NoError(t, err)
	return s, signer.NewVerifier(pub, time.Minute)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	s, v := newSigner(t, signer.Options{})
	a := signer.Action{ClientID: "u1", ConversationID: "c1", Action: "add", ClientIDs: []string{"u3", "u2"}}

	sig, err := s.Sign(a)
	require.NoError(t, err)
	assert.NotEmpty(t, sig.Nonce)
	assert.NotZero(t, sig.Timestamp)
	require.NoError(t, v.Verify(&sig, a))

	// Member order does not matter.
	reordered := a
	reordered.ClientIDs = []string{"u2", "u3"}
	assert.NoError(t, v.Verify(&sig, reordered))
}

func TestVerify_RejectsMismatch(t *testing.T) {
	s, v := newSigner(t, signer.Options{})
	a := signer.Action{ClientID: "u1", ConversationID: "c1", Action: "add", ClientIDs: []string{"u2"}}
	sig, err := s.Sign(a)
	require.NoError(t, err)

	mutations := map[string]signer.Action{
		"client":       {ClientID: "u9", ConversationID: "c1", Action: "add", ClientIDs: []string{"u2"}},
		"conversation": {ClientID: "u1", ConversationID: "c9", Action: "add", ClientIDs: []string{"u2"}},
		"action":       {ClientID: "u1", ConversationID: "c1", Action: "remove", ClientIDs: []string{"u2"}},
		"members":      {ClientID: "u1", ConversationID: "c1", Action: "add", ClientIDs: []string{"u2", "u3"}},
	}
	for name, m := range mutations {
		assert.ErrorIs(t, v.Verify(&sig, m), signer.ErrBadSignature, name)
	}

	tampered := sig
	tampered.Nonce = "other"
	assert.ErrorIs(t, v.Verify(&tampered, a), signer.ErrBadSignature)

	assert.ErrorIs(t, v.Verify(nil, a), signer.ErrBadSignature)
}

func TestVerify_WrongKey(t *testing.T) {
	s, _ := newSigner(t, signer.Options{})
	_, other := newSigner(t, signer.Options{})
	a := signer.Action{ClientID: "u1", Action: "open"}
	sig, err := s.Sign(a)
	require.NoError(t, err)
	assert.ErrorIs(t, other.Verify(&sig, a), signer.ErrBadSignature)
}

func TestVerify_Stale(t *testing.T) {
	old := time.Now().Add(-time.Hour)
	s, v := newSigner(t, signer.Options{Now: func() time.Time { return old }})
	a := signer.Action{ClientID: "u1", Action: "open"}
	sig, err := s.Sign(a)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Verify(&sig, a), signer.ErrBadSignature)
}

func TestGenerate_ThroughGateway(t *testing.T) {
	s, v := newSigner(t, signer.Options{Deny: []domain.ActionKind{domain.ActionRemove}})
	g := signature.New(s.Generate, nil)

	d, err := domain.NewActionDescriptor("u1", "c1", domain.ActionAdd, []string{"u2"})
	require.NoError(t, err)
	res, err := g.Authorize(context.Background(), d)
	require.NoError(t, err)
	require.NotNil(t, res.Signature)
	assert.NoError(t, v.Verify(res.Signature, signer.Action{
		ClientID: "u1", ConversationID: "c1", Action: "add", ClientIDs: []string{"u2"},
	}))

	d, err = domain.NewActionDescriptor("u1", "c1", domain.ActionRemove, []string{"u2"})
	require.NoError(t, err)
	_, err = g.Authorize(context.Background(), d)
	assert.True(t, types.IsDenied(err))
	assert.Contains(t, err.Error(), "denied by local policy")
}
