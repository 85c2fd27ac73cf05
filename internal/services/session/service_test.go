package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imkit/internal/domain"
	"imkit/internal/domain/types"
	"imkit/internal/services/session"
	"imkit/internal/services/signature"
	"imkit/internal/testutil/fakeim"
)

func TestOpenSession_ForwardsSignature(t *testing.T) {
	sig := &domain.Signature{Value: "opaque-\x00-bytes", Timestamp: 1700000000, Nonce: "n-1"}
	host := &fakeim.Signer{Sig: sig}
	backend := &fakeim.Client{}
	svc := session.New(signature.New(host.Generate, nil), backend, nil)

	require.NoError(t, svc.OpenSession(context.Background(), "u1"))

	assert.Equal(t, domain.SessionOpen, svc.State())
	assert.Equal(t, "u1", svc.ClientID())

	calls := host.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, fakeim.SignCall{ClientID: "u1", ConversationID: "", Action: "open"}, calls[0])

	opens := backend.CallsTo("Open")
	require.Len(t, opens, 1)
	assert.Equal(t, "u1", opens[0].ClientID)
	require.NotNil(t, opens[0].Signature)
	assert.Equal(t, *sig, *opens[0].Signature)
}

func TestOpenSession_DeniedNeverReachesBackend(t *testing.T) {
	hostErr := errors.New("denied")
	host := &fakeim.Signer{Err: hostErr}
	backend := &fakeim.Client{}
	svc := session.New(signature.New(host.Generate, nil), backend, nil)

	err := svc.OpenSession(context.Background(), "u1")
	require.Error(t, err)
	assert.True(t, types.IsDenied(err))
	assert.ErrorIs(t, err, hostErr)

	var ae *types.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "denied", ae.Message)

	assert.Empty(t, backend.Calls())
	assert.Equal(t, domain.SessionClosed, svc.State())
}

func TestOpenSession_UnsignedMode(t *testing.T) {
	backend := &fakeim.Client{}
	svc := session.New(signature.NewUnsigned(nil), backend, nil)

	require.NoError(t, svc.OpenSession(context.Background(), "u1"))
	opens := backend.CallsTo("Open")
	require.Len(t, opens, 1)
	assert.Nil(t, opens[0].Signature)
}

func TestOpenSession_EmptyClientIsInvalid(t *testing.T) {
	host := &fakeim.Signer{Sig: &domain.Signature{Value: "s"}}
	backend := &fakeim.Client{}
	svc := session.New(signature.New(host.Generate, nil), backend, nil)

	err := svc.OpenSession(context.Background(), "")
	assert.True(t, types.IsInvalidDescriptor(err))
	assert.Empty(t, host.Calls())
	assert.Empty(t, backend.Calls())
}

func TestOpenSession_BackendFailureLeavesClosed(t *testing.T) {
	backend := &fakeim.Client{Err: errors.New("unreachable")}
	svc := session.New(signature.NewUnsigned(nil), backend, nil)

	err := svc.OpenSession(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, types.IsDenied(err))
	assert.Equal(t, domain.SessionClosed, svc.State())
}

func TestOpenSession_WhileOpenIsNoop(t *testing.T) {
	host := &fakeim.Signer{Sig: &domain.Signature{Value: "s"}}
	backend := &fakeim.Client{}
	svc := session.New(signature.New(host.Generate, nil), backend, nil)

	require.NoError(t, svc.OpenSession(context.Background(), "u1"))
	require.NoError(t, svc.OpenSession(context.Background(), "u1"))

	assert.Len(t, host.Calls(), 1)
	assert.Len(t, backend.CallsTo("Open"), 1)
}

func TestCloseSession_AlwaysSucceeds(t *testing.T) {
	backend := &fakeim.Client{}
	svc := session.New(signature.NewUnsigned(nil), backend, nil)

	// Never opened.
	require.NoError(t, svc.CloseSession(context.Background()))
	assert.Empty(t, backend.Calls())

	require.NoError(t, svc.OpenSession(context.Background(), "u1"))
	require.NoError(t, svc.CloseSession(context.Background()))
	assert.Equal(t, domain.SessionClosed, svc.State())
	assert.Equal(t, "", svc.ClientID())
	require.Len(t, backend.CallsTo("Close"), 1)

	// Already closed.
	require.NoError(t, svc.CloseSession(context.Background()))
	assert.Len(t, backend.CallsTo("Close"), 1)
}

func TestCloseSession_AfterDeniedOpen(t *testing.T) {
	host := &fakeim.Signer{Err: errors.New("denied")}
	svc := session.New(signature.New(host.Generate, nil), &fakeim.Client{}, nil)

	require.Error(t, svc.OpenSession(context.Background(), "u1"))
	require.NoError(t, svc.CloseSession(context.Background()))
}

func TestCloseSession_BackendErrorStillCloses(t *testing.T) {
	backend := &fakeim.Client{}
	svc := session.New(signature.NewUnsigned(nil), backend, nil)
	require.NoError(t, svc.OpenSession(context.Background(), "u1"))

	backend.Err = errors.New("gone")
	require.NoError(t, svc.CloseSession(context.Background()))
	assert.Equal(t, domain.SessionClosed, svc.State())
}

func TestOpenSession_ConcurrentOpensShareOneFlight(t *testing.T) {
	var invocations atomic.Int32
	release := make(chan struct{})
	slow := func(
		_ context.Context,
		_ domain.ClientID, _ domain.ConversationID, _ string, _ []domain.ClientID,
		cb domain.SignatureCallback,
	) {
		invocations.Add(1)
		go func() {
			<-release
			cb(&domain.Signature{Value: "s"}, nil)
		}()
	}
	backend := &fakeim.Client{}
	svc := session.New(signature.New(slow, nil), backend, nil)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.OpenSession(context.Background(), "u1"))
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, domain.SessionOpen, svc.State())
	assert.Equal(t, int32(1), invocations.Load())
	assert.Len(t, backend.CallsTo("Open"), 1)
}

// heldSigner counts invocations and answers only after release is closed.
func heldSigner(invocations *atomic.Int32, release <-chan struct{}) domain.GenerateSignatureFunc {
	return func(
		_ context.Context,
		_ domain.ClientID, _ domain.ConversationID, _ string, _ []domain.ClientID,
		cb domain.SignatureCallback,
	) {
		invocations.Add(1)
		go func() {
			<-release
			cb(&domain.Signature{Value: "s"}, nil)
		}()
	}
}

func TestOpenSession_ConcurrentDifferentClientsOpenOnce(t *testing.T) {
	var invocations atomic.Int32
	release := make(chan struct{})
	backend := &fakeim.Client{}
	svc := session.New(signature.New(heldSigner(&invocations, release), nil), backend, nil)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, id := range []domain.ClientID{"u1", "u2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = svc.OpenSession(context.Background(), id)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), invocations.Load(), "second open must wait for the first")
	close(release)
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, int32(1), invocations.Load())
	opens := backend.CallsTo("Open")
	require.Len(t, opens, 1)
	assert.Equal(t, domain.SessionOpen, svc.State())
	assert.Equal(t, opens[0].ClientID, svc.ClientID())
}

func TestOpenSession_WaitingOpenHonorsContext(t *testing.T) {
	var invocations atomic.Int32
	release := make(chan struct{})
	backend := &fakeim.Client{}
	svc := session.New(signature.New(heldSigner(&invocations, release), nil), backend, nil)

	done := make(chan error, 1)
	go func() { done <- svc.OpenSession(context.Background(), "u1") }()
	require.Eventually(t, func() bool { return invocations.Load() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := svc.OpenSession(ctx, "u2")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), invocations.Load())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "u1", svc.ClientID())
	assert.Len(t, backend.CallsTo("Open"), 1)
}
