package signature_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imkit/internal/domain"
	"imkit/internal/domain/types"
	"imkit/internal/services/signature"
)

// call records one invocation of the host signing function.
type call struct {
	clientID       string
	conversationID string
	action         string
	clientIDs      []string
}

// recordingSigner answers every call with the configured result and records
// what it was asked.
type recordingSigner struct {
	mu    sync.Mutex
	calls []call
	sig   *domain.Signature
	err   error
}

func (r *recordingSigner) generate(
	_ context.Context,
	clientID, conversationID, action string,
	clientIDs []string,
	cb domain.SignatureCallback,
) {
	r.mu.Lock()
	r.calls = append(r.calls, call{clientID, conversationID, action, clientIDs})
	r.mu.Unlock()
	cb(r.sig, r.err)
}

func newLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func mustDescriptor(t *testing.T, initiator, conv string, kind domain.ActionKind, targets ...string) domain.ActionDescriptor {
	t.Helper()
	d, err := domain.NewActionDescriptor(initiator, conv, kind, targets)
	require.NoError(t, err)
	return d
}

func allKinds(t *testing.T) []domain.ActionDescriptor {
	return []domain.ActionDescriptor{
		mustDescriptor(t, "u1", "", domain.ActionOpen),
		mustDescriptor(t, "u1", "c1", domain.ActionStart, "u2"),
		mustDescriptor(t, "u1", "c1", domain.ActionAdd, "u2", "u3"),
		mustDescriptor(t, "u1", "c1", domain.ActionRemove, "u3"),
	}
}

func TestAuthorize_InvokesCallbackOnceWithDescriptorFields(t *testing.T) {
	for _, d := range allKinds(t) {
		t.Run(d.Kind().String(), func(t *testing.T) {
			sig := &domain.Signature{Value: "sig-" + d.Kind().String(), Timestamp: 1700000000, Nonce: "n1"}
			host := &recordingSigner{sig: sig}
			logger, _ := newLogger()
			g := signature.New(host.generate, logger)

			res, err := g.Authorize(context.Background(), d)
			require.NoError(t, err)

			require.Len(t, host.calls, 1)
			got := host.calls[0]
			assert.Equal(t, "u1", got.clientID)
			assert.Equal(t, d.ConversationID(), got.conversationID)
			assert.Equal(t, d.Kind().String(), got.action)
			assert.Equal(t, d.TargetClientIDs(), got.clientIDs)

			require.NotNil(t, res.Signature)
			assert.False(t, res.Unsigned)
			assert.Equal(t, *sig, *res.Signature)
		})
	}
}

func TestAuthorize_ActionStrings(t *testing.T) {
	want := map[domain.ActionKind]string{
		domain.ActionOpen:   "open",
		domain.ActionStart:  "start",
		domain.ActionAdd:    "add",
		domain.ActionRemove: "remove",
	}
	host := &recordingSigner{sig: &domain.Signature{Value: "s"}}
	g := signature.New(host.generate, nil)
	for _, d := range allKinds(t) {
		_, err := g.Authorize(context.Background(), d)
		require.NoError(t, err)
	}
	require.Len(t, host.calls, 4)
	for i, d := range allKinds(t) {
		assert.Equal(t, want[d.Kind()], host.calls[i].action)
	}
}

func TestAuthorize_UnsignedMode(t *testing.T) {
	logger, buf := newLogger()
	g := signature.NewUnsigned(logger)
	assert.Equal(t, signature.ModeUnsigned, g.Mode())

	for _, d := range allKinds(t) {
		done := make(chan struct{})
		var (
			res domain.SignatureResult
			err error
		)
		go func() {
			defer close(done)
			res, err = g.Authorize(context.Background(), d)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("%s: unsigned authorize blocked", d.Kind())
		}
		require.NoError(t, err)
		assert.True(t, res.Unsigned)
		assert.Nil(t, res.Signature)
	}
	assert.Contains(t, buf.String(), `"mode":"unsigned"`)
	assert.NotContains(t, buf.String(), types.ErrCodeDenied)
}

func TestNew_NilCallbackIsUnsigned(t *testing.T) {
	g := signature.New(nil, nil)
	assert.Equal(t, signature.ModeUnsigned, g.Mode())
	res, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "", domain.ActionOpen))
	require.NoError(t, err)
	assert.True(t, res.Unsigned)
}

func TestAuthorize_HostErrorIsDenied(t *testing.T) {
	hostErr := errors.New("denied")
	host := &recordingSigner{err: hostErr}
	logger, buf := newLogger()
	g := signature.New(host.generate, logger)

	_, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "c1", domain.ActionAdd, "u2", "u3"))
	require.Error(t, err)
	assert.True(t, types.IsDenied(err))
	assert.Equal(t, types.ErrCodeDenied, types.ErrorCode(err))
	assert.ErrorIs(t, err, hostErr)

	var ae *types.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "denied", ae.Message)
	assert.Len(t, host.calls, 1, "no retry after denial")
	assert.Contains(t, buf.String(), types.ErrCodeDenied)
	assert.NotContains(t, buf.String(), `"mode":"unsigned"`)
}

func TestAuthorize_HostContractViolations(t *testing.T) {
	cases := map[string]*recordingSigner{
		"neither": {},
		"both":    {sig: &domain.Signature{Value: "s"}, err: errors.New("boom")},
	}
	for name, host := range cases {
		t.Run(name, func(t *testing.T) {
			g := signature.New(host.generate, nil)
			res, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "", domain.ActionOpen))
			require.Error(t, err)
			assert.Equal(t, types.ErrCodeHostContractViolation, types.ErrorCode(err))
			assert.True(t, types.IsDenied(err), "violations fail closed")
			assert.Nil(t, res.Signature)
			assert.False(t, res.Unsigned)
		})
	}
}

func TestAuthorize_SecondResolutionDoesNotOverride(t *testing.T) {
	logger, buf := newLogger()
	twice := func(_ context.Context, _, _, _ string, _ []string, cb domain.SignatureCallback) {
		cb(&domain.Signature{Value: "first"}, nil)
		cb(nil, errors.New("second"))
	}
	g := signature.New(twice, logger)

	res, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "", domain.ActionOpen))
	require.NoError(t, err)
	require.NotNil(t, res.Signature)
	assert.Equal(t, "first", res.Signature.Value)
	assert.Contains(t, buf.String(), types.ErrCodeHostContractViolation)
}

func TestAuthorize_AsyncCallback(t *testing.T) {
	async := func(_ context.Context, clientID, _, action string, _ []string, cb domain.SignatureCallback) {
		go func() {
			time.Sleep(5 * time.Millisecond)
			cb(&domain.Signature{Value: clientID + ":" + action}, nil)
		}()
	}
	g := signature.New(async, nil)
	res, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "", domain.ActionOpen))
	require.NoError(t, err)
	assert.Equal(t, "u1:open", res.Signature.Value)
}

func TestAuthorize_InvalidDescriptorNeverReachesHost(t *testing.T) {
	host := &recordingSigner{sig: &domain.Signature{Value: "s"}}
	g := signature.New(host.generate, nil)

	_, err := g.Authorize(context.Background(), domain.ActionDescriptor{})
	require.Error(t, err)
	assert.True(t, types.IsInvalidDescriptor(err))
	assert.False(t, types.IsDenied(err))
	assert.Empty(t, host.calls)
}

func TestAuthorize_HangingHostBoundedByCaller(t *testing.T) {
	hold := make(chan domain.SignatureCallback, 1)
	hang := func(_ context.Context, _, _, _ string, _ []string, cb domain.SignatureCallback) {
		hold <- cb
	}
	logger, buf := newLogger()
	g := signature.New(hang, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Authorize(ctx, mustDescriptor(t, "u1", "", domain.ActionOpen))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, types.IsDenied(err))

	cb := <-hold
	cb(&domain.Signature{Value: "late"}, nil)
	assert.Contains(t, buf.String(), "after the caller stopped waiting")
}

func TestAuthorize_IdenticalDescriptorsAreNotDeduplicated(t *testing.T) {
	host := &recordingSigner{sig: &domain.Signature{Value: "s"}}
	g := signature.New(host.generate, nil)
	d := mustDescriptor(t, "u1", "c1", domain.ActionAdd, "u2")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Authorize(context.Background(), d)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, host.calls, 8)
}

func TestAuthorize_HostMutationAfterDeliveryIsIgnored(t *testing.T) {
	sig := &domain.Signature{Value: "orig"}
	mutate := func(_ context.Context, _, _, _ string, _ []string, cb domain.SignatureCallback) {
		cb(sig, nil)
		sig.Value = "changed"
	}
	g := signature.New(mutate, nil)
	res, err := g.Authorize(context.Background(), mustDescriptor(t, "u1", "", domain.ActionOpen))
	require.NoError(t, err)
	assert.Equal(t, "orig", res.Signature.Value)
}
