package signature

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"imkit/internal/domain"
	"imkit/internal/domain/types"
	"imkit/internal/util/oneshot"
)

// Mode tells whether the gateway enforces signatures.
type Mode string

const (
	// ModeSigned routes every action through the host signing function.
	ModeSigned Mode = "signed"
	// ModeUnsigned lets every action through without a signature.
	ModeUnsigned Mode = "unsigned"
)

// Gateway routes action descriptors through the host signing function.
// The signing function is fixed at construction and only read afterwards.
type Gateway struct {
	generate domain.GenerateSignatureFunc
	logger   *slog.Logger
}

// resolution is one host answer as received by the callback.
type resolution struct {
	sig *domain.Signature
	err error
}

// New returns a gateway that signs with generate. A nil generate selects
// unsigned mode; NewUnsigned states that intent explicitly.
func New(generate domain.GenerateSignatureFunc, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		generate: generate,
		logger:   logger.With("component", "signature"),
	}
	if generate == nil {
		g.logger.Info("no signing callback registered, actions run unsigned", "mode", ModeUnsigned)
	}
	return g
}

// NewUnsigned returns a gateway in unsigned mode, for deployments that run
// without signature enforcement.
func NewUnsigned(logger *slog.Logger) *Gateway { return New(nil, logger) }

// Mode reports whether the gateway is signing.
func (g *Gateway) Mode() Mode {
	if g.generate == nil {
		return ModeUnsigned
	}
	return ModeSigned
}

// Authorize resolves d through the host signing function and returns the
// signature to attach to the backend call.
//
// It blocks the calling goroutine until the host resolves or ctx is done,
// and invokes the host exactly once per call.
func (g *Gateway) Authorize(
	ctx context.Context,
	d domain.ActionDescriptor,
) (domain.SignatureResult, error) {
	if err := d.Validate(); err != nil {
		g.logger.Error("rejected action descriptor",
			"action", d.Kind(),
			"initiator", d.InitiatorID(),
			"conversation", d.ConversationID(),
			"code", types.ErrCodeInvalidDescriptor,
			"error", err,
		)
		return domain.SignatureResult{}, err
	}

	if g.generate == nil {
		g.logger.Info("authorization unavailable",
			"mode", ModeUnsigned,
			"action", d.Kind(),
			"initiator", d.InitiatorID(),
			"conversation", d.ConversationID(),
		)
		return domain.SignatureResult{Unsigned: true}, nil
	}

	start := time.Now()
	log := g.logger.With(
		"action", d.Kind(),
		"initiator", d.InitiatorID(),
		"conversation", d.ConversationID(),
	)
	slot := oneshot.New[resolution](oneshot.Hooks{
		Duplicate: func(attempt int) {
			log.Warn("signing callback resolved more than once, keeping first result",
				"code", types.ErrCodeHostContractViolation,
				"attempt", attempt,
			)
		},
		Late: func() {
			log.Warn("signing callback resolved after the caller stopped waiting")
		},
	})

	g.generate(ctx, d.InitiatorID(), d.ConversationID(), d.Kind().String(), d.TargetClientIDs(),
		func(sig *domain.Signature, err error) {
			r := resolution{err: err}
			if sig != nil {
				cp := *sig
				r.sig = &cp
			}
			slot.Resolve(r)
		})

	r, err := slot.Wait(ctx)
	if err != nil {
		log.Warn("gave up waiting for signing callback", "error", err)
		return domain.SignatureResult{}, fmt.Errorf("await %s signature: %w", d.Kind(), err)
	}
	return g.normalize(log, r, time.Since(start))
}

// normalize turns a host resolution into a result or an authorization error.
func (g *Gateway) normalize(
	log *slog.Logger,
	r resolution,
	took time.Duration,
) (domain.SignatureResult, error) {
	var authErr *types.AuthError
	switch {
	case r.sig == nil && r.err == nil:
		authErr = types.HostContractViolation("signing callback resolved with neither signature nor error")
	case r.sig != nil && r.err != nil:
		authErr = types.HostContractViolation("signing callback resolved with both signature and error")
	case r.err != nil:
		authErr = types.AuthorizationDenied(r.err)
	}

	if authErr != nil {
		log.Warn("authorization decision",
			"decision", "denied",
			"code", authErr.Code,
			"reason", authErr.Message,
			"duration_us", took.Microseconds(),
		)
		return domain.SignatureResult{}, authErr
	}

	log.Info("authorization decision",
		"decision", "granted",
		"mode", ModeSigned,
		"duration_us", took.Microseconds(),
	)
	return domain.SignatureResult{Signature: r.sig}, nil
}

// Compile-time assertion that Gateway implements domain.SignatureService.
var _ domain.SignatureService = (*Gateway)(nil)
