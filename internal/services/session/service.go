package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"imkit/internal/domain"
)

// ErrSessionClosed is returned by actions that need an open session.
var ErrSessionClosed = errors.New("session is not open; open a session first")

// Service coordinates the session lifecycle on top of the signature gateway.
//
// Concurrent OpenSession calls for the same client share one flight, so the
// host is asked for one signature and the backend sees one open. The flight
// runs with the context of the caller that started it. Flights for different
// clients are serialized through opening; a flight that finds the session
// already open does nothing.
type Service struct {
	gateway domain.SignatureService
	client  domain.IMClient
	logger  *slog.Logger

	flights singleflight.Group
	opening chan struct{}

	mu       sync.Mutex
	state    domain.SessionState
	clientID domain.ClientID
}

// New constructs a closed session Service.
func New(
	gateway domain.SignatureService,
	client domain.IMClient,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway: gateway,
		client:  client,
		logger:  logger.With("component", "session"),
		state:   domain.SessionClosed,
		opening: make(chan struct{}, 1),
	}
}

// OpenSession authorizes and opens the session for clientID.
//
// Authorization failures are returned unchanged and leave the session
// closed; the backend is not contacted.
func (s *Service) OpenSession(ctx context.Context, clientID domain.ClientID) error {
	if s.alreadyOpen(clientID) {
		return nil
	}
	_, err, shared := s.flights.Do(clientID, func() (any, error) {
		return nil, s.open(ctx, clientID)
	})
	if shared {
		s.logger.Debug("joined in-flight open", "client", clientID)
	}
	return err
}

// alreadyOpen reports whether a session is open, warning when it belongs to
// another client.
func (s *Service) alreadyOpen(clientID domain.ClientID) bool {
	s.mu.Lock()
	state, current := s.state, s.clientID
	s.mu.Unlock()
	if state != domain.SessionOpen {
		return false
	}
	if current != clientID {
		s.logger.Warn("session already open for another client",
			"open_client", current,
			"requested_client", clientID,
		)
	}
	return true
}

func (s *Service) open(ctx context.Context, clientID domain.ClientID) error {
	select {
	case s.opening <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("open session %q: %w", clientID, ctx.Err())
	}
	defer func() { <-s.opening }()

	if s.alreadyOpen(clientID) {
		return nil
	}

	d, err := domain.NewActionDescriptor(clientID, "", domain.ActionOpen, nil)
	if err != nil {
		return err
	}
	res, err := s.gateway.Authorize(ctx, d)
	if err != nil {
		return err
	}
	if err := s.client.Open(ctx, clientID, res.Signature); err != nil {
		return fmt.Errorf("open session %q: %w", clientID, err)
	}

	s.mu.Lock()
	s.state = domain.SessionOpen
	s.clientID = clientID
	s.mu.Unlock()

	s.logger.Info("session opened", "client", clientID, "signed", res.Signature != nil)
	return nil
}

// CloseSession closes the session. It always succeeds: a backend failure is
// logged and the local state still moves to closed.
func (s *Service) CloseSession(ctx context.Context) error {
	s.mu.Lock()
	if s.state == domain.SessionClosed {
		s.mu.Unlock()
		return nil
	}
	clientID := s.clientID
	s.state = domain.SessionClosed
	s.clientID = ""
	s.mu.Unlock()

	if err := s.client.Close(ctx, clientID); err != nil {
		s.logger.Warn("backend close failed, session dropped locally",
			"client", clientID,
			"error", err,
		)
		return nil
	}
	s.logger.Info("session closed", "client", clientID)
	return nil
}

// State returns the current session state.
func (s *Service) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ClientID returns the client the session is open for, or "" when closed.
func (s *Service) ClientID() domain.ClientID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientID
}

// Compile-time assertion that Service implements domain.SessionService.
var _ domain.SessionService = (*Service)(nil)
