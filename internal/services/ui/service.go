package ui

import (
	"log/slog"

	"imkit/internal/domain"
)

// Service forwards profile requests to the host's OpenProfileFunc.
type Service struct {
	openProfile domain.OpenProfileFunc
	logger      *slog.Logger
}

// New constructs a ui Service. openProfile may be nil.
func New(openProfile domain.OpenProfileFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{openProfile: openProfile, logger: logger.With("component", "ui")}
}

// OpenProfile asks the host to show userID's profile and reports whether a
// host handler was registered.
func (s *Service) OpenProfile(userID domain.ClientID, hostContext any) bool {
	if s.openProfile == nil {
		s.logger.Debug("no profile handler registered", "user", userID)
		return false
	}
	s.openProfile(userID, hostContext)
	return true
}

// Compile-time assertion that Service implements domain.UIService.
var _ domain.UIService = (*Service)(nil)
