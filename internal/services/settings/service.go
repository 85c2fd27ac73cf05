package settings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"imkit/internal/domain"
	"imkit/internal/services/session"
)

// Version is the kit version reported to hosts.
const Version = "1.4.0"

// Service implements domain.SettingService.
type Service struct {
	store    domain.SettingsStore
	client   domain.IMClient
	sessions domain.SessionService
	level    *slog.LevelVar
	logger   *slog.Logger

	mu       sync.RWMutex
	current  domain.Settings
	override bool // process-only verbose request, never persisted
}

// New loads the stored settings and applies the log toggle to level.
// level may be nil when the host manages verbosity itself.
func New(
	store domain.SettingsStore,
	client domain.IMClient,
	sessions domain.SessionService,
	level *slog.LevelVar,
	logger *slog.Logger,
) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	current, err := store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s := &Service{
		store:    store,
		client:   client,
		sessions: sessions,
		level:    level,
		logger:   logger.With("component", "settings"),
		current:  current,
	}
	s.applyLevel()
	return s, nil
}

// SetAllLogsEnabled persists the log toggle and switches between debug and
// warn verbosity.
func (s *Service) SetAllLogsEnabled(enabled bool) error {
	if err := s.update(func(v *domain.Settings) { v.AllLogsEnabled = enabled }); err != nil {
		return err
	}
	s.applyLevel()
	s.logger.Info("log level changed", "all_logs", enabled)
	return nil
}

// SetLogOverride forces debug logs for this process without touching the
// persisted toggle. Debug logging is on while either of them is on.
func (s *Service) SetLogOverride(on bool) {
	s.mu.Lock()
	s.override = on
	s.mu.Unlock()
	s.applyLevel()
}

// AllLogsEnabled reports whether debug logs are emitted: the persisted
// toggle or the process override is on.
func (s *Service) AllLogsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AllLogsEnabled || s.override
}

// Version returns the kit version.
func (s *Service) Version() string { return Version }

// SyncBadge pushes count to the backend for the open session's client.
func (s *Service) SyncBadge(ctx context.Context, count int) error {
	if count < 0 {
		return fmt.Errorf("badge count %d is negative", count)
	}
	if s.sessions.State() != domain.SessionOpen {
		return session.ErrSessionClosed
	}
	clientID := s.sessions.ClientID()
	if err := s.client.SyncBadge(ctx, clientID, count, s.UseDevPushCertificate()); err != nil {
		return fmt.Errorf("sync badge: %w", err)
	}
	s.logger.Debug("badge synced", "client", clientID, "count", count)
	return nil
}

// SetUseDevPushCertificate persists the push certificate choice sent with
// badge syncs.
func (s *Service) SetUseDevPushCertificate(enabled bool) error {
	return s.update(func(v *domain.Settings) { v.UseDevPushCertificate = enabled })
}

// UseDevPushCertificate reports whether the development certificate is used.
func (s *Service) UseDevPushCertificate() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.UseDevPushCertificate
}

func (s *Service) update(fn func(*domain.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.store.UpdateSettings(fn)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	s.current = next
	return nil
}

func (s *Service) applyLevel() {
	if s.level == nil {
		return
	}
	if s.AllLogsEnabled() {
		s.level.Set(slog.LevelDebug)
	} else {
		s.level.Set(slog.LevelWarn)
	}
}

// Compile-time assertion that Service implements domain.SettingService.
var _ domain.SettingService = (*Service)(nil)
