package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"imkit/internal/domain"
	"imkit/internal/util/oneshot"
)

// Service resolves profiles with the host's FetchProfilesFunc.
type Service struct {
	fetch  domain.FetchProfilesFunc
	logger *slog.Logger
}

// fetchResult is one host answer.
type fetchResult struct {
	profiles []domain.Profile
	err      error
}

// New returns a directory Service. fetch may be nil.
func New(fetch domain.FetchProfilesFunc, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetch: fetch, logger: logger.With("component", "directory")}
}

// ResolveProfiles looks up userIDs as a set. Duplicates and empty ids are
// dropped and the host sees the ids sorted. Profiles the host returns for
// ids that were not asked for are discarded.
func (s *Service) ResolveProfiles(
	ctx context.Context,
	userIDs []domain.ClientID,
) (map[domain.ClientID]domain.Profile, error) {
	ids := normalize(userIDs)
	out := make(map[domain.ClientID]domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if s.fetch == nil {
		s.logger.Debug("no profile fetch registered", "requested", len(ids))
		return out, nil
	}

	slot := oneshot.New[fetchResult](oneshot.Hooks{
		Duplicate: func(attempt int) {
			s.logger.Warn("profile callback resolved more than once, keeping first result", "attempt", attempt)
		},
		Late: func() {
			s.logger.Warn("profile callback resolved after the caller stopped waiting")
		},
	})
	s.fetch(ctx, ids, func(profiles []domain.Profile, err error) {
		slot.Resolve(fetchResult{profiles: profiles, err: err})
	})
	res, err := slot.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("await profiles: %w", err)
	}
	if res.err != nil {
		return nil, fmt.Errorf("fetch profiles: %w", res.err)
	}

	wanted := make(map[domain.ClientID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, p := range res.profiles {
		if _, ok := wanted[p.UserID]; !ok {
			s.logger.Debug("dropping unrequested profile", "user", p.UserID)
			continue
		}
		out[p.UserID] = p
	}
	if missing := len(ids) - len(out); missing > 0 {
		s.logger.Debug("profiles unavailable", "missing", missing)
	}
	return out, nil
}

// normalize de-duplicates, drops empties and sorts.
func normalize(userIDs []domain.ClientID) []domain.ClientID {
	seen := make(map[domain.ClientID]struct{}, len(userIDs))
	out := make([]domain.ClientID, 0, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Compile-time assertion that Service implements domain.UserSystemService.
var _ domain.UserSystemService = (*Service)(nil)
