package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"imkit/internal/domain"
)

// ProfileDirectory is a file-backed user directory standing in for the
// host's user system.
type ProfileDirectory struct {
	byID map[domain.ClientID]domain.Profile
}

// LoadProfileDirectory reads a YAML or JSON list of profiles.
func LoadProfileDirectory(path string) (*ProfileDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var list []domain.Profile
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &list)
	default:
		err = yaml.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", path, err)
	}

	d := &ProfileDirectory{byID: make(map[domain.ClientID]domain.Profile, len(list))}
	for _, p := range list {
		if p.UserID == "" {
			return nil, fmt.Errorf("decode profiles %s: entry without user_id", path)
		}
		d.byID[p.UserID] = p
	}
	return d, nil
}

// Fetch matches domain.FetchProfilesFunc. It answers from its own goroutine
// like a remote user system would. Unknown ids are left out.
func (d *ProfileDirectory) Fetch(ctx context.Context, userIDs []domain.ClientID, callback domain.FetchProfilesCallback) {
	go func() {
		if err := ctx.Err(); err != nil {
			callback(nil, err)
			return
		}
		out := make([]domain.Profile, 0, len(userIDs))
		for _, id := range userIDs {
			if p, ok := d.byID[id]; ok {
				out = append(out, p)
			}
		}
		callback(out, nil)
	}()
}
