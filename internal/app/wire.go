package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"imkit/internal/backend"
	"imkit/internal/domain"
	"imkit/internal/services/conversation"
	"imkit/internal/services/directory"
	"imkit/internal/services/notify"
	"imkit/internal/services/session"
	"imkit/internal/services/settings"
	"imkit/internal/services/signature"
	"imkit/internal/services/ui"
	"imkit/internal/signer"
	"imkit/internal/store"
)

// Hooks are the host callbacks. Any of them may be nil.
type Hooks struct {
	FetchProfiles domain.FetchProfilesFunc
	OpenProfile   domain.OpenProfileFunc
	Player        notify.Player
}

// Wire bundles the services together with the stores and clients behind them.
type Wire struct {
	*App

	Level   *slog.LevelVar // driven by Prefs toggle and config override
	Logger  *slog.Logger
	Toggles *settings.Service
	Keys    domain.SigningKeyStore
	Prefs   domain.SettingsStore
	Gateway *signature.Gateway
	Signer  *signer.Signer // nil in unsigned mode
	Backend *backend.HTTP
	HTTP    *http.Client
}

// NewWire constructs the dependency graph from cfg. Logs go to logOut.
func NewWire(cfg Config, hooks Hooks, logOut io.Writer) (*Wire, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}

	level := new(slog.LevelVar)
	logger := NewLogger(cfg.Logging, logOut, level)

	// File-based stores
	keys := store.NewKeyFileStore(cfg.Home)
	prefs := store.NewSettingsFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second}
	}
	im := backend.NewHTTP(cfg.BackendURL, httpClient)

	// Authorization gateway: signed with the local key unless disabled.
	var (
		gw *signature.Gateway
		sg *signer.Signer
	)
	if cfg.Signing.Unsigned {
		gw = signature.NewUnsigned(logger)
	} else {
		key, err := keys.LoadSigningKey(cfg.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("load signing key: %w", err)
		}
		sg, err = signer.New(key, signer.Options{Deny: cfg.DenyKinds(), Logger: logger})
		if err != nil {
			return nil, err
		}
		gw = signature.New(sg.Generate, logger)
	}

	fetch := hooks.FetchProfiles
	if fetch == nil && cfg.ProfilesFile != "" {
		dir, err := LoadProfileDirectory(cfg.ProfilesFile)
		if err != nil {
			return nil, err
		}
		fetch = dir.Fetch
	}

	// High-level services
	sessions := session.New(gw, im, logger)
	settingsSvc, err := settings.New(prefs, im, sessions, level, logger)
	if err != nil {
		return nil, err
	}
	settingsSvc.SetLogOverride(cfg.Logging.Verbose)

	notifier := notify.Default()
	if hooks.Player != nil {
		notifier = notify.New(hooks.Player, prefs, logger)
	}

	return &Wire{
		App: &App{
			Sessions:      sessions,
			Users:         directory.New(fetch, logger),
			Signatures:    gw,
			Conversations: conversation.New(sessions, gw, im, logger),
			UI:            ui.New(hooks.OpenProfile, logger),
			Settings:      settingsSvc,
			Notifier:      notifier,
		},
		Level:   level,
		Logger:  logger,
		Toggles: settingsSvc,
		Keys:    keys,
		Prefs:   prefs,
		Gateway: gw,
		Signer:  sg,
		Backend: im,
		HTTP:    httpClient,
	}, nil
}

// Compile-time assertion that the settings service takes config overrides.
var _ LogOverrider = (*settings.Service)(nil)
