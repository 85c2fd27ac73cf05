// Package settings exposes the global toggles of the kit: log verbosity,
// push certificate selection, the version string and the badge sync.
//
// Toggles are persisted through a domain.SettingsStore and survive restarts.
// The log toggle drives a shared slog.LevelVar so every logger built on it
// follows the change at once.
package settings
