package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"imkit/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `toml:"home" yaml:"home" json:"home"`                      // state directory, e.g. $HOME/.imkit
	BackendURL string `toml:"backend_url" yaml:"backend_url" json:"backend_url"` // e.g. http://127.0.0.1:8080
	Listen     string `toml:"listen" yaml:"listen" json:"listen"`                // imbackend listen address

	// ProfilesFile is a YAML or JSON list of profiles served as the host's
	// user directory. Empty means no fetch function is registered.
	ProfilesFile string `toml:"profiles_file" yaml:"profiles_file" json:"profiles_file"`

	// RequestTimeoutSec bounds each backend HTTP request.
	RequestTimeoutSec int `toml:"request_timeout_sec" yaml:"request_timeout_sec" json:"request_timeout_sec"`

	Logging LoggingConfig `toml:"logging" yaml:"logging" json:"logging"`
	Signing SigningConfig `toml:"signing" yaml:"signing" json:"signing"`

	// Passphrase unlocks the signing key. It is only read from the
	// environment.
	Passphrase string       `toml:"-" yaml:"-" json:"-"`
	HTTP       *http.Client `toml:"-" yaml:"-" json:"-"` // optional; defaults to a client with RequestTimeout
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Format  string `toml:"format" yaml:"format" json:"format"` // "text" or "json"
	Verbose bool   `toml:"verbose" yaml:"verbose" json:"verbose"`
}

// SigningConfig controls the local reference signer.
type SigningConfig struct {
	// Unsigned runs without a signing callback.
	Unsigned bool `toml:"unsigned" yaml:"unsigned" json:"unsigned"`
	// Deny lists action kinds the local signer refuses.
	Deny []string `toml:"deny" yaml:"deny" json:"deny"`
	// VerifyKey is the base64 Ed25519 public key imbackend checks
	// signatures against. Empty disables verification.
	VerifyKey string `toml:"verify_key" yaml:"verify_key" json:"verify_key"`
	// MaxAgeSec bounds token age on verification; 0 disables the check.
	MaxAgeSec int `toml:"max_age_sec" yaml:"max_age_sec" json:"max_age_sec"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Home:       filepath.Join(home, ".imkit"),
		BackendURL: "http://127.0.0.1:8080",
		Listen:     ":8080",

		RequestTimeoutSec: 15,

		Logging: LoggingConfig{Format: "text"},
		Signing: SigningConfig{MaxAgeSec: 300},
	}
}

// LoadConfig reads path, decoding by extension, then applies environment
// overrides and validates. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, nil
}

// ApplyEnvOverrides lets IMKIT_* variables replace file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("IMKIT_HOME"); v != "" {
		c.Home = v
	}
	if v := os.Getenv("IMKIT_BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("IMKIT_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("IMKIT_PROFILES_FILE"); v != "" {
		c.ProfilesFile = v
	}
	if v := os.Getenv("IMKIT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v, err := strconv.ParseBool(os.Getenv("IMKIT_VERBOSE")); err == nil {
		c.Logging.Verbose = v
	}
	if v, err := strconv.ParseBool(os.Getenv("IMKIT_UNSIGNED")); err == nil {
		c.Signing.Unsigned = v
	}
	if v := os.Getenv("IMKIT_VERIFY_KEY"); v != "" {
		c.Signing.VerifyKey = v
	}
	if v := os.Getenv("IMKIT_PASSPHRASE"); v != "" {
		c.Passphrase = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Home == "" {
		return errors.New("home is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend_url %q is not an absolute URL", c.BackendURL)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q: want text or json", c.Logging.Format)
	}
	for _, k := range c.Signing.Deny {
		if _, err := domain.ParseActionKind(k); err != nil {
			return fmt.Errorf("signing.deny: %w", err)
		}
	}
	if c.Signing.MaxAgeSec < 0 {
		return errors.New("signing.max_age_sec must not be negative")
	}
	if c.RequestTimeoutSec < 0 {
		return errors.New("request_timeout_sec must not be negative")
	}
	return nil
}

// DenyKinds returns Signing.Deny as action kinds. Validate has checked them.
func (c *Config) DenyKinds() []domain.ActionKind {
	out := make([]domain.ActionKind, 0, len(c.Signing.Deny))
	for _, k := range c.Signing.Deny {
		kind, err := domain.ParseActionKind(k)
		if err == nil {
			out = append(out, kind)
		}
	}
	return out
}

// MaxAge is Signing.MaxAgeSec as a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.Signing.MaxAgeSec) * time.Second
}
