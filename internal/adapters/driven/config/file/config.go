package file

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment overrides. Secrets belong here rather than in the file.
const (
	EnvUpstreamBaseURL  = "FORMBRIDGE_UPSTREAM_BASE_URL"
	EnvUpstreamUsername = "FORMBRIDGE_UPSTREAM_USERNAME"
	EnvUpstreamPassword = "FORMBRIDGE_UPSTREAM_PASSWORD"
	EnvGoogleAudience   = "FORMBRIDGE_GOOGLE_AUDIENCE"
)

// ServerConfig configures the REST listener.
type ServerConfig struct {
	// ListenAddr is the host:port to serve on.
	ListenAddr string `toml:"listen_addr"`

	// CORSOrigins lists allowed origins. ["*"] allows any.
	CORSOrigins []string `toml:"cors_origins"`
}

// AuthConfig configures caller authentication.
type AuthConfig struct {
	// GoogleAudience is the OAuth client ID tokens must be issued to.
	GoogleAudience string `toml:"google_audience"`
}

// UpstreamConfig configures the ERP connection.
type UpstreamConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"username"`
	Password string `toml:"password"`

	// ReadTimeoutSeconds and WriteTimeoutSeconds bound upstream calls.
	// Zero selects the connector defaults (10s reads, 30s writes).
	ReadTimeoutSeconds  int `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`

	// RequestsPerSecond throttles upstream calls. Zero selects the
	// connector default.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// CountCap is reported when upstream cannot answer a count query.
	CountCap int `toml:"count_cap"`
}

// ReadTimeout returns the configured read timeout as a duration.
func (u UpstreamConfig) ReadTimeout() time.Duration {
	return time.Duration(u.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the configured write timeout as a duration.
func (u UpstreamConfig) WriteTimeout() time.Duration {
	return time.Duration(u.WriteTimeoutSeconds) * time.Second
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Auth     AuthConfig     `toml:"auth"`
	Upstream UpstreamConfig `toml:"upstream"`
}

// Default returns the baseline configuration before file and
// environment values are applied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  ":8080",
			CORSOrigins: []string{"*"},
		},
	}
}

// Load reads the TOML file at path, applies environment overrides, and
// validates the result. A missing file is fine as long as the
// environment supplies the upstream connection.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvUpstreamBaseURL); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv(EnvUpstreamUsername); v != "" {
		cfg.Upstream.Username = v
	}
	if v := os.Getenv(EnvUpstreamPassword); v != "" {
		cfg.Upstream.Password = v
	}
	if v := os.Getenv(EnvGoogleAudience); v != "" {
		cfg.Auth.GoogleAudience = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base_url is required (file or %s)", EnvUpstreamBaseURL)
	}
	if c.Upstream.Username == "" || c.Upstream.Password == "" {
		return errors.New("upstream credentials are required")
	}
	if c.Server.ListenAddr == "" {
		return errors.New("server listen_addr is required")
	}
	return nil
}
