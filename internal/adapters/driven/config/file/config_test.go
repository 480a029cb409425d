package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const validConfig = `
[server]
listen_addr = ":9090"
cors_origins = ["https://forms.example.net"]

[auth]
google_audience = "client-id-123"

[upstream]
base_url = "https://erp.example.net"
username = "svc@example.net"
password = "secret"
read_timeout_seconds = 10
write_timeout_seconds = 30
count_cap = 500
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"https://forms.example.net"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "client-id-123", cfg.Auth.GoogleAudience)
	assert.Equal(t, "https://erp.example.net", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.ReadTimeout())
	assert.Equal(t, 30*time.Second, cfg.Upstream.WriteTimeout())
	assert.Equal(t, 500, cfg.Upstream.CountCap)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[upstream]
base_url = "https://erp.example.net"
username = "svc@example.net"
password = "secret"
`))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvUpstreamPassword, "rotated")
	t.Setenv(EnvGoogleAudience, "env-audience")

	cfg, err := Load(writeConfig(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, "rotated", cfg.Upstream.Password)
	assert.Equal(t, "env-audience", cfg.Auth.GoogleAudience)
}

func TestLoadMissingFileWithEnv(t *testing.T) {
	t.Setenv(EnvUpstreamBaseURL, "https://erp.example.net")
	t.Setenv(EnvUpstreamUsername, "svc@example.net")
	t.Setenv(EnvUpstreamPassword, "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, "https://erp.example.net", cfg.Upstream.BaseURL)
}

func TestLoadRejectsIncompleteConfig(t *testing.T) {
	_, err := Load(writeConfig(t, `
[upstream]
base_url = "https://erp.example.net"
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[upstream\nbase_url ="))

	assert.Error(t, err)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, validConfig)

	reloaded := make(chan *Config, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Watch(ctx, path, func(cfg *Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	updated := validConfig + "\n# touched\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "https://erp.example.net", cfg.Upstream.BaseURL)
	case <-time.After(3 * time.Second):
		t.Fatal("config change was not observed")
	}
}
