package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PETTABL_CONFIG", "")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.Equal(t, 5, cfg.WaitlistBurst)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pettabl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
app_env: staging
timezone: America/Lima
waitlist:
  burst: 12
  relay_url: https://forms.example.test/f/abc
agent_search_cache_seconds: 5
`), 0o600))

	t.Setenv("PETTABL_CONFIG", path)
	t.Setenv("PORT", "7070")
	t.Setenv("APP_ENV", "")
	t.Setenv("TIMEZONE", "")
	require.NoError(t, os.Unsetenv("TIMEZONE"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port, "env gana sobre yaml")
	assert.Equal(t, "", cfg.AppEnv, "APP_ENV vacío pero definido también gana")
	assert.Equal(t, "America/Lima", cfg.Timezone.String())
	assert.Equal(t, 12, cfg.WaitlistBurst)
	assert.Equal(t, "https://forms.example.test/f/abc", cfg.WaitlistRelayURL)
	assert.Equal(t, 5*time.Second, cfg.AgentSearchCacheTTL)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	t.Setenv("PETTABL_CONFIG", "")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
}

func TestDocsEnabled_OnlyInDevelopment(t *testing.T) {
	assert.True(t, (&Config{EnableDocs: true, AppEnv: "development"}).DocsEnabled())
	assert.False(t, (&Config{EnableDocs: true, AppEnv: "production"}).DocsEnabled())
	assert.False(t, (*Config)(nil).DocsEnabled())
}
