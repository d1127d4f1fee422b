package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKOFFICE_CONFIG", "")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
}

func TestLoadServer_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKOFFICE_CONFIG", "")
	t.Setenv("BACKOFFICE_API_URL", "https://api.example.com")
	t.Setenv("BACKOFFICE_CORS_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("BACKOFFICE_CACHE_TTL", "5s")
	t.Setenv("BACKOFFICE_TIMEZONE", "Europe/Moscow")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoadServer_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\napi_url: https://upstream.example.com\n"), 0o644))
	t.Setenv("BACKOFFICE_CONFIG", path)

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://upstream.example.com", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their defaults")
}

func TestLoadServer_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("BACKOFFICE_CONFIG", "")
	t.Setenv("BACKOFFICE_ADDR", "")
	os.Unsetenv("BACKOFFICE_ADDR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BACKOFFICE_ADDR=:7070\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BACKOFFICE_ADDR") })

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestServerConfig_Validate(t *testing.T) {
	cfg := DefaultServerConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.APIURL = "not a url"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Timezone = "Mars/Olympus"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.RateLimit = 0
	assert.Error(t, bad.Validate())
}

func TestLoadCLI(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("BACKOFFICE_OUTPUT", "json")

	cfg, err := LoadCLI(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "http://localhost:3000", cfg.API)
	assert.Equal(t, 10, cfg.PageSize)
}

func TestLoadCLI_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: https://crm.example.com\npage_size: 50\n"), 0o644))

	cfg, err := LoadCLI(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com", cfg.API)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoadCLI_BadOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BACKOFFICE_OUTPUT", "xml")

	_, err := LoadCLI(viper.New(), "")
	assert.Error(t, err)
}
