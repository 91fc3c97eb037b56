package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "malladmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
app:
  locale: hi
form:
  commit_delay: 50ms
logging:
  level: debug
http:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hi", cfg.App.Locale)
	assert.Equal(t, 50*time.Millisecond, cfg.Form.CommitDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "form:\n  commit_delay: 50ms\n")
	t.Setenv("MALLADMIN_FORM_COMMIT_DELAY", "2s")
	t.Setenv("MALLADMIN_APP_LOCALE", "hi")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Form.CommitDelay)
	assert.Equal(t, "hi", cfg.App.Locale)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, "form:\n  commit_delay: -1s\n")
	_, err := Load(path)
	assert.Error(t, err)
}
