package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/apperror"
	"malladmin/pkg/logger"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func loadEmbedded(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadEmbedded(WithLogger(logger.NewNop()))
	require.NoError(t, err)
	return c
}

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	c := loadEmbedded(t)
	assert.Equal(t, []string{"en", "hi"}, c.Locales())
	assert.True(t, c.HasLocale("hi"))
	assert.False(t, c.HasLocale("fr"))
}

func TestResolve(t *testing.T) {
	c := loadEmbedded(t)

	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{"english", "en", "validation.positive", "Must be a positive number"},
		{"hindi", "hi", "validation.positive", "एक सकारात्मक संख्या होनी चाहिए"},
		{"region falls back to base language", "hi-IN", "action.save", "सहेजें"},
		{"missing key yields key", "en", "nope.missing", "nope.missing"},
		{"unknown locale yields key", "fr", "action.save", "action.save"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Resolve(tt.locale, tt.key))
		})
	}
}

func TestFormat_ReordersArguments(t *testing.T) {
	c := loadEmbedded(t)

	assert.Equal(t, "Showing 3 of 6", c.Format("en", "list.count", 3, 6))
	assert.Equal(t, "6 में से 3 दिखाए जा रहे हैं", c.Format("hi", "list.count", 3, 6))
	assert.Equal(t, "nope", c.Format("en", "nope"))
}

func TestFormatDecimal(t *testing.T) {
	c := loadEmbedded(t)

	assert.Equal(t, "42,000", c.FormatDecimal("en", decimal.NewFromInt(42000)))
	assert.Equal(t, "3,500.50", c.FormatDecimal("en", decimal.RequireFromString("3500.5")))
	assert.Equal(t, "0", c.FormatDecimal("en", decimal.Zero))
	assert.Equal(t, "999", c.FormatDecimal("en", decimal.NewFromInt(999)))
	assert.Equal(t, "-1,250.75", c.FormatDecimal("en", decimal.RequireFromString("-1250.75")))
	assert.Equal(t, "10.00", c.FormatDecimal("en", decimal.RequireFromString("9.999")))

	// beyond int64
	assert.Equal(t, "10,000,000,000,000,000,000", c.FormatDecimal("en", decimal.RequireFromString("10000000000000000000")))
	assert.Equal(t, "123,456,789,012,345,678,901,234", c.FormatDecimal("en", decimal.RequireFromString("123456789012345678901234")))
}

func TestFormatDecimal_MatchesPrinterGrouping(t *testing.T) {
	c := loadEmbedded(t)

	for _, locale := range c.Locales() {
		p := c.Printer(locale)
		for _, n := range []int64{7, 1234, 120000, 9876543210} {
			assert.Equal(t, p.Sprintf("%d", n), c.FormatDecimal(locale, decimal.NewFromInt(n)), "%s %d", locale, n)
		}
	}
}

func TestMatch(t *testing.T) {
	c := loadEmbedded(t)

	assert.Equal(t, "hi", c.Match("hi-IN,hi;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", c.Match("en-GB"))
	assert.Equal(t, "en", c.Match("fr-FR"))
	assert.Equal(t, "en", c.Match(""))
}

func TestVerify(t *testing.T) {
	c := loadEmbedded(t)

	require.NoError(t, c.Verify([]string{"action.save", "tenant.title"}))

	err := c.Verify([]string{"action.save", "tenant.field.nickname"})
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))

	appErr, _ := apperror.AsAppError(err)
	assert.ElementsMatch(t, []string{"en:tenant.field.nickname", "hi:tenant.field.nickname"}, appErr.Details["missing"])
}

func TestLoadRejectsKeyOutsideNamespace(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/tenant.yaml"), `locale: en
namespace: tenant
messages:
  inventory.title: "nope"
`)

	_, err := Load(os.DirFS(dir))
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: en
namespace: core
messages:
  tenant.title: "a"
`)
	mustWriteFile(t, filepath.Join(dir, "locales/en/tenant.yaml"), `locale: en
namespace: tenant
messages:
  tenant.title: "b"
`)

	_, err := Load(os.DirFS(dir))
	require.Error(t, err)
}

func TestLoadRejectsLocaleMismatch(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "locales/en/core.yaml"), `locale: hi
namespace: core
messages:
  action.save: "x"
`)

	_, err := Load(os.DirFS(dir))
	require.Error(t, err)
}

func TestLoadOpenLocaleSet(t *testing.T) {
	dir := t.TempDir()
	for _, loc := range []string{"en", "ta"} {
		mustWriteFile(t, filepath.Join(dir, "locales", loc, "core.yaml"), "locale: "+loc+`
namespace: core
messages:
  action.save: "`+loc+`-save"
`)
	}

	c, err := Load(os.DirFS(dir), WithLogger(logger.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "ta"}, c.Locales())
	assert.Equal(t, "ta-save", c.Resolve("ta", "action.save"))
}

func TestLoadEmptyFS(t *testing.T) {
	_, err := Load(os.DirFS(t.TempDir()))
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}
