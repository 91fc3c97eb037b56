package catalogs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/apperror"
	"malladmin/internal/i18n"
	"malladmin/internal/validation"
	"malladmin/pkg/logger"
)

func TestRegistry_AllKinds(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory", "issue", "payment", "purchase", "sale", "tenant"}, reg.Kinds())
}

func TestRegister_Twice(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	assert.True(t, apperror.IsConfiguration(Register(reg)))
}

func TestEmbeddedCatalogIsComplete(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	cat, err := i18n.LoadEmbedded(i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "hi"}, cat.Locales())
	require.NoError(t, cat.Verify(reg.RequiredKeys()))
}

// Every seed row must pass its own schema, otherwise editing it would fail.
func TestSeedsAreValid(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	cat, err := i18n.LoadEmbedded(i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	engine, err := validation.NewEngine(cat, logger.NewNop())
	require.NoError(t, err)

	for kind, recs := range Seeds() {
		schema, err := reg.Get(kind)
		require.NoError(t, err)
		require.NoError(t, engine.Compile(schema))
		require.NotEmpty(t, recs, kind)

		ids := make(map[string]struct{})
		for _, rec := range recs {
			assert.Equal(t, kind, rec.Kind)
			_, dup := ids[rec.ID]
			assert.False(t, dup, "duplicate id %s", rec.ID)
			ids[rec.ID] = struct{}{}

			draft := make(map[string]string)
			for _, f := range schema.Fields {
				draft[f.Key] = rec.Text(f.Key)
			}
			res, err := engine.Validate(context.Background(), schema, draft, "en")
			require.NoError(t, err)
			assert.True(t, res.Valid(), "%s %s: %v", kind, rec.ID, res.Messages())
		}
	}
}

func TestSaleGSTRule(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	cat, err := i18n.LoadEmbedded(i18n.WithLogger(logger.NewNop()))
	require.NoError(t, err)
	engine, err := validation.NewEngine(cat, logger.NewNop())
	require.NoError(t, err)

	schema, err := reg.Get("sale")
	require.NoError(t, err)
	res, err := engine.Validate(context.Background(), schema, map[string]string{
		"store":         "Chennai Silks",
		"date":          "2023-11-14",
		"amount":        "1000",
		"paymentMethod": "Card",
		"gst":           "1800",
	}, "hi")
	require.NoError(t, err)

	fe, ok := res.Error("gst")
	require.True(t, ok)
	assert.Equal(t, validation.CodeRule, fe.Code)
	assert.Equal(t, "जीएसटी बिक्री राशि से अधिक नहीं हो सकता", fe.Message)
}
