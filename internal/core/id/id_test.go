package id

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/numerator"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.True(t, IsUUID(a))
	assert.NotEqual(t, a, b)
}

func TestSource_Next(t *testing.T) {
	gen := &numerator.MockGenerator{
		GetNextNumberFunc: func(_ context.Context, cfg numerator.Config, period time.Time) (string, error) {
			return cfg.Prefix + period.Format("2006"), nil
		},
	}
	src := NewSource(gen).WithClock(func() time.Time {
		return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	got, err := src.Next(context.Background(), numerator.DefaultConfig("T"))
	require.NoError(t, err)
	assert.Equal(t, "T2023", got)

	got, err = src.Next(context.Background(), numerator.Config{})
	require.NoError(t, err)
	assert.True(t, IsUUID(got), "no prefix falls back to uuid")
}

func TestSource_Observe(t *testing.T) {
	gen := &numerator.MockGenerator{}
	src := NewSource(gen)

	src.Observe(numerator.DefaultConfig("T"), "T001", "T002")
	src.Observe(numerator.Config{}, "ignored")

	assert.Equal(t, []string{"T001", "T002"}, gen.Observed)
}

func TestSource_Nil(t *testing.T) {
	var src *Source
	got, err := src.Next(context.Background(), numerator.DefaultConfig("T"))
	require.NoError(t, err)
	assert.True(t, IsUUID(got))
}
