package numerator

import (
	"context"
	"time"
)

// MockGenerator is a test implementation of Generator.
type MockGenerator struct {
	GetNextNumberFunc func(ctx context.Context, cfg Config, period time.Time) (string, error)
	Observed          []string
}

// GetNextNumber implements Generator.
func (m *MockGenerator) GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if m.GetNextNumberFunc != nil {
		return m.GetNextNumberFunc(ctx, cfg, period)
	}
	return cfg.Prefix + "MOCK", nil
}

// Observe implements Generator.
func (m *MockGenerator) Observe(cfg Config, numbers ...string) {
	m.Observed = append(m.Observed, numbers...)
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
