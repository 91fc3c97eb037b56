// Package id assigns identifiers to new records.
// Kinds with a numbering prefix get sequential numbers (T007);
// everything else falls back to a UUIDv7 string.
package id

import (
	"context"
	"time"

	"github.com/google/uuid"

	"malladmin/internal/core/numerator"
)

// New generates a new UUIDv7 (time-ordered UUID) as a string.
func New() string {
	v, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New().String()
	}
	return v.String()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Source assigns identifiers for new records.
type Source struct {
	gen numerator.Generator
	now func() time.Time
}

// NewSource creates a Source backed by gen. A nil gen means UUIDs only.
func NewSource(gen numerator.Generator) *Source {
	return &Source{gen: gen, now: time.Now}
}

// WithClock overrides the clock used to pick the numbering period.
func (s *Source) WithClock(now func() time.Time) *Source {
	s.now = now
	return s
}

// Next returns a fresh identifier for a record numbered by cfg.
func (s *Source) Next(ctx context.Context, cfg numerator.Config) (string, error) {
	if s == nil || s.gen == nil || !cfg.Enabled() {
		return New(), nil
	}
	return s.gen.GetNextNumber(ctx, cfg, s.now())
}

// Observe tells the underlying generator about existing identifiers.
func (s *Source) Observe(cfg numerator.Config, ids ...string) {
	if s == nil || s.gen == nil || !cfg.Enabled() {
		return
	}
	s.gen.Observe(cfg, ids...)
}
