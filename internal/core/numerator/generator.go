package numerator

import (
	"context"
	"time"
)

// Generator generates sequential record numbers.
// Implementations live in pkg/numerator.
type Generator interface {
	// GetNextNumber generates the next number for cfg in the given period.
	// Pattern: PREFIX[SEP YEAR]SEP NNN (e.g., T007, PO-2026-001)
	GetNextNumber(ctx context.Context, cfg Config, period time.Time) (string, error)

	// Observe registers numbers that already exist (seed data) so new
	// numbers never collide with them.
	Observe(cfg Config, numbers ...string)
}
