// Package numerator provides an in-memory record auto-numbering service.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	corenumerator "malladmin/internal/core/numerator"
)

// Service hands out sequential numbers per prefix (and year, when configured).
// Counters live in memory; Observe seeds them from existing records.
type Service struct {
	mu       sync.Mutex
	counters map[string]int64
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates an empty numerator.
func New() *Service {
	return &Service{counters: make(map[string]int64)}
}

// GetNextNumber generates the next number.
func (s *Service) GetNextNumber(ctx context.Context, cfg corenumerator.Config, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if !cfg.Enabled() {
		return "", fmt.Errorf("numerator: empty prefix")
	}

	s.mu.Lock()
	key := buildKey(cfg, period.Year())
	s.counters[key]++
	num := s.counters[key]
	s.mu.Unlock()

	return formatNumber(cfg, period, num), nil
}

// Observe bumps counters past every well-formed number in numbers.
// Numbers that do not match cfg are ignored.
func (s *Service) Observe(cfg corenumerator.Config, numbers ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range numbers {
		year, num, ok := ParseNumber(cfg, n)
		if !ok {
			continue
		}
		key := buildKey(cfg, year)
		if num > s.counters[key] {
			s.counters[key] = num
		}
	}
}

// buildKey creates the counter key based on config and year.
func buildKey(cfg corenumerator.Config, year int) string {
	if cfg.ResetPeriod == corenumerator.ResetYear {
		return fmt.Sprintf("%s_%04d", cfg.Prefix, year)
	}
	return cfg.Prefix
}

func padWidth(cfg corenumerator.Config) int {
	if cfg.PadWidth == 0 {
		return 3
	}
	return cfg.PadWidth
}

// formatNumber creates the final number string.
func formatNumber(cfg corenumerator.Config, period time.Time, num int64) string {
	if cfg.IncludeYear {
		return fmt.Sprintf("%s%s%s%s%0*d", cfg.Prefix, cfg.Separator, period.Format("2006"), cfg.Separator, padWidth(cfg), num)
	}
	return fmt.Sprintf("%s%s%0*d", cfg.Prefix, cfg.Separator, padWidth(cfg), num)
}

// ParseNumber extracts the year (0 when the config has none) and counter
// from a formatted number.
func ParseNumber(cfg corenumerator.Config, formatted string) (year int, num int64, ok bool) {
	rest, found := strings.CutPrefix(formatted, cfg.Prefix+cfg.Separator)
	if !found || rest == "" {
		return 0, 0, false
	}

	if cfg.IncludeYear {
		y, tail, found := strings.Cut(rest, cfg.Separator)
		if !found || cfg.Separator == "" {
			// without a separator the year is the first four digits
			if len(rest) <= 4 {
				return 0, 0, false
			}
			y, tail = rest[:4], rest[4:]
		}
		parsed, err := strconv.Atoi(y)
		if err != nil {
			return 0, 0, false
		}
		year, rest = parsed, tail
	}

	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	return year, n, true
}
