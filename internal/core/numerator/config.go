// Package numerator provides domain contracts for record auto-numbering.
package numerator

// Reset periods.
const (
	ResetNever = "never"
	ResetYear  = "year"
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g., "T", "PO")
	Prefix string

	// Separator goes between prefix, year and counter ("" for T001, "-" for PO-2023-001)
	Separator string

	// IncludeYear adds year to the number
	IncludeYear bool

	// PadWidth is the minimum number width (default 3)
	PadWidth int

	// ResetPeriod: "year", "never"
	ResetPeriod string
}

// DefaultConfig returns a compact prefix-and-counter config (T001).
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		PadWidth:    3,
		ResetPeriod: ResetNever,
	}
}

// YearlyConfig returns a PREFIX-YEAR-NNN config that restarts every year.
func YearlyConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		Separator:   "-",
		IncludeYear: true,
		PadWidth:    3,
		ResetPeriod: ResetYear,
	}
}

// Enabled reports whether the config produces prefixed numbers.
func (c Config) Enabled() bool {
	return c.Prefix != ""
}
