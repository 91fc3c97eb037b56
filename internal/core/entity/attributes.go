// Package entity provides the record type every list kind shares.
package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and display layout of date fields.
const DateLayout = "2006-01-02"

// Values holds typed field values keyed by field key.
// text/enum are string, number is decimal.Decimal, date is time.Time.
type Values map[string]any

// --- Type-safe getters ---

// GetString returns string value or empty string if not found/wrong type.
func (v Values) GetString(key string) string {
	if v == nil {
		return ""
	}
	if s, ok := v[key].(string); ok {
		return s
	}
	return ""
}

// GetDecimal returns decimal.Decimal value with full precision.
func (v Values) GetDecimal(key string) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	switch x := v[key].(type) {
	case decimal.Decimal:
		return x
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero
		}
		return d
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case float64:
		return decimal.NewFromFloat(x)
	}
	return decimal.Zero
}

// GetTime returns a date value, parsing DateLayout strings.
func (v Values) GetTime(key string) time.Time {
	if v == nil {
		return time.Time{}
	}
	switch x := v[key].(type) {
	case time.Time:
		return x
	case string:
		t, err := time.Parse(DateLayout, x)
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return time.Time{}
}

// Text renders a value the way a form field shows it.
// Numbers drop grouping, dates use DateLayout, missing keys are "".
func (v Values) Text(key string) string {
	if v == nil {
		return ""
	}
	switch x := v[key].(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(DateLayout)
	case json.Number:
		return x.String()
	default:
		return v.GetDecimal(key).String()
	}
}

// Has checks if key exists (including nil values).
func (v Values) Has(key string) bool {
	if v == nil {
		return false
	}
	_, ok := v[key]
	return ok
}

// Set adds or updates a value. Returns self for chaining.
func (v *Values) Set(key string, value any) Values {
	if *v == nil {
		*v = make(Values)
	}
	(*v)[key] = value
	return *v
}

// Clone creates a shallow copy. Stored values are immutable so that is enough.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	result := make(Values, len(v))
	for k, x := range v {
		result[k] = x
	}
	return result
}

// MarshalJSON writes numbers without quotes and dates in DateLayout.
func (v Values) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v))
	for k, x := range v {
		switch t := x.(type) {
		case decimal.Decimal:
			out[k] = json.Number(t.String())
		case time.Time:
			out[k] = t.Format(DateLayout)
		default:
			out[k] = x
		}
	}
	return json.Marshal(out)
}

// MustDate parses a DateLayout literal. For fixtures and seed data only.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
