package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"malladmin/internal/core/entity"
)

// Match reports whether rec satisfies every item.
func Match(rec entity.Record, items []Item) bool {
	for _, it := range items {
		if !it.Match(rec) {
			return false
		}
	}
	return true
}

// Match evaluates one condition. Unknown operators never match.
func (it Item) Match(rec entity.Record) bool {
	v := rec.Get(it.Field)
	text := rec.Text(it.Field)

	switch it.Operator {
	case Equal:
		return compare(v, it.Value) == 0
	case NotEqual:
		return compare(v, it.Value) != 0
	case LessOrEqual:
		c := compare(v, it.Value)
		return c != incomparable && c <= 0
	case GreaterOrEqual:
		c := compare(v, it.Value)
		return c != incomparable && c >= 0
	case InList, NotInList:
		found := false
		for _, candidate := range asList(it.Value) {
			if compare(v, candidate) == 0 {
				found = true
				break
			}
		}
		return found == (it.Operator == InList)
	case Contains, NotContains:
		hit := ContainsFold(text, fmt.Sprint(it.Value))
		return hit == (it.Operator == Contains)
	case IsNull:
		return text == ""
	case IsNotNull:
		return text != ""
	default:
		return false
	}
}

// ContainsFold is a case-insensitive substring test.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

const incomparable = 2

// compare orders a stored value against a filter operand: decimals
// numerically, dates chronologically, everything else as text.
func compare(stored, operand any) int {
	switch s := stored.(type) {
	case decimal.Decimal:
		d, err := decimal.NewFromString(strings.ReplaceAll(fmt.Sprint(operand), ",", ""))
		if err != nil {
			return incomparable
		}
		return s.Cmp(d)
	case time.Time:
		var t time.Time
		switch o := operand.(type) {
		case time.Time:
			t = o
		default:
			parsed, err := time.Parse(entity.DateLayout, fmt.Sprint(operand))
			if err != nil {
				return incomparable
			}
			t = parsed
		}
		return s.Compare(t)
	case nil:
		if operand == nil || fmt.Sprint(operand) == "" {
			return 0
		}
		return incomparable
	default:
		return strings.Compare(fmt.Sprint(stored), fmt.Sprint(operand))
	}
}

func asList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case string:
		parts := strings.Split(x, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = strings.TrimSpace(p)
		}
		return out
	default:
		return []any{v}
	}
}
