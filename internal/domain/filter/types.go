// Package filter describes list selection conditions and evaluates them
// against in-memory records.
package filter

// ComparisonType is the kind of comparison an Item performs.
type ComparisonType string

const (
	Equal          ComparisonType = "eq"
	NotEqual       ComparisonType = "neq"
	LessOrEqual    ComparisonType = "lte"
	GreaterOrEqual ComparisonType = "gte"
	InList         ComparisonType = "in"
	NotInList      ComparisonType = "nin"
	Contains       ComparisonType = "contains"  // case-insensitive substring
	NotContains    ComparisonType = "ncontains" // negated Contains

	IsNull    ComparisonType = "null"     // empty
	IsNotNull ComparisonType = "not_null" // filled
)

// Item is one selection condition.
type Item struct {
	Field    string         `json:"field"`    // field key, or "id"
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"` // string, number, or []string for in/nin
}

// Eq is shorthand for an equality condition, the status tab filter.
func Eq(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}
