package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"malladmin/internal/core/entity"
)

func TestItemMatch(t *testing.T) {
	rec := entity.NewRecord("payment", "P004", entity.Values{
		"date":   time.Date(2023, 11, 13, 0, 0, 0, 0, time.UTC),
		"store":  "Mumbai Fashion",
		"amount": decimal.NewFromInt(28499),
		"mode":   "Net Banking",
		"status": "pending",
	})

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"eq text", Eq("status", "pending"), true},
		{"eq text mismatch", Eq("status", "paid"), false},
		{"eq id", Eq("id", "P004"), true},
		{"neq", Item{Field: "status", Operator: NotEqual, Value: "paid"}, true},
		{"eq number as string", Eq("amount", "28,499"), true},
		{"lte number", Item{Field: "amount", Operator: LessOrEqual, Value: 30000}, true},
		{"gte number", Item{Field: "amount", Operator: GreaterOrEqual, Value: 30000}, false},
		{"gte date", Item{Field: "date", Operator: GreaterOrEqual, Value: "2023-11-12"}, true},
		{"lte bad date", Item{Field: "date", Operator: LessOrEqual, Value: "soon"}, false},
		{"in list", Item{Field: "status", Operator: InList, Value: []string{"paid", "pending"}}, true},
		{"in csv", Item{Field: "status", Operator: InList, Value: "paid, failed"}, false},
		{"nin", Item{Field: "status", Operator: NotInList, Value: []string{"paid"}}, true},
		{"contains folds case", Item{Field: "store", Operator: Contains, Value: "FASHION"}, true},
		{"ncontains", Item{Field: "mode", Operator: NotContains, Value: "upi"}, true},
		{"null on missing", Item{Field: "invoiceId", Operator: IsNull}, true},
		{"not null", Item{Field: "store", Operator: IsNotNull}, true},
		{"unknown operator", Item{Field: "store", Operator: "regex", Value: "."}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Match(rec))
		})
	}
}

func TestMatchAll(t *testing.T) {
	rec := entity.NewRecord("issue", "ISS001", entity.Values{"priority": "high", "status": "in-progress"})

	assert.True(t, Match(rec, nil))
	assert.True(t, Match(rec, []Item{Eq("priority", "high"), Eq("status", "in-progress")}))
	assert.False(t, Match(rec, []Item{Eq("priority", "high"), Eq("status", "resolved")}))
}
