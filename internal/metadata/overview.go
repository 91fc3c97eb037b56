package metadata

import (
	"fmt"

	"malladmin/internal/core/apperror"
)

// Aggregate is how a stat card reduces a collection.
type Aggregate string

const (
	AggregateCount Aggregate = "count"
	AggregateSum   Aggregate = "sum"
)

// Overview message keys.
const (
	KeyOverviewTitle    = "overview.title"
	KeyOverviewSubtitle = "overview.subtitle"
	KeyOverviewRecent   = "overview.recent"
)

// StatSpec declares one stat card. Where narrows the records by exact
// field value before aggregating; Field is the number summed.
type StatSpec struct {
	Key       string
	Kind      string
	Aggregate Aggregate
	Field     string
	Where     map[string]string
}

// RecentSpec declares the latest-records table: Limit records of Kind,
// newest DateField first.
type RecentSpec struct {
	Kind      string
	DateField string
	Limit     int
}

// OverviewSpec declares the dashboard.
type OverviewSpec struct {
	Stats  []StatSpec
	Recent RecentSpec
}

// StatKey is the label key of a stat card.
func StatKey(key string) string { return "overview.stat." + key }

// Keys lists the locale keys the overview needs.
func (o OverviewSpec) Keys() []string {
	keys := []string{KeyOverviewTitle, KeyOverviewSubtitle, KeyOverviewRecent}
	for _, s := range o.Stats {
		keys = append(keys, StatKey(s.Key))
	}
	return keys
}

// Check verifies the overview against the registered schemas.
func (o OverviewSpec) Check(reg *Registry) error {
	fail := func(format string, args ...any) error {
		return apperror.NewConfiguration("overview: " + fmt.Sprintf(format, args...))
	}

	seen := make(map[string]struct{}, len(o.Stats))
	for _, s := range o.Stats {
		if s.Key == "" {
			return fail("stat without key")
		}
		if _, dup := seen[s.Key]; dup {
			return fail("duplicate stat %q", s.Key)
		}
		seen[s.Key] = struct{}{}

		schema, err := reg.Get(s.Kind)
		if err != nil {
			return fail("stat %q: unknown kind %q", s.Key, s.Kind)
		}
		switch s.Aggregate {
		case AggregateCount:
		case AggregateSum:
			if f, ok := schema.Field(s.Field); !ok || f.Kind != KindNumber {
				return fail("stat %q: %s.%s is not a number field", s.Key, s.Kind, s.Field)
			}
		default:
			return fail("stat %q: unknown aggregate %q", s.Key, s.Aggregate)
		}
		for field := range s.Where {
			if _, ok := schema.Field(field); !ok {
				return fail("stat %q: %s has no field %q", s.Key, s.Kind, field)
			}
		}
	}

	if o.Recent.Kind == "" {
		return nil
	}
	schema, err := reg.Get(o.Recent.Kind)
	if err != nil {
		return fail("recent: unknown kind %q", o.Recent.Kind)
	}
	if f, ok := schema.Field(o.Recent.DateField); !ok || f.Kind != KindDate {
		return fail("recent: %s.%s is not a date field", o.Recent.Kind, o.Recent.DateField)
	}
	if o.Recent.Limit <= 0 {
		return fail("recent: limit must be positive")
	}
	return nil
}
