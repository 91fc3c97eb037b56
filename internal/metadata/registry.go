// Package metadata describes the entity kinds the list engine manages.
// A schema is declared once per kind and is immutable after registration.
package metadata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
)

// FieldKind defines the data type of a field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	KindEnum   FieldKind = "enum"
	KindDate   FieldKind = "date"
)

// DefaultToday as a date field default means the day the form opens.
const DefaultToday = "@today"

// IDField is the pseudo field every record exposes for search and columns.
const IDField = "id"

// FieldSpec describes one form field.
type FieldSpec struct {
	Key      string    `json:"key"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Positive bool      `json:"positive,omitempty"`

	// Pattern must match the whole trimmed value. PatternMessage is a locale key.
	Pattern        string `json:"pattern,omitempty"`
	PatternMessage string `json:"-"`

	// Values lists the allowed enum values in display order.
	Values []string `json:"values,omitempty"`

	// Rule is a CEL expression over `value` (the coerced field value) that must yield true.
	Rule        string `json:"rule,omitempty"`
	RuleMessage string `json:"-"`

	// Default is the raw initial value for add forms.
	Default string `json:"default,omitempty"`
	// DefaultExempt lets a positive field start at a non-positive default (0 quantity).
	DefaultExempt bool `json:"-"`
}

// EntitySchema declares a list kind.
type EntitySchema struct {
	Kind         string           `json:"kind"`
	Fields       []FieldSpec      `json:"fields"`
	SearchFields []string         `json:"searchFields"`
	TabField     string           `json:"tabField,omitempty"`
	Numbering    numerator.Config `json:"-"`
}

// Field returns the field declared under key.
func (s EntitySchema) Field(key string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Keys returns field keys in declaration order.
func (s EntitySchema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Defaults returns the raw add-form values, with DefaultToday resolved against now.
func (s EntitySchema) Defaults(now time.Time) map[string]string {
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		v := f.Default
		if f.Kind == KindDate && v == DefaultToday {
			v = now.Format(entity.DateLayout)
		}
		out[f.Key] = v
	}
	return out
}

func (s EntitySchema) clone() EntitySchema {
	c := s
	c.Fields = make([]FieldSpec, len(s.Fields))
	for i, f := range s.Fields {
		f.Values = append([]string(nil), f.Values...)
		c.Fields[i] = f
	}
	c.SearchFields = append([]string(nil), s.SearchFields...)
	return c
}

// Registry stores entity schemas.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]EntitySchema
}

func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]EntitySchema),
	}
}

// Register validates and stores a schema. Kinds register once.
func (r *Registry) Register(schema EntitySchema) error {
	if err := Check(schema); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[schema.Kind]; exists {
		return apperror.NewConfiguration(fmt.Sprintf("schema %q already registered", schema.Kind))
	}
	r.schemas[schema.Kind] = schema.clone()
	return nil
}

// MustRegister is Register for startup wiring; it panics on a bad schema.
func (r *Registry) MustRegister(schema EntitySchema) {
	if err := r.Register(schema); err != nil {
		panic(err)
	}
}

// Get returns a copy of the schema for kind.
func (r *Registry) Get(kind string) (EntitySchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[kind]
	if !ok {
		return EntitySchema{}, apperror.NewConfiguration(fmt.Sprintf("unknown entity kind %q", kind)).
			WithDetail("kind", kind)
	}
	return s.clone(), nil
}

// List returns all schemas sorted by kind.
func (r *Registry) List() []EntitySchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]EntitySchema, 0, len(r.schemas))
	for _, s := range r.schemas {
		list = append(list, s.clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Kind < list[j].Kind })
	return list
}

// Kinds returns registered kinds sorted.
func (r *Registry) Kinds() []string {
	list := r.List()
	kinds := make([]string, len(list))
	for i, s := range list {
		kinds[i] = s.Kind
	}
	return kinds
}

// RequiredKeys returns every locale key the registered schemas and the
// shared UI need, sorted and deduplicated.
func (r *Registry) RequiredKeys() []string {
	seen := make(map[string]struct{})
	for _, k := range SharedKeys {
		seen[k] = struct{}{}
	}
	for _, s := range r.List() {
		for _, k := range SchemaKeys(s) {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check enforces schema invariants.
func Check(s EntitySchema) error {
	fail := func(format string, args ...any) error {
		return apperror.NewConfiguration(fmt.Sprintf("schema %q: ", s.Kind) + fmt.Sprintf(format, args...)).
			WithDetail("kind", s.Kind)
	}

	if strings.TrimSpace(s.Kind) == "" {
		return apperror.NewConfiguration("schema kind is required")
	}
	if len(s.Fields) == 0 {
		return fail("no fields")
	}

	seen := make(map[string]FieldSpec, len(s.Fields))
	for _, f := range s.Fields {
		if f.Key == "" || f.Key == IDField {
			return fail("invalid field key %q", f.Key)
		}
		if _, dup := seen[f.Key]; dup {
			return fail("duplicate field %q", f.Key)
		}
		seen[f.Key] = f
		if err := checkField(f); err != nil {
			return fail("field %q: %v", f.Key, err)
		}
	}

	for _, key := range s.SearchFields {
		if _, ok := seen[key]; !ok && key != IDField {
			return fail("search field %q is not declared", key)
		}
	}

	if s.TabField != "" {
		if f, ok := seen[s.TabField]; !ok || f.Kind != KindEnum {
			return fail("tab field %q must be an enum field", s.TabField)
		}
	}
	return nil
}

func checkField(f FieldSpec) error {
	switch f.Kind {
	case KindText, KindNumber, KindEnum, KindDate:
	default:
		return fmt.Errorf("unknown kind %q", f.Kind)
	}

	if f.Positive && f.Kind != KindNumber {
		return fmt.Errorf("positive applies to number fields only")
	}

	if f.Kind == KindEnum {
		if len(f.Values) == 0 {
			return fmt.Errorf("enum without values")
		}
		values := make(map[string]struct{}, len(f.Values))
		for _, v := range f.Values {
			if _, dup := values[v]; dup {
				return fmt.Errorf("duplicate enum value %q", v)
			}
			values[v] = struct{}{}
		}
		if _, ok := values[f.Default]; f.Default != "" && !ok {
			return fmt.Errorf("default %q is not an allowed value", f.Default)
		}
	}

	if f.Kind == KindNumber && f.Default != "" {
		d, err := decimal.NewFromString(f.Default)
		if err != nil {
			return fmt.Errorf("default %q is not a number", f.Default)
		}
		if f.Positive && !d.IsPositive() && !f.DefaultExempt {
			return fmt.Errorf("default %q is not positive", f.Default)
		}
	}

	if f.Kind == KindDate && f.Default != "" && f.Default != DefaultToday {
		if _, err := time.Parse(entity.DateLayout, f.Default); err != nil {
			return fmt.Errorf("default %q is not a date", f.Default)
		}
	}

	if f.Pattern != "" {
		if _, err := regexp.Compile(f.Pattern); err != nil {
			return fmt.Errorf("pattern: %w", err)
		}
	}
	return nil
}
