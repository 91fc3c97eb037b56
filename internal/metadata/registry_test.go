package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"malladmin/internal/core/apperror"
)

func sampleSchema() EntitySchema {
	return EntitySchema{
		Kind: "widget",
		Fields: []FieldSpec{
			{Key: "name", Kind: KindText, Required: true},
			{Key: "count", Kind: KindNumber, Positive: true, Default: "0", DefaultExempt: true},
			{Key: "size", Kind: KindEnum, Values: []string{"s", "m"}, Default: "m"},
			{Key: "since", Kind: KindDate, Default: DefaultToday},
		},
		SearchFields: []string{"name", "id"},
		TabField:     "size",
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(sampleSchema()))

	got, err := r.Get("widget")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count", "size", "since"}, got.Keys())

	// callers get copies
	got.Fields[0].Key = "mutated"
	again, _ := r.Get("widget")
	assert.Equal(t, "name", again.Fields[0].Key)
}

func TestRegistry_GetUnknown(t *testing.T) {
	_, err := NewRegistry().Get("ghost")
	require.Error(t, err)
	assert.True(t, apperror.IsConfiguration(err))
}

func TestRegistry_RejectsDuplicateKind(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(sampleSchema()))
	assert.Error(t, r.Register(sampleSchema()))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EntitySchema)
	}{
		{"empty kind", func(s *EntitySchema) { s.Kind = "" }},
		{"no fields", func(s *EntitySchema) { s.Fields = nil }},
		{"duplicate key", func(s *EntitySchema) { s.Fields[1].Key = "name" }},
		{"id is reserved", func(s *EntitySchema) { s.Fields[0].Key = "id" }},
		{"unknown kind", func(s *EntitySchema) { s.Fields[0].Kind = "blob" }},
		{"enum without values", func(s *EntitySchema) { s.Fields[2].Values = nil }},
		{"enum default not allowed", func(s *EntitySchema) { s.Fields[2].Default = "xl" }},
		{"positive default not exempt", func(s *EntitySchema) { s.Fields[1].DefaultExempt = false }},
		{"positive on text", func(s *EntitySchema) { s.Fields[0].Positive = true }},
		{"bad number default", func(s *EntitySchema) { s.Fields[1].Default = "ten" }},
		{"bad date default", func(s *EntitySchema) { s.Fields[3].Default = "yesterday" }},
		{"bad pattern", func(s *EntitySchema) { s.Fields[0].Pattern = "([" }},
		{"unknown search field", func(s *EntitySchema) { s.SearchFields = []string{"nope"} }},
		{"tab field not enum", func(s *EntitySchema) { s.TabField = "name" }},
	}

	require.NoError(t, Check(sampleSchema()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sampleSchema()
			tt.mutate(&s)
			err := Check(s)
			require.Error(t, err)
			assert.True(t, apperror.IsConfiguration(err))
		})
	}
}

func TestSchema_Defaults(t *testing.T) {
	now := time.Date(2023, 3, 10, 15, 0, 0, 0, time.UTC)
	got := sampleSchema().Defaults(now)

	assert.Equal(t, map[string]string{
		"name":  "",
		"count": "0",
		"size":  "m",
		"since": "2023-03-10",
	}, got)
}

func TestRegistry_RequiredKeys(t *testing.T) {
	r := NewRegistry()
	s := sampleSchema()
	s.Fields[0].Pattern = "^[a-z]+$"
	s.Fields[0].PatternMessage = "widget.validation.name"
	r.MustRegister(s)

	keys := r.RequiredKeys()
	for _, want := range []string{
		"widget.title",
		"widget.field.name",
		"widget.enum.size.s",
		"widget.success.add",
		"widget.success.edit",
		"widget.success.delete",
		"widget.validation.name",
		KeyPositive,
		KeyListCount,
	} {
		assert.Contains(t, keys, want)
	}
	assert.IsIncreasing(t, keys)
}

type echoTranslator struct{}

func (echoTranslator) Resolve(locale, key string) string { return locale + ":" + key }

func TestDescribe(t *testing.T) {
	d := Describe(sampleSchema(), echoTranslator{}, "hi")

	assert.Equal(t, "hi:widget.title", d.Title)
	require.Len(t, d.Fields, 4)
	assert.Equal(t, "hi:widget.field.name", d.Fields[0].Label)
	assert.Equal(t, []Option{
		{Value: "s", Label: "hi:widget.enum.size.s"},
		{Value: "m", Label: "hi:widget.enum.size.m"},
	}, d.Fields[2].Options)
}
