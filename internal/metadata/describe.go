package metadata

// Translator resolves locale keys. *i18n.Catalog implements it.
type Translator interface {
	Resolve(locale, key string) string
}

// Option is an enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldDescription is a field as a form renderer needs it.
type FieldDescription struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`
	Positive bool      `json:"positive,omitempty"`
	Pattern  string    `json:"pattern,omitempty"`
	Default  string    `json:"default,omitempty"`
	Options  []Option  `json:"options,omitempty"`
}

// Description is a schema rendered for one locale.
type Description struct {
	Kind         string             `json:"kind"`
	Title        string             `json:"title"`
	Fields       []FieldDescription `json:"fields"`
	SearchFields []string           `json:"searchFields"`
	TabField     string             `json:"tabField,omitempty"`
}

// Describe localizes a schema's labels.
func Describe(s EntitySchema, tr Translator, locale string) Description {
	d := Description{
		Kind:         s.Kind,
		Title:        tr.Resolve(locale, TitleKey(s.Kind)),
		Fields:       make([]FieldDescription, 0, len(s.Fields)),
		SearchFields: append([]string(nil), s.SearchFields...),
		TabField:     s.TabField,
	}
	for _, f := range s.Fields {
		fd := FieldDescription{
			Key:      f.Key,
			Label:    tr.Resolve(locale, FieldKey(s.Kind, f.Key)),
			Kind:     f.Kind,
			Required: f.Required,
			Positive: f.Positive,
			Pattern:  f.Pattern,
			Default:  f.Default,
		}
		for _, v := range f.Values {
			fd.Options = append(fd.Options, Option{Value: v, Label: tr.Resolve(locale, EnumKey(s.Kind, f.Key, v))})
		}
		d.Fields = append(d.Fields, fd)
	}
	return d
}
