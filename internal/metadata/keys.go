package metadata

import "malladmin/internal/core/entity"

// Shared message keys.
const (
	KeyRequired = "validation.required"
	KeyNumber   = "validation.number"
	KeyPositive = "validation.positive"
	KeyEnum     = "validation.enum"
	KeyPattern  = "validation.pattern"
	KeyDate     = "validation.date"
	KeyRule     = "validation.rule"

	KeyListCount = "list.count"
	KeyListEmpty = "list.empty"
	KeyTabAll    = "list.tab.all"
	KeyIDLabel   = "field.id"

	KeyErrValidation = "error.validation"
	KeyErrNotFound   = "error.notFound"
	KeyErrConflict   = "error.conflict"
	KeyErrInternal   = "error.internal"
)

// SharedKeys must exist in every locale regardless of registered kinds.
var SharedKeys = []string{
	KeyRequired, KeyNumber, KeyPositive, KeyEnum, KeyPattern, KeyDate, KeyRule,
	"action.add", "action.save", "action.cancel", "action.edit", "action.delete",
	"action.search", "action.export",
	KeyListCount, KeyListEmpty, KeyTabAll, KeyIDLabel,
	KeyErrValidation, KeyErrNotFound, KeyErrConflict, KeyErrInternal,
}

func TitleKey(kind string) string { return kind + ".title" }

func FieldKey(kind, field string) string { return kind + ".field." + field }

func EnumKey(kind, field, value string) string { return kind + ".enum." + field + "." + value }

// SuccessKey names the notice shown after an add, edit or delete.
func SuccessKey(kind string, mode entity.CommitMode) string {
	return kind + ".success." + string(mode)
}

// DeleteSuccessKey names the notice shown after a delete.
func DeleteSuccessKey(kind string) string { return kind + ".success.delete" }

// SchemaKeys lists the locale keys one schema needs.
func SchemaKeys(s EntitySchema) []string {
	keys := []string{
		TitleKey(s.Kind),
		SuccessKey(s.Kind, entity.ModeAdd),
		SuccessKey(s.Kind, entity.ModeEdit),
		DeleteSuccessKey(s.Kind),
	}
	for _, f := range s.Fields {
		keys = append(keys, FieldKey(s.Kind, f.Key))
		for _, v := range f.Values {
			keys = append(keys, EnumKey(s.Kind, f.Key, v))
		}
		if f.PatternMessage != "" {
			keys = append(keys, f.PatternMessage)
		}
		if f.RuleMessage != "" {
			keys = append(keys, f.RuleMessage)
		}
	}
	return keys
}
