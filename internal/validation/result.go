package validation

import (
	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/metadata"
)

// FieldError is the single reported problem of one field.
type FieldError struct {
	Field      string `json:"field"`
	Code       string `json:"code"`
	MessageKey string `json:"messageKey"`
	Message    string `json:"message"`
}

// Result maps each field to valid or one FieldError.
// Values holds the coerced values of valid, non-empty fields.
type Result struct {
	Kind   string
	Values entity.Values

	order  []string
	errors map[string]FieldError
}

func newResult(schema metadata.EntitySchema) Result {
	return Result{
		Kind:   schema.Kind,
		Values: make(entity.Values, len(schema.Fields)),
		order:  schema.Keys(),
		errors: make(map[string]FieldError),
	}
}

func (r *Result) add(fe FieldError) {
	r.errors[fe.Field] = fe
}

func (r Result) hasError(field string) bool {
	_, ok := r.errors[field]
	return ok
}

// Valid reports whether no field has an error.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Error returns the error of one field.
func (r Result) Error(field string) (FieldError, bool) {
	fe, ok := r.errors[field]
	return fe, ok
}

// Errors returns field errors in schema order.
func (r Result) Errors() []FieldError {
	out := make([]FieldError, 0, len(r.errors))
	for _, key := range r.order {
		if fe, ok := r.errors[key]; ok {
			out = append(out, fe)
		}
	}
	return out
}

// Messages returns field key to localized message.
func (r Result) Messages() map[string]string {
	out := make(map[string]string, len(r.errors))
	for k, fe := range r.errors {
		out[k] = fe.Message
	}
	return out
}

// Err converts an invalid result into a validation AppError, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return apperror.NewValidation("validation failed").
		WithDetail("entity", r.Kind).
		WithDetail("fields", r.Errors())
}
