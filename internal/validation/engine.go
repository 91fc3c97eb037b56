// Package validation checks form drafts against entity schemas and
// produces localized per-field errors.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
)

// Error codes reported per field.
const (
	CodeRequired = "required"
	CodeNumber   = "number"
	CodePositive = "positive"
	CodeEnum     = "enum"
	CodePattern  = "pattern"
	CodeDate     = "date"
	CodeRule     = "rule"
)

var codeKeys = map[string]string{
	CodeRequired: metadata.KeyRequired,
	CodeNumber:   metadata.KeyNumber,
	CodePositive: metadata.KeyPositive,
	CodeEnum:     metadata.KeyEnum,
	CodePattern:  metadata.KeyPattern,
	CodeDate:     metadata.KeyDate,
	CodeRule:     metadata.KeyRule,
}

type compiled struct {
	patterns map[string]*regexp.Regexp
	rules    map[string]cel.Program
}

// Engine validates drafts. Compiled patterns and rules are cached per kind.
type Engine struct {
	tr  metadata.Translator
	env *cel.Env
	log *logger.Logger

	mu    sync.RWMutex
	cache map[string]*compiled
}

// NewEngine creates an engine resolving messages through tr.
func NewEngine(tr metadata.Translator, log *logger.Logger) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("value", cel.DynType),
		cel.Variable("values", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	if log == nil {
		log = logger.Default()
	}
	return &Engine{
		tr:    tr,
		env:   env,
		log:   log.WithComponent("validation"),
		cache: make(map[string]*compiled),
	}, nil
}

// Compile prepares the schema's patterns and rules. Validate calls it lazily,
// startup calls it eagerly so bad schemas fail fast.
func (e *Engine) Compile(schema metadata.EntitySchema) error {
	_, err := e.compile(schema)
	return err
}

func (e *Engine) compile(schema metadata.EntitySchema) (*compiled, error) {
	e.mu.RLock()
	c, ok := e.cache[schema.Kind]
	e.mu.RUnlock()
	if ok {
		return c, nil
	}

	c = &compiled{
		patterns: make(map[string]*regexp.Regexp),
		rules:    make(map[string]cel.Program),
	}
	for _, f := range schema.Fields {
		if f.Pattern != "" {
			re, err := regexp.Compile(`^(?:` + f.Pattern + `)$`)
			if err != nil {
				return nil, apperror.NewConfiguration(fmt.Sprintf("%s.%s: bad pattern", schema.Kind, f.Key)).WithCause(err)
			}
			c.patterns[f.Key] = re
		}
		if f.Rule != "" {
			ast, iss := e.env.Compile(f.Rule)
			if iss != nil && iss.Err() != nil {
				return nil, apperror.NewConfiguration(fmt.Sprintf("%s.%s: bad rule", schema.Kind, f.Key)).WithCause(iss.Err())
			}
			if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
				return nil, apperror.NewConfiguration(fmt.Sprintf("%s.%s: rule must yield bool", schema.Kind, f.Key))
			}
			prg, err := e.env.Program(ast)
			if err != nil {
				return nil, apperror.NewConfiguration(fmt.Sprintf("%s.%s: rule program", schema.Kind, f.Key)).WithCause(err)
			}
			c.rules[f.Key] = prg
		}
	}

	e.mu.Lock()
	e.cache[schema.Kind] = c
	e.mu.Unlock()
	return c, nil
}

// Validate checks every field of the draft independently and reports at
// most one error per field. The error return is reserved for schema defects;
// a failing draft is reported through Result.
func (e *Engine) Validate(ctx context.Context, schema metadata.EntitySchema, values map[string]string, locale string) (Result, error) {
	c, err := e.compile(schema)
	if err != nil {
		return Result{}, err
	}

	res := newResult(schema)
	for _, f := range schema.Fields {
		v, code := e.checkField(f, values[f.Key], c)
		if code != "" {
			res.add(e.fieldError(f, code, locale))
			continue
		}
		if v != nil {
			res.Values[f.Key] = v
		}
	}

	// rules see every coerced value; fields that failed or are empty are null
	if len(c.rules) > 0 {
		env := make(map[string]any, len(schema.Fields))
		for _, f := range schema.Fields {
			env[f.Key] = celValue(res.Values[f.Key])
		}
		for _, f := range schema.Fields {
			prg, ok := c.rules[f.Key]
			if !ok || res.hasError(f.Key) || res.Values[f.Key] == nil {
				continue
			}
			if !e.evalRule(ctx, prg, schema.Kind, f.Key, env[f.Key], env) {
				res.add(e.fieldError(f, CodeRule, locale))
				delete(res.Values, f.Key)
			}
		}
	}

	return res, nil
}

// checkField runs required, coercion, positive, enum and pattern checks in
// that order; the first failure wins.
func (e *Engine) checkField(f metadata.FieldSpec, raw string, c *compiled) (any, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if f.Required {
			return nil, CodeRequired
		}
		return nil, ""
	}

	v, err := Coerce(f, raw)
	if err != nil {
		if f.Kind == metadata.KindDate {
			return nil, CodeDate
		}
		return nil, CodeNumber
	}

	if f.Positive {
		if d, ok := v.(decimal.Decimal); ok && !d.IsPositive() {
			return nil, CodePositive
		}
	}

	if f.Kind == metadata.KindEnum && !contains(f.Values, trimmed) {
		return nil, CodeEnum
	}

	if re, ok := c.patterns[f.Key]; ok && !re.MatchString(trimmed) {
		return nil, CodePattern
	}

	return v, ""
}

func (e *Engine) evalRule(ctx context.Context, prg cel.Program, kind, key string, value any, values map[string]any) bool {
	out, _, err := prg.ContextEval(ctx, map[string]any{"value": value, "values": values})
	if err != nil {
		e.log.WithContext(ctx).Warnw("rule evaluation failed", "kind", kind, "field", key, "error", err)
		return false
	}
	ok, isBool := out.Value().(bool)
	return isBool && ok
}

func (e *Engine) fieldError(f metadata.FieldSpec, code, locale string) FieldError {
	key := codeKeys[code]
	switch {
	case code == CodePattern && f.PatternMessage != "":
		key = f.PatternMessage
	case code == CodeRule && f.RuleMessage != "":
		key = f.RuleMessage
	}
	return FieldError{
		Field:      f.Key,
		Code:       code,
		MessageKey: key,
		Message:    e.tr.Resolve(locale, key),
	}
}

// groupedNumber accepts Western (1,234,567) or Indian (12,34,567) digit
// grouping in the integer part only.
var groupedNumber = regexp.MustCompile(`^[+-]?(?:\d{1,3}(?:,\d{3})+|\d{1,2}(?:,\d{2})+,\d{3})(?:\.\d+)?$`)

// Coerce converts a raw draft string to the field's typed value.
// Empty input coerces to nil. Text and enum values are trimmed.
func Coerce(f metadata.FieldSpec, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	switch f.Kind {
	case metadata.KindNumber:
		if strings.Contains(trimmed, ",") && !groupedNumber.MatchString(trimmed) {
			return nil, fmt.Errorf("%s: misplaced digit grouping in %q", f.Key, trimmed)
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %w", f.Key, err)
		}
		return d, nil
	case metadata.KindDate:
		t, err := time.Parse(entity.DateLayout, trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: not a date: %w", f.Key, err)
		}
		return t, nil
	default:
		return trimmed, nil
	}
}

// celValue maps stored values onto CEL-native ones.
func celValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		f, _ := x.Float64()
		return f
	default:
		return x
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
