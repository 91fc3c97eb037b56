// Package form holds the state of one add or edit form from open to commit.
package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"malladmin/internal/core/apperror"
	appctx "malladmin/internal/core/context"
	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
	"malladmin/internal/validation"
	"malladmin/pkg/logger"
)

var tracer = otel.Tracer("malladmin/form")

// State of a session.
type State int

const (
	Editing State = iota
	Submitting
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Validator checks a draft. *validation.Engine implements it.
type Validator interface {
	Validate(ctx context.Context, schema metadata.EntitySchema, values map[string]string, locale string) (validation.Result, error)
}

// Committer persists a validated record. The real backend is a future seam;
// SimulatedCommitter stands in for it.
type Committer interface {
	Commit(ctx context.Context, rec entity.Record, mode entity.CommitMode) error
}

// IDSource assigns identifiers to added records. *id.Source implements it.
type IDSource interface {
	Next(ctx context.Context, cfg numerator.Config) (string, error)
}

// Config wires a session's collaborators.
type Config struct {
	Validator Validator
	Committer Committer
	IDs       IDSource

	// Locale overrides the locale carried by the submit context.
	Locale string
	Clock  func() time.Time
	Logger *logger.Logger
}

// Outcome reports a submit. Record is set only when the form committed.
type Outcome struct {
	Mode      entity.CommitMode
	Result    validation.Result
	Record    *entity.Record
	Committed bool
}

// Session is one open form. It is safe for concurrent use; at most one
// submit is in flight at a time.
type Session struct {
	cfg      Config
	schema   metadata.EntitySchema
	mode     entity.CommitMode
	original *entity.Record

	mu    sync.Mutex
	state State
	draft map[string]string
	last  *validation.Result
}

// Open starts a session. A nil initial record opens an add form seeded
// with the schema defaults; otherwise an edit form over the record.
func Open(cfg Config, schema metadata.EntitySchema, initial *entity.Record) *Session {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	cfg.Logger = cfg.Logger.WithComponent("form").With("kind", schema.Kind)

	s := &Session{cfg: cfg, schema: schema, state: Editing}
	if initial == nil {
		s.mode = entity.ModeAdd
		s.draft = schema.Defaults(cfg.Clock())
		return s
	}

	rec := initial.Clone()
	s.mode = entity.ModeEdit
	s.original = &rec
	s.draft = make(map[string]string, len(schema.Fields))
	for _, f := range schema.Fields {
		s.draft[f.Key] = rec.Text(f.Key)
	}
	return s
}

// Mode reports whether the session adds or edits.
func (s *Session) Mode() entity.CommitMode { return s.mode }

// Schema returns the schema the session validates against.
func (s *Session) Schema() metadata.EntitySchema { return s.schema }

// RecordID returns the edited record's id, or "" for add forms.
func (s *Session) RecordID() string {
	if s.original == nil {
		return ""
	}
	return s.original.ID
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the raw field values.
func (s *Session) Draft() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.draft))
	for k, v := range s.draft {
		out[k] = v
	}
	return out
}

// LastResult returns the result of the last failed submit, if any.
func (s *Session) LastResult() (validation.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return validation.Result{}, false
	}
	return *s.last, true
}

// UpdateField stores a raw value verbatim. Validation waits for Submit.
func (s *Session) UpdateField(key, raw string) error {
	if _, ok := s.schema.Field(key); !ok {
		return apperror.NewConfiguration(fmt.Sprintf("%s has no field %q", s.schema.Kind, key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.draft[key] = raw
	return nil
}

// Submit validates the draft and, when valid, commits it. An invalid draft
// returns the session to Editing with the result attached and no error.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	s.state = Submitting
	draft := make(map[string]string, len(s.draft))
	for k, v := range s.draft {
		draft[k] = v
	}
	s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "form.submit",
		trace.WithAttributes(
			attribute.String("entity.kind", s.schema.Kind),
			attribute.String("form.mode", string(s.mode)),
		))
	defer span.End()

	locale := s.cfg.Locale
	if locale == "" {
		locale = appctx.GetLocale(ctx)
	}
	log := s.cfg.Logger.WithContext(ctx)

	res, err := s.cfg.Validator.Validate(ctx, s.schema, draft, locale)
	if err != nil {
		s.settle(Editing, nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "validate")
		return Outcome{}, err
	}
	if !res.Valid() {
		s.settle(Editing, &res)
		span.SetAttributes(attribute.Int("form.errors", len(res.Errors())))
		log.Debugw("submit rejected", "errors", res.Messages())
		return Outcome{Mode: s.mode, Result: res}, nil
	}

	rec, err := s.buildRecord(ctx, res)
	if err != nil {
		s.settle(Editing, nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "assign id")
		return Outcome{}, err
	}

	if err := s.cfg.Committer.Commit(ctx, rec, s.mode); err != nil {
		s.settle(Editing, nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, "commit")
		return Outcome{}, err
	}

	s.settle(Committed, nil)
	span.SetAttributes(attribute.String("record.id", rec.ID))
	log.Infow("form committed", "id", rec.ID, "mode", s.mode)
	return Outcome{Mode: s.mode, Result: res, Record: &rec, Committed: true}, nil
}

// Cancel discards the draft. It is rejected while a submit is in flight or
// after commit; cancelling twice is fine.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Cancelled:
		return nil
	case Editing:
		s.state = Cancelled
		s.draft = nil
		return nil
	default:
		return s.editableLocked()
	}
}

func (s *Session) editableLocked() error {
	switch s.state {
	case Editing:
		return nil
	case Submitting:
		return apperror.NewSubmitInFlight(s.schema.Kind)
	default:
		return apperror.NewSessionClosed(s.schema.Kind, s.state.String())
	}
}

func (s *Session) settle(state State, res *validation.Result) {
	s.mu.Lock()
	s.state = state
	s.last = res
	s.mu.Unlock()
}

func (s *Session) buildRecord(ctx context.Context, res validation.Result) (entity.Record, error) {
	values := res.Values.Clone()
	if s.mode == entity.ModeEdit {
		rec := entity.Record{
			ID:      s.original.ID,
			Kind:    s.schema.Kind,
			Version: s.original.Version,
			Values:  values,
		}
		rec.Touch()
		return rec, nil
	}

	newID, err := s.cfg.IDs.Next(ctx, s.schema.Numbering)
	if err != nil {
		return entity.Record{}, apperror.NewInternal(fmt.Errorf("assign id: %w", err))
	}
	return entity.NewRecord(s.schema.Kind, newID, values), nil
}
