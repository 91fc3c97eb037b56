package domain

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/domain/filter"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
)

var tracer = otel.Tracer("malladmin/domain")

// ListController owns the working collection of one kind.
// Mutations are serialized; readers see immutable snapshots, so a search
// sequence already iterating is not disturbed by a concurrent commit.
type ListController struct {
	schema  metadata.EntitySchema
	backend Backend
	hooks   *HookRegistry[entity.Record]
	log     *logger.Logger

	mu      sync.RWMutex
	records []entity.Record
}

// ListControllerConfig configures the list controller.
type ListControllerConfig struct {
	Schema  metadata.EntitySchema
	Backend Backend // optional, defaults to an empty SeedBackend
	Logger  *logger.Logger
}

// NewListController creates a controller with an empty collection.
func NewListController(cfg ListControllerConfig) *ListController {
	if cfg.Backend == nil {
		cfg.Backend = NewSeedBackend(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &ListController{
		schema:  cfg.Schema,
		backend: cfg.Backend,
		hooks:   NewHookRegistry[entity.Record](),
		log:     cfg.Logger.WithComponent("list").With("kind", cfg.Schema.Kind),
	}
}

// Schema returns the controller's schema.
func (c *ListController) Schema() metadata.EntitySchema { return c.schema }

// Hooks returns the hook registry for external registration.
func (c *ListController) Hooks() *HookRegistry[entity.Record] { return c.hooks }

// Load replaces the collection with what the backend lists.
func (c *ListController) Load(ctx context.Context) error {
	recs, err := c.backend.List(ctx, c.schema.Kind)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.schema.Kind, err)
	}
	c.SetCollection(recs)
	c.log.WithContext(ctx).Debugw("collection loaded", "count", len(recs))
	return nil
}

// SetCollection replaces the working set.
func (c *ListController) SetCollection(records []entity.Record) {
	next := cloneAll(records)
	c.mu.Lock()
	c.records = next
	c.mu.Unlock()
}

func (c *ListController) snapshot() []entity.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records
}

// Len returns the collection size.
func (c *ListController) Len() int {
	return len(c.snapshot())
}

// Records returns a copy of the collection in order.
func (c *ListController) Records() []entity.Record {
	return cloneAll(c.snapshot())
}

// Search yields, in collection order, every record where some search field
// contains query case-insensitively. The empty query yields everything.
// The sequence is lazy and restartable: each range re-reads the collection.
func (c *ListController) Search(query string) iter.Seq[entity.Record] {
	return func(yield func(entity.Record) bool) {
		for _, rec := range c.snapshot() {
			if !c.matchesSearch(rec, query) {
				continue
			}
			if !yield(rec.Clone()) {
				return
			}
		}
	}
}

func (c *ListController) matchesSearch(rec entity.Record, query string) bool {
	if query == "" {
		return true
	}
	for _, key := range c.schema.SearchFields {
		if filter.ContainsFold(rec.Text(key), query) {
			return true
		}
	}
	return false
}

// List applies search, filters and pagination.
func (c *ListController) List(f ListFilter) ListResult[entity.Record] {
	var matched []entity.Record
	for rec := range c.Search(f.Search) {
		if filter.Match(rec, f.Filters) {
			matched = append(matched, rec)
		}
	}

	res := ListResult[entity.Record]{
		Items:      []entity.Record{},
		TotalCount: len(matched),
		Limit:      f.Limit,
		Offset:     f.Offset,
	}
	if f.Offset < 0 || f.Offset >= len(matched) {
		return res
	}
	end := len(matched)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	res.Items = matched[f.Offset:end]
	return res
}

// Counts tallies records by the value of field (tab badges).
func (c *ListController) Counts(field string) map[string]int {
	out := make(map[string]int)
	for _, rec := range c.snapshot() {
		out[rec.Text(field)]++
	}
	return out
}

// Get returns the record with id.
func (c *ListController) Get(id string) (entity.Record, error) {
	for _, rec := range c.snapshot() {
		if rec.ID == id {
			return rec.Clone(), nil
		}
	}
	return entity.Record{}, apperror.NewNotFound(c.schema.Kind, id)
}

func indexOf(recs []entity.Record, id string) int {
	for i, r := range recs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ApplyCommit folds a committed record into the collection. Add appends a
// new id and replaces an existing one in place; edit requires the id.
func (c *ListController) ApplyCommit(ctx context.Context, rec entity.Record, mode entity.CommitMode) error {
	if rec.Kind != c.schema.Kind {
		return apperror.NewConfiguration(fmt.Sprintf("record of kind %q committed to %q list", rec.Kind, c.schema.Kind))
	}
	if !mode.Valid() {
		return apperror.NewConfiguration(fmt.Sprintf("unknown commit mode %q", mode))
	}

	ctx, span := tracer.Start(ctx, "list.apply_commit",
		trace.WithAttributes(
			attribute.String("entity.kind", c.schema.Kind),
			attribute.String("record.id", rec.ID),
			attribute.String("commit.mode", string(mode)),
		))
	defer span.End()

	rec = rec.Clone()
	before, after := BeforeCreate, AfterCreate
	if mode == entity.ModeEdit {
		before, after = BeforeUpdate, AfterUpdate
	}
	if err := c.hooks.Run(ctx, before, rec); err != nil {
		return err
	}

	c.mu.Lock()
	idx := indexOf(c.records, rec.ID)
	if mode == entity.ModeEdit && idx < 0 {
		c.mu.Unlock()
		return apperror.NewNotFound(c.schema.Kind, rec.ID)
	}

	var err error
	if mode == entity.ModeAdd {
		err = c.backend.Create(ctx, rec)
	} else {
		err = c.backend.Update(ctx, rec)
	}
	if err != nil {
		c.mu.Unlock()
		span.RecordError(err)
		return fmt.Errorf("%s %s: %w", mode, c.schema.Kind, err)
	}

	next := make([]entity.Record, len(c.records), len(c.records)+1)
	copy(next, c.records)
	if idx >= 0 {
		next[idx] = rec
	} else {
		next = append(next, rec)
	}
	c.records = next
	c.mu.Unlock()

	if err := c.hooks.Run(ctx, after, rec); err != nil {
		// the record is already in place
		c.log.WithContext(ctx).Warnw("after-commit hook failed", "id", rec.ID, "error", err)
	}
	return nil
}

// Delete removes the record with id and reports whether it was there.
// An absent id is a no-op.
func (c *ListController) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "list.delete",
		trace.WithAttributes(
			attribute.String("entity.kind", c.schema.Kind),
			attribute.String("record.id", id),
		))
	defer span.End()

	rec, err := c.Get(id)
	if err != nil {
		c.log.WithContext(ctx).Debugw("delete of absent record ignored", "id", id)
		return false, nil
	}
	if err := c.hooks.Run(ctx, BeforeDelete, rec); err != nil {
		return false, err
	}

	c.mu.Lock()
	idx := indexOf(c.records, id)
	if idx < 0 {
		// removed while the hooks ran
		c.mu.Unlock()
		return false, nil
	}
	if err := c.backend.Delete(ctx, c.schema.Kind, id); err != nil {
		c.mu.Unlock()
		span.RecordError(err)
		return false, fmt.Errorf("delete %s: %w", c.schema.Kind, err)
	}

	next := make([]entity.Record, 0, len(c.records)-1)
	next = append(next, c.records[:idx]...)
	next = append(next, c.records[idx+1:]...)
	c.records = next
	c.mu.Unlock()

	span.SetAttributes(attribute.Bool("record.removed", true))
	if err := c.hooks.Run(ctx, AfterDelete, rec); err != nil {
		c.log.WithContext(ctx).Warnw("after-delete hook failed", "id", id, "error", err)
	}
	return true, nil
}
