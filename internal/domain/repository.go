// Package domain holds the list controller: the working collection of one
// entity kind and the operations that read and mutate it.
package domain

import (
	"context"
	"sync"

	"malladmin/internal/core/entity"
	"malladmin/internal/domain/filter"
)

// ListFilter contains common filtering options for list queries.
type ListFilter struct {
	// Search is matched case-insensitively against the schema's search fields
	Search string `json:"search,omitempty"`

	// Filters are additional conditions, e.g. a status tab
	Filters []filter.Item `json:"filters,omitempty"`

	// Pagination; Limit 0 means everything
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ListResult contains paginated list results.
type ListResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}

// Backend is the seam to a future persistence service. Mutators call it
// before touching the in-memory collection.
type Backend interface {
	List(ctx context.Context, kind string) ([]entity.Record, error)
	Create(ctx context.Context, rec entity.Record) error
	Update(ctx context.Context, rec entity.Record) error
	Delete(ctx context.Context, kind, id string) error
}

// SeedBackend serves static seed data and accepts every mutation.
type SeedBackend struct {
	mu    sync.RWMutex
	seeds map[string][]entity.Record
}

// NewSeedBackend creates a backend over seed collections keyed by kind.
func NewSeedBackend(seeds map[string][]entity.Record) *SeedBackend {
	b := &SeedBackend{seeds: make(map[string][]entity.Record, len(seeds))}
	for kind, recs := range seeds {
		b.seeds[kind] = cloneAll(recs)
	}
	return b
}

// List returns a copy of the seed collection for kind.
func (b *SeedBackend) List(_ context.Context, kind string) ([]entity.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneAll(b.seeds[kind]), nil
}

// Create accepts the record.
func (b *SeedBackend) Create(context.Context, entity.Record) error { return nil }

// Update accepts the record.
func (b *SeedBackend) Update(context.Context, entity.Record) error { return nil }

// Delete accepts the deletion.
func (b *SeedBackend) Delete(context.Context, string, string) error { return nil }

var _ Backend = (*SeedBackend)(nil)

func cloneAll(recs []entity.Record) []entity.Record {
	if recs == nil {
		return nil
	}
	out := make([]entity.Record, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	mu    sync.RWMutex
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	r.mu.RLock()
	hooks := r.hooks[event]
	r.mu.RUnlock()
	for _, hook := range hooks {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create. An error vetoes the add.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) { r.On(BeforeCreate, hook) }

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) { r.On(AfterCreate, hook) }

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) { r.On(BeforeUpdate, hook) }

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) { r.On(AfterUpdate, hook) }

// OnBeforeDelete registers a hook to run before delete.
func (r *HookRegistry[T]) OnBeforeDelete(hook Hook[T]) { r.On(BeforeDelete, hook) }

// OnAfterDelete registers a hook to run after delete.
func (r *HookRegistry[T]) OnAfterDelete(hook Hook[T]) { r.On(AfterDelete, hook) }
