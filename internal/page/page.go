// Package page hosts one list page: a seeded list, its dialog and the
// localized view a renderer draws from.
package page

import (
	"context"
	"fmt"
	"time"

	"malladmin/internal/core/apperror"
	appctx "malladmin/internal/core/context"
	"malladmin/internal/core/entity"
	"malladmin/internal/core/id"
	"malladmin/internal/core/numerator"
	"malladmin/internal/dialog"
	"malladmin/internal/domain"
	"malladmin/internal/form"
	"malladmin/internal/i18n"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
	numsvc "malladmin/pkg/numerator"
)

// Config wires a page.
type Config struct {
	Schema metadata.EntitySchema
	// Seed is served through a SeedBackend unless Backend is set.
	Seed    []entity.Record
	Backend domain.Backend

	Catalog   *i18n.Catalog
	Validator form.Validator
	Generator numerator.Generator // defaults to an in-memory sequence
	Committer form.Committer      // defaults to SimulatedCommitter with DefaultCommitDelay
	Notifier  dialog.Notifier
	Clock     func() time.Time
	Logger    *logger.Logger
}

// Page is one entity kind's list page.
type Page struct {
	schema   metadata.EntitySchema
	catalog  *i18n.Catalog
	list     *domain.ListController
	formCfg  form.Config
	notifier dialog.Notifier
	dialog   *dialog.Coordinator
	log      *logger.Logger
}

type compiler interface {
	Compile(metadata.EntitySchema) error
}

// New builds the page and loads its collection.
func New(ctx context.Context, cfg Config) (*Page, error) {
	if cfg.Catalog == nil || cfg.Validator == nil {
		return nil, apperror.NewConfiguration("page needs a catalog and a validator")
	}
	if err := metadata.Check(cfg.Schema); err != nil {
		return nil, err
	}
	if c, ok := cfg.Validator.(compiler); ok {
		if err := c.Compile(cfg.Schema); err != nil {
			return nil, err
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Generator == nil {
		cfg.Generator = numsvc.New()
	}
	if cfg.Committer == nil {
		cfg.Committer = form.SimulatedCommitter{Delay: form.DefaultCommitDelay}
	}
	if cfg.Notifier == nil {
		cfg.Notifier = dialog.LogNotifier{Log: cfg.Logger}
	}
	if cfg.Backend == nil {
		cfg.Backend = domain.NewSeedBackend(map[string][]entity.Record{cfg.Schema.Kind: cfg.Seed})
	}

	list := domain.NewListController(domain.ListControllerConfig{
		Schema:  cfg.Schema,
		Backend: cfg.Backend,
		Logger:  cfg.Logger,
	})
	if err := list.Load(ctx); err != nil {
		return nil, err
	}

	ids := id.NewSource(cfg.Generator).WithClock(cfg.Clock)
	existing := make([]string, 0, list.Len())
	for _, rec := range list.Records() {
		existing = append(existing, rec.ID)
	}
	ids.Observe(cfg.Schema.Numbering, existing...)

	p := &Page{
		schema:   cfg.Schema,
		catalog:  cfg.Catalog,
		list:     list,
		notifier: cfg.Notifier,
		log:      cfg.Logger.WithComponent("page").With("kind", cfg.Schema.Kind),
		formCfg: form.Config{
			Validator: cfg.Validator,
			Committer: cfg.Committer,
			IDs:       ids,
			Clock:     cfg.Clock,
			Logger:    cfg.Logger,
		},
	}
	p.dialog = p.coordinator("")
	return p, nil
}

func (p *Page) coordinator(locale string) *dialog.Coordinator {
	fc := p.formCfg
	fc.Locale = locale
	return dialog.New(dialog.Config{
		List:       p.list,
		Translator: p.catalog,
		Form:       fc,
		Notifier:   p.notifier,
		Logger:     p.log,
	})
}

// Kind returns the page's entity kind.
func (p *Page) Kind() string { return p.schema.Kind }

// Schema returns the page's schema.
func (p *Page) Schema() metadata.EntitySchema { return p.schema }

// List exposes the list controller, e.g. for hook registration.
func (p *Page) List() *domain.ListController { return p.list }

// Dialog returns the page's own dialog coordinator. Its notices use the
// locale carried by the submit context.
func (p *Page) Dialog() *dialog.Coordinator { return p.dialog }

// Describe returns the schema localized for a form renderer.
func (p *Page) Describe(locale string) metadata.Description {
	return metadata.Describe(p.schema, p.catalog, locale)
}

// Get returns one record.
func (p *Page) Get(id string) (entity.Record, error) {
	return p.list.Get(id)
}

// Commit adds (empty id) or edits a record in one shot. Only the given
// values change; an edit keeps the rest of the record. An invalid draft
// returns the outcome together with its validation error.
func (p *Page) Commit(ctx context.Context, locale, id string, values map[string]string) (form.Outcome, error) {
	for key := range values {
		if _, ok := p.schema.Field(key); !ok {
			return form.Outcome{}, apperror.NewInvalidInput(fmt.Sprintf("%s has no field %q", p.schema.Kind, key)).
				WithDetail("field", key)
		}
	}

	coord := p.coordinator(locale)
	var err error
	if id == "" {
		_, err = coord.OpenAdd()
	} else {
		_, err = coord.OpenEdit(id)
	}
	if err != nil {
		return form.Outcome{}, err
	}
	for key, raw := range values {
		if err := coord.UpdateField(key, raw); err != nil {
			return form.Outcome{}, err
		}
	}

	out, err := coord.Submit(appctx.WithLocale(ctx, locale))
	if err != nil {
		return out, err
	}
	if !out.Committed {
		return out, out.Result.Err()
	}
	return out, nil
}

// Delete removes a record and sends a localized notice. Unknown ids are ignored.
func (p *Page) Delete(ctx context.Context, locale, id string) error {
	return p.dialog.Delete(appctx.WithLocale(ctx, locale), id)
}
