package page

import (
	"context"
	"time"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/dialog"
	"malladmin/internal/form"
	"malladmin/internal/i18n"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
	numsvc "malladmin/pkg/numerator"
)

// SiteConfig wires every page of the admin.
type SiteConfig struct {
	Registry  *metadata.Registry
	Seeds     map[string][]entity.Record
	Catalog   *i18n.Catalog
	Validator form.Validator
	Committer form.Committer
	Notifier  dialog.Notifier
	Clock     func() time.Time
	Logger    *logger.Logger

	// Overview declares the dashboard; the zero value means no stat cards.
	Overview metadata.OverviewSpec
}

// Site holds one page per registered kind.
type Site struct {
	catalog  *i18n.Catalog
	kinds    []string
	pages    map[string]*Page
	overview metadata.OverviewSpec
}

// NewSite verifies the catalog against the registry and builds every page.
// All pages share one numbering sequence.
func NewSite(ctx context.Context, cfg SiteConfig) (*Site, error) {
	if cfg.Registry == nil || cfg.Catalog == nil {
		return nil, apperror.NewConfiguration("site needs a registry and a catalog")
	}
	if err := cfg.Overview.Check(cfg.Registry); err != nil {
		return nil, err
	}
	required := cfg.Registry.RequiredKeys()
	if len(cfg.Overview.Stats) > 0 || cfg.Overview.Recent.Kind != "" {
		required = append(required, cfg.Overview.Keys()...)
	}
	if err := cfg.Catalog.Verify(required); err != nil {
		return nil, err
	}

	gen := numsvc.New()
	s := &Site{
		catalog:  cfg.Catalog,
		kinds:    cfg.Registry.Kinds(),
		pages:    make(map[string]*Page),
		overview: cfg.Overview,
	}
	for _, schema := range cfg.Registry.List() {
		p, err := New(ctx, Config{
			Schema:    schema,
			Seed:      cfg.Seeds[schema.Kind],
			Catalog:   cfg.Catalog,
			Validator: cfg.Validator,
			Generator: gen,
			Committer: cfg.Committer,
			Notifier:  cfg.Notifier,
			Clock:     cfg.Clock,
			Logger:    cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		s.pages[schema.Kind] = p
	}
	return s, nil
}

// Kinds returns the page kinds sorted.
func (s *Site) Kinds() []string {
	return append([]string(nil), s.kinds...)
}

// Catalog returns the shared message catalog.
func (s *Site) Catalog() *i18n.Catalog { return s.catalog }

// Page returns the page for kind. Unknown kinds are NotFound.
func (s *Site) Page(kind string) (*Page, error) {
	p, ok := s.pages[kind]
	if !ok {
		return nil, apperror.NewNotFound("page", kind)
	}
	return p, nil
}
