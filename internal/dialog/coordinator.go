// Package dialog coordinates the add/edit dialog of a list page: which form
// is open, and what happens to the list once it commits.
package dialog

import (
	"context"
	"sync"

	"malladmin/internal/core/apperror"
	appctx "malladmin/internal/core/context"
	"malladmin/internal/domain"
	"malladmin/internal/form"
	"malladmin/internal/metadata"
	"malladmin/pkg/logger"
)

// Config wires a coordinator.
type Config struct {
	List       *domain.ListController
	Translator metadata.Translator
	Form       form.Config
	Notifier   Notifier // defaults to LogNotifier
	Logger     *logger.Logger
}

// Coordinator holds at most one open form session per page.
type Coordinator struct {
	list     *domain.ListController
	tr       metadata.Translator
	formCfg  form.Config
	notifier Notifier
	log      *logger.Logger

	mu     sync.Mutex
	active *form.Session
}

// New creates a coordinator with no open dialog.
func New(cfg Config) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = LogNotifier{Log: cfg.Logger}
	}
	if cfg.Form.Logger == nil {
		cfg.Form.Logger = cfg.Logger
	}
	return &Coordinator{
		list:     cfg.List,
		tr:       cfg.Translator,
		formCfg:  cfg.Form,
		notifier: cfg.Notifier,
		log:      cfg.Logger.WithComponent("dialog").With("kind", cfg.List.Schema().Kind),
	}
}

// Active returns the open session, if any.
func (c *Coordinator) Active() (*form.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active, c.active != nil
}

// OpenAdd opens an add form seeded with defaults.
func (c *Coordinator) OpenAdd() (*form.Session, error) {
	return c.open(form.Open(c.formCfg, c.list.Schema(), nil))
}

// OpenEdit opens an edit form over the record with id.
func (c *Coordinator) OpenEdit(id string) (*form.Session, error) {
	rec, err := c.list.Get(id)
	if err != nil {
		return nil, err
	}
	return c.open(form.Open(c.formCfg, c.list.Schema(), &rec))
}

func (c *Coordinator) open(s *form.Session) (*form.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		// a committing dialog cannot be replaced; a closed one just goes away
		if err := c.active.Cancel(); err != nil && c.active.State() == form.Submitting {
			return nil, err
		}
	}
	c.active = s
	return s, nil
}

// Close cancels the open dialog. Closing while submitting is rejected.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	if c.active.State() == form.Submitting {
		return apperror.NewSubmitInFlight(c.list.Schema().Kind)
	}
	if c.active.State() == form.Editing {
		if err := c.active.Cancel(); err != nil {
			return err
		}
	}
	c.active = nil
	return nil
}

func (c *Coordinator) current() (*form.Session, error) {
	s, ok := c.Active()
	if !ok {
		return nil, apperror.NewConflict("no dialog is open").WithDetail("entity", c.list.Schema().Kind)
	}
	return s, nil
}

// UpdateField forwards to the open session.
func (c *Coordinator) UpdateField(key, raw string) error {
	s, err := c.current()
	if err != nil {
		return err
	}
	return s.UpdateField(key, raw)
}

// Submit submits the open session. On commit the record is folded into
// the list, a success notice goes out and the dialog closes.
func (c *Coordinator) Submit(ctx context.Context) (form.Outcome, error) {
	s, err := c.current()
	if err != nil {
		return form.Outcome{}, err
	}

	out, err := s.Submit(ctx)
	if err != nil || !out.Committed {
		return out, err
	}

	if err := c.list.ApplyCommit(ctx, *out.Record, out.Mode); err != nil {
		c.log.WithContext(ctx).Errorw("apply commit failed", "id", out.Record.ID, "error", err)
		c.release(s)
		return out, err
	}

	kind := c.list.Schema().Kind
	key := metadata.SuccessKey(kind, out.Mode)
	c.notifier.Notify(ctx, Notice{
		Kind:    kind,
		Key:     key,
		Message: c.tr.Resolve(c.locale(ctx), key),
		ID:      out.Record.ID,
	})
	c.release(s)
	return out, nil
}

// Delete removes a record from the list and notifies. Deleting an absent
// id succeeds silently without a notice.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	removed, err := c.list.Delete(ctx, id)
	if err != nil || !removed {
		return err
	}
	kind := c.list.Schema().Kind
	key := metadata.DeleteSuccessKey(kind)
	c.notifier.Notify(ctx, Notice{
		Kind:    kind,
		Key:     key,
		Message: c.tr.Resolve(c.locale(ctx), key),
		ID:      id,
	})
	return nil
}

func (c *Coordinator) release(s *form.Session) {
	c.mu.Lock()
	if c.active == s {
		c.active = nil
	}
	c.mu.Unlock()
}

func (c *Coordinator) locale(ctx context.Context) string {
	if c.formCfg.Locale != "" {
		return c.formCfg.Locale
	}
	return appctx.GetLocale(ctx)
}
