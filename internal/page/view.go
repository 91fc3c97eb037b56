package page

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"malladmin/internal/core/apperror"
	"malladmin/internal/core/entity"
	"malladmin/internal/domain"
	"malladmin/internal/domain/filter"
	"malladmin/internal/metadata"
)

// TabAll selects every record on a tabbed page.
const TabAll = "all"

// Query narrows the list.
type Query struct {
	Search string
	Tab    string
	Limit  int
	Offset int
}

// Column is a header cell.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Row is one record rendered for display.
type Row struct {
	ID     string        `json:"id"`
	Cells  []string      `json:"cells"`
	Values entity.Values `json:"values"`
}

// Tab is a status tab with its badge count.
type Tab struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// View is the list page as a renderer draws it.
type View struct {
	Kind    string   `json:"kind"`
	Locale  string   `json:"locale"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Tabs    []Tab    `json:"tabs,omitempty"`
	Total   int      `json:"total"`
	Matched int      `json:"matched"`
	Summary string   `json:"summary"`
	Empty   string   `json:"empty,omitempty"`
}

func (p *Page) filterFor(q Query) (domain.ListFilter, error) {
	f := domain.ListFilter{Search: q.Search, Limit: q.Limit, Offset: q.Offset}
	if q.Limit < 0 || q.Offset < 0 {
		return f, apperror.NewInvalidInput("limit and offset must not be negative")
	}
	if q.Tab == "" || q.Tab == TabAll {
		return f, nil
	}
	tabField, ok := p.schema.Field(p.schema.TabField)
	if p.schema.TabField == "" || !ok {
		return f, apperror.NewInvalidInput(fmt.Sprintf("%s has no tabs", p.schema.Kind))
	}
	if !slices.Contains(tabField.Values, q.Tab) {
		return f, apperror.NewInvalidInput(fmt.Sprintf("unknown tab %q", q.Tab)).WithDetail("tab", q.Tab)
	}
	f.Filters = []filter.Item{filter.Eq(tabField.Key, q.Tab)}
	return f, nil
}

// Columns returns the localized header row: the id then every field.
func (p *Page) Columns(locale string) []Column {
	cols := make([]Column, 0, len(p.schema.Fields)+1)
	cols = append(cols, Column{Key: metadata.IDField, Label: p.catalog.Resolve(locale, metadata.KeyIDLabel)})
	for _, f := range p.schema.Fields {
		cols = append(cols, Column{Key: f.Key, Label: p.catalog.Resolve(locale, metadata.FieldKey(p.schema.Kind, f.Key))})
	}
	return cols
}

// Cell renders one field of a record for display.
func (p *Page) Cell(rec entity.Record, f metadata.FieldSpec, locale string) string {
	if !rec.Values.Has(f.Key) {
		return ""
	}
	switch f.Kind {
	case metadata.KindEnum:
		return p.catalog.Resolve(locale, metadata.EnumKey(p.schema.Kind, f.Key, rec.Text(f.Key)))
	case metadata.KindNumber:
		return p.catalog.FormatDecimal(locale, rec.Values.GetDecimal(f.Key))
	default:
		return rec.Text(f.Key)
	}
}

func (p *Page) row(rec entity.Record, locale string) Row {
	cells := make([]string, 0, len(p.schema.Fields)+1)
	cells = append(cells, rec.ID)
	for _, f := range p.schema.Fields {
		cells = append(cells, p.Cell(rec, f, locale))
	}
	return Row{ID: rec.ID, Cells: cells, Values: rec.Values}
}

// View renders the list for q in locale.
func (p *Page) View(ctx context.Context, q Query, locale string) (View, error) {
	f, err := p.filterFor(q)
	if err != nil {
		return View{}, err
	}
	res := p.list.List(f)
	total := p.list.Len()

	v := View{
		Kind:    p.schema.Kind,
		Locale:  locale,
		Title:   p.catalog.Resolve(locale, metadata.TitleKey(p.schema.Kind)),
		Columns: p.Columns(locale),
		Rows:    make([]Row, 0, len(res.Items)),
		Total:   total,
		Matched: res.TotalCount,
	}
	for _, rec := range res.Items {
		v.Rows = append(v.Rows, p.row(rec, locale))
	}
	v.Summary = p.catalog.Format(locale, metadata.KeyListCount, len(v.Rows), total)
	if len(v.Rows) == 0 {
		v.Empty = p.catalog.Resolve(locale, metadata.KeyListEmpty)
	}

	if p.schema.TabField != "" {
		tabField, _ := p.schema.Field(p.schema.TabField)
		counts := p.list.Counts(tabField.Key)
		active := q.Tab
		if active == "" {
			active = TabAll
		}
		v.Tabs = append(v.Tabs, Tab{
			Value:  TabAll,
			Label:  p.catalog.Resolve(locale, metadata.KeyTabAll),
			Count:  total,
			Active: active == TabAll,
		})
		for _, val := range tabField.Values {
			v.Tabs = append(v.Tabs, Tab{
				Value:  val,
				Label:  p.catalog.Resolve(locale, metadata.EnumKey(p.schema.Kind, tabField.Key, val)),
				Count:  counts[val],
				Active: active == val,
			})
		}
	}

	p.log.WithContext(ctx).Debugw("view rendered", "rows", len(v.Rows), "matched", v.Matched)
	return v, nil
}

// ExportCSV writes every record matching q (pagination ignored) with a
// localized header. Cells carry raw values so spreadsheets can compute on them.
func (p *Page) ExportCSV(ctx context.Context, w io.Writer, q Query, locale string) error {
	q.Limit, q.Offset = 0, 0
	f, err := p.filterFor(q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(p.schema.Fields)+1)
	for _, c := range p.Columns(locale) {
		header = append(header, c.Label)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	res := p.list.List(f)
	for _, rec := range res.Items {
		line := make([]string, 0, len(header))
		line = append(line, rec.ID)
		for _, fs := range p.schema.Fields {
			line = append(line, rec.Text(fs.Key))
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	p.log.WithContext(ctx).Infow("list exported", "rows", len(res.Items))
	return nil
}
