package page

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"

	"malladmin/internal/core/entity"
	"malladmin/internal/domain/filter"
	"malladmin/internal/metadata"
)

var tracer = otel.Tracer("malladmin/page")

// Stat is one dashboard card.
type Stat struct {
	Key   string          `json:"key"`
	Kind  string          `json:"kind"`
	Label string          `json:"label"`
	Value string          `json:"value"`
	Raw   decimal.Decimal `json:"raw"`
}

// Recent is the latest-records table.
type Recent struct {
	Kind    string   `json:"kind"`
	Title   string   `json:"title"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Overview is the dashboard as a renderer draws it.
type Overview struct {
	Locale   string  `json:"locale"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Stats    []Stat  `json:"stats"`
	Recent   *Recent `json:"recent,omitempty"`
}

// Overview aggregates the live collections into stat cards and the most
// recent records. Values reflect every commit and delete made so far.
func (s *Site) Overview(ctx context.Context, locale string) (Overview, error) {
	_, span := tracer.Start(ctx, "site.overview")
	defer span.End()

	out := Overview{
		Locale:   locale,
		Title:    s.catalog.Resolve(locale, metadata.KeyOverviewTitle),
		Subtitle: s.catalog.Resolve(locale, metadata.KeyOverviewSubtitle),
		Stats:    make([]Stat, 0, len(s.overview.Stats)),
	}

	for _, spec := range s.overview.Stats {
		p, err := s.Page(spec.Kind)
		if err != nil {
			return Overview{}, err
		}
		raw := aggregate(p.List().Records(), spec)
		out.Stats = append(out.Stats, Stat{
			Key:   spec.Key,
			Kind:  spec.Kind,
			Label: s.catalog.Resolve(locale, metadata.StatKey(spec.Key)),
			Value: s.catalog.FormatDecimal(locale, raw),
			Raw:   raw,
		})
	}

	if r := s.overview.Recent; r.Kind != "" {
		p, err := s.Page(r.Kind)
		if err != nil {
			return Overview{}, err
		}
		recs := p.List().Records()
		// newest first; same-day records keep collection order
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Values.GetTime(r.DateField).After(recs[j].Values.GetTime(r.DateField))
		})
		if len(recs) > r.Limit {
			recs = recs[:r.Limit]
		}
		recent := &Recent{
			Kind:    r.Kind,
			Title:   s.catalog.Resolve(locale, metadata.KeyOverviewRecent),
			Columns: p.Columns(locale),
			Rows:    make([]Row, 0, len(recs)),
		}
		for _, rec := range recs {
			recent.Rows = append(recent.Rows, p.row(rec, locale))
		}
		out.Recent = recent
	}

	return out, nil
}

func aggregate(recs []entity.Record, spec metadata.StatSpec) decimal.Decimal {
	where := make([]filter.Item, 0, len(spec.Where))
	for field, value := range spec.Where {
		where = append(where, filter.Eq(field, value))
	}

	total := decimal.Zero
	for _, rec := range recs {
		if !filter.Match(rec, where) {
			continue
		}
		if spec.Aggregate == metadata.AggregateCount {
			total = total.Add(decimal.NewFromInt(1))
			continue
		}
		total = total.Add(rec.Values.GetDecimal(spec.Field))
	}
	return total
}
