// Package purchase provides the Purchase Orders list.
package purchase

import (
	"github.com/shopspring/decimal"

	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of purchase orders.
const Kind = "purchase"

// Status of a purchase order.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
)

// Schema returns the purchase order schema. Order numbers restart each year (PO-2023-001).
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "vendor", Kind: metadata.KindText, Required: true},
			{Key: "date", Kind: metadata.KindDate, Required: true, Default: metadata.DefaultToday},
			{Key: "items", Kind: metadata.KindNumber, Required: true, Positive: true, Default: "1"},
			{Key: "value", Kind: metadata.KindNumber, Required: true, Positive: true},
			{
				Key:      "status",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(StatusCompleted), string(StatusPending), string(StatusProcessing)},
				Default:  string(StatusPending),
			},
		},
		SearchFields: []string{metadata.IDField, "vendor"},
		Numbering:    numerator.YearlyConfig("PO"),
	}
}

func row(id, vendor, date string, items, value int64, status Status) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"vendor": vendor,
		"date":   entity.MustDate(date),
		"items":  decimal.NewFromInt(items),
		"value":  decimal.NewFromInt(value),
		"status": string(status),
	})
}

// Seed returns the initial purchase orders.
func Seed() []entity.Record {
	return []entity.Record{
		row("PO-2023-001", "ABC Supplies", "2023-03-10", 24, 145000, StatusCompleted),
		row("PO-2023-002", "XYZ Distributors", "2023-03-15", 12, 85000, StatusPending),
		row("PO-2023-003", "Global Imports", "2023-03-18", 8, 120000, StatusProcessing),
		row("PO-2023-004", "Metro Suppliers", "2023-03-22", 16, 75000, StatusCompleted),
		row("PO-2023-005", "City Wholesalers", "2023-03-25", 32, 225000, StatusPending),
	}
}
