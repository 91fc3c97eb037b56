// Package sale provides the Sales list.
package sale

import (
	"github.com/shopspring/decimal"

	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of sales.
const Kind = "sale"

// GSTRule keeps the tax within the sale amount.
const GSTRule = `values.amount == null || value <= values.amount`

// Schema returns the sale schema.
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "store", Kind: metadata.KindText, Required: true},
			{Key: "date", Kind: metadata.KindDate, Required: true, Default: metadata.DefaultToday},
			{Key: "amount", Kind: metadata.KindNumber, Required: true, Positive: true},
			{Key: "paymentMethod", Kind: metadata.KindText, Required: true},
			{
				Key:         "gst",
				Kind:        metadata.KindNumber,
				Required:    true,
				Positive:    true,
				Rule:        GSTRule,
				RuleMessage: "sale.validation.gst",
			},
		},
		SearchFields: []string{"store"},
		Numbering:    numerator.DefaultConfig("S"),
	}
}

func row(id, store, date string, amount int64, method string, gst int64) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"store":         store,
		"date":          entity.MustDate(date),
		"amount":        decimal.NewFromInt(amount),
		"paymentMethod": method,
		"gst":           decimal.NewFromInt(gst),
	})
}

// Seed returns the initial sales.
func Seed() []entity.Record {
	return []entity.Record{
		row("S001", "Chennai Silks", "2023-11-14", 42500, "Card", 7650),
		row("S002", "Bombay Electronics", "2023-11-14", 35750, "UPI", 6435),
		row("S003", "Delhi Sweets", "2023-11-13", 12999, "Cash", 2340),
		row("S004", "Mumbai Fashion", "2023-11-13", 28499, "Card", 5130),
		row("S005", "Kolkata Books", "2023-11-12", 8750, "UPI", 1575),
		row("S006", "Bangalore Tech", "2023-11-12", 65000, "Card", 11700),
	}
}
