// Package payment provides the Payments list: store payments against invoices.
package payment

import (
	"github.com/shopspring/decimal"

	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of payments.
const Kind = "payment"

// Status of a payment.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// Schema returns the payment schema. The list is tabbed by status.
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "date", Kind: metadata.KindDate, Required: true, Default: metadata.DefaultToday},
			{Key: "store", Kind: metadata.KindText, Required: true},
			{Key: "amount", Kind: metadata.KindNumber, Required: true, Positive: true},
			{Key: "mode", Kind: metadata.KindText, Required: true},
			{
				Key:      "status",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(StatusPaid), string(StatusPending), string(StatusFailed)},
				Default:  string(StatusPending),
			},
			{Key: "invoiceId", Kind: metadata.KindText},
		},
		SearchFields: []string{metadata.IDField, "store", "invoiceId"},
		TabField:     "status",
		Numbering:    numerator.DefaultConfig("P"),
	}
}

func row(id, date, store string, amount int64, mode string, status Status, invoice string) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"date":      entity.MustDate(date),
		"store":     store,
		"amount":    decimal.NewFromInt(amount),
		"mode":      mode,
		"status":    string(status),
		"invoiceId": invoice,
	})
}

// Seed returns the initial payments.
func Seed() []entity.Record {
	return []entity.Record{
		row("P001", "2023-11-15", "Chennai Silks", 42500, "Credit Card", StatusPaid, "INV001"),
		row("P002", "2023-11-14", "Bombay Electronics", 35750, "UPI (PhonePe)", StatusPaid, "INV002"),
		row("P003", "2023-11-14", "Delhi Sweets", 12999, "Cash", StatusPaid, "INV003"),
		row("P004", "2023-11-13", "Mumbai Fashion", 28499, "Net Banking", StatusPending, "INV004"),
		row("P005", "2023-11-12", "Kolkata Books", 8750, "UPI (Paytm)", StatusFailed, "INV005"),
		row("P006", "2023-11-11", "Bangalore Tech", 65000, "Credit Card", StatusPaid, "INV006"),
	}
}
