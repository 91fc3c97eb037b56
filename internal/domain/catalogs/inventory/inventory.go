// Package inventory provides the Inventory list: stock held by each store.
package inventory

import (
	"github.com/shopspring/decimal"

	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of inventory items.
const Kind = "inventory"

// StockLevel is a coarse stock indicator.
type StockLevel string

const (
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// Schema returns the inventory schema.
// Quantity and price start at 0 so the user has to enter them.
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "name", Kind: metadata.KindText, Required: true},
			{Key: "category", Kind: metadata.KindText, Required: true},
			{Key: "store", Kind: metadata.KindText, Required: true},
			{Key: "quantity", Kind: metadata.KindNumber, Required: true, Positive: true, Default: "0", DefaultExempt: true},
			{Key: "price", Kind: metadata.KindNumber, Required: true, Positive: true, Default: "0", DefaultExempt: true},
			{
				Key:      "stockLevel",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(StockLow), string(StockMedium), string(StockHigh)},
				Default:  string(StockMedium),
			},
		},
		SearchFields: []string{"name", "category", "store"},
		Numbering:    numerator.DefaultConfig("I"),
	}
}

func row(id, name, category, store string, quantity, price int64, level StockLevel) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"name":       name,
		"category":   category,
		"store":      store,
		"quantity":   decimal.NewFromInt(quantity),
		"price":      decimal.NewFromInt(price),
		"stockLevel": string(level),
	})
}

// Seed returns the initial inventory list.
func Seed() []entity.Record {
	return []entity.Record{
		row("I001", "Cotton Saree", "Clothing", "Chennai Silks", 24, 3500, StockMedium),
		row("I002", "LED TV", "Electronics", "Bombay Electronics", 8, 42000, StockLow),
		row("I003", "Milk Cake", "Food", "Delhi Sweets", 150, 250, StockHigh),
		row("I004", "Designer Handbag", "Fashion", "Mumbai Fashion", 12, 5999, StockMedium),
		row("I005", "Bestseller Novel", "Books", "Kolkata Books", 5, 499, StockLow),
		row("I006", "Wireless Earpods", "Electronics", "Bangalore Tech", 35, 7999, StockHigh),
	}
}
