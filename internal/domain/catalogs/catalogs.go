// Package catalogs lists every mall entity kind the admin manages.
package catalogs

import (
	"malladmin/internal/core/entity"
	"malladmin/internal/domain/catalogs/inventory"
	"malladmin/internal/domain/catalogs/issue"
	"malladmin/internal/domain/catalogs/payment"
	"malladmin/internal/domain/catalogs/purchase"
	"malladmin/internal/domain/catalogs/sale"
	"malladmin/internal/domain/catalogs/tenant"
	"malladmin/internal/metadata"
)

// Schemas returns all kinds in sidebar order.
func Schemas() []metadata.EntitySchema {
	return []metadata.EntitySchema{
		tenant.Schema(),
		inventory.Schema(),
		purchase.Schema(),
		payment.Schema(),
		sale.Schema(),
		issue.Schema(),
	}
}

// Register adds every kind to reg.
func Register(reg *metadata.Registry) error {
	for _, s := range Schemas() {
		if err := reg.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding every kind.
func NewRegistry() (*metadata.Registry, error) {
	reg := metadata.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Seeds maps each kind to its initial records.
func Seeds() map[string][]entity.Record {
	return map[string][]entity.Record{
		tenant.Kind:    tenant.Seed(),
		inventory.Kind: inventory.Seed(),
		purchase.Kind:  purchase.Seed(),
		payment.Kind:   payment.Seed(),
		sale.Kind:      sale.Seed(),
		issue.Kind:     issue.Seed(),
	}
}
