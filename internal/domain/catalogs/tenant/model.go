// Package tenant provides the Tenant list: shops leasing units in the mall.
package tenant

import (
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of tenants.
const Kind = "tenant"

// Status of a tenant lease.
type Status string

const (
	StatusActive   Status = "active"
	StatusPending  Status = "pending"
	StatusInactive Status = "inactive"
)

// GSTINPattern is the Indian GST identification number layout.
const GSTINPattern = `\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]`

// Schema returns the tenant schema.
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "name", Kind: metadata.KindText, Required: true},
			{Key: "category", Kind: metadata.KindText, Required: true},
			{Key: "location", Kind: metadata.KindText, Required: true},
			{
				Key:            "gstin",
				Kind:           metadata.KindText,
				Required:       true,
				Pattern:        GSTINPattern,
				PatternMessage: "tenant.validation.gstin",
			},
			{
				Key:      "status",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(StatusActive), string(StatusPending), string(StatusInactive)},
				Default:  string(StatusActive),
			},
		},
		SearchFields: []string{"name", "category", "location"},
		Numbering:    numerator.DefaultConfig("T"),
	}
}
