package dto

import (
	"malladmin/internal/core/entity"
)

// RecordRequest is the body of add and edit requests: raw form values by field key.
type RecordRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// RecordResponse is one record.
type RecordResponse struct {
	ID      string        `json:"id"`
	Kind    string        `json:"kind"`
	Version int           `json:"version"`
	Values  entity.Values `json:"values"`
}

// FromRecord maps a record to its response.
func FromRecord(rec entity.Record) RecordResponse {
	return RecordResponse{
		ID:      rec.ID,
		Kind:    rec.Kind,
		Version: rec.Version,
		Values:  rec.Values,
	}
}

// CommitResponse reports a committed add or edit with its success notice.
type CommitResponse struct {
	Record  RecordResponse `json:"record"`
	Message string         `json:"message"`
}
