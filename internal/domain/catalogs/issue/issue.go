// Package issue provides the maintenance Issues list.
package issue

import (
	"malladmin/internal/core/entity"
	"malladmin/internal/core/numerator"
	"malladmin/internal/metadata"
)

// Kind is the entity kind of issues.
const Kind = "issue"

// Priority of an issue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status of an issue.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Schema returns the issue schema. The list is tabbed by status.
func Schema() metadata.EntitySchema {
	return metadata.EntitySchema{
		Kind: Kind,
		Fields: []metadata.FieldSpec{
			{Key: "title", Kind: metadata.KindText, Required: true},
			{Key: "reporter", Kind: metadata.KindText, Required: true},
			{Key: "location", Kind: metadata.KindText, Required: true},
			{Key: "dateReported", Kind: metadata.KindDate, Required: true, Default: metadata.DefaultToday},
			{
				Key:      "priority",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)},
				Default:  string(PriorityMedium),
			},
			{
				Key:      "status",
				Kind:     metadata.KindEnum,
				Required: true,
				Values:   []string{string(StatusPending), string(StatusInProgress), string(StatusResolved)},
				Default:  string(StatusPending),
			},
		},
		SearchFields: []string{"title", "reporter", "location"},
		TabField:     "status",
		Numbering:    numerator.DefaultConfig("ISS"),
	}
}

func row(id, title, reporter, location, date string, p Priority, s Status) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"title":        title,
		"reporter":     reporter,
		"location":     location,
		"dateReported": entity.MustDate(date),
		"priority":     string(p),
		"status":       string(s),
	})
}

// Seed returns the initial issues.
func Seed() []entity.Record {
	return []entity.Record{
		row("ISS001", "Broken escalator on 2nd floor", "Chennai Silks", "East Wing, 2nd Floor", "2023-11-14", PriorityHigh, StatusInProgress),
		row("ISS002", "Water leakage in restroom", "Bombay Electronics", "North Wing, 1st Floor", "2023-11-13", PriorityMedium, StatusPending),
		row("ISS003", "Parking ticket machine not working", "Customer Service", "Basement Parking B2", "2023-11-12", PriorityHigh, StatusResolved),
		row("ISS004", "AC not working properly", "Delhi Sweets", "Food Court, Ground Floor", "2023-11-12", PriorityMedium, StatusInProgress),
		row("ISS005", "Flickering lights", "Mumbai Fashion", "South Wing, 3rd Floor", "2023-11-11", PriorityLow, StatusResolved),
	}
}
