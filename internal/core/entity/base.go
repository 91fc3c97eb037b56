package entity

// CommitMode tells whether a form creates or replaces a record.
type CommitMode string

const (
	ModeAdd  CommitMode = "add"
	ModeEdit CommitMode = "edit"
)

// Valid reports whether m is a known mode.
func (m CommitMode) Valid() bool {
	return m == ModeAdd || m == ModeEdit
}

// Record is one row of a list: a tenant, an inventory item, a payment...
// Records are owned by the list controller and replaced whole on edit.
type Record struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Version int    `json:"version"`
	Values  Values `json:"values"`
}

// NewRecord creates a first-version record.
func NewRecord(kind, id string, values Values) Record {
	return Record{
		ID:      id,
		Kind:    kind,
		Version: 1,
		Values:  values,
	}
}

// Get returns the value of a field. The pseudo field "id" yields the ID.
func (r Record) Get(key string) any {
	if key == "id" {
		return r.ID
	}
	return r.Values[key]
}

// Text renders a field as form text. The pseudo field "id" yields the ID.
func (r Record) Text(key string) string {
	if key == "id" {
		return r.ID
	}
	return r.Values.Text(key)
}

// Touch increments version.
func (r *Record) Touch() {
	r.Version++
}

// Clone returns a copy that shares no map with r.
func (r Record) Clone() Record {
	r.Values = r.Values.Clone()
	return r
}
