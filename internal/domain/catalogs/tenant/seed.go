package tenant

import "malladmin/internal/core/entity"

func row(id, name, category, location, gstin string, status Status) entity.Record {
	return entity.NewRecord(Kind, id, entity.Values{
		"name":     name,
		"category": category,
		"location": location,
		"gstin":    gstin,
		"status":   string(status),
	})
}

// Seed returns the initial tenant list.
func Seed() []entity.Record {
	return []entity.Record{
		row("T001", "Chennai Silks", "Clothing", "Ground Floor, G-12", "33AABCT1234Z1Z5", StatusActive),
		row("T002", "Bombay Electronics", "Electronics", "First Floor, F-05", "27AADCB9876Y1Z3", StatusActive),
		row("T003", "Delhi Sweets", "Food & Beverages", "Ground Floor, G-22", "07AAECR7654Z1Z8", StatusActive),
		row("T004", "Mumbai Fashion", "Fashion", "Second Floor, S-15", "27AAHCM5432X1Z7", StatusPending),
		row("T005", "Kolkata Books", "Books & Stationery", "First Floor, F-18", "19AAACP8765Q1Z2", StatusInactive),
		row("T006", "Bangalore Tech", "Electronics", "Second Floor, S-07", "29AADCT4567R1Z9", StatusActive),
	}
}
