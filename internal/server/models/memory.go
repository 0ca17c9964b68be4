package models

import "time"

// DefaultMemoryCategory is used when a fact arrives without a category label.
const DefaultMemoryCategory = "General"

// MemoryFact is one durable fact in a user's long-term memory. Facts are
// owned by exactly one user and are never updated in place; corrections are
// modeled as add-then-remove.
type MemoryFact struct {
	ID        string
	UserID    string
	Category  string
	Content   string
	CreatedAt time.Time
}
