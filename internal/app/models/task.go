package models

import "time"

// Task is a single to-do item. IDs are opaque strings (UUIDs in production,
// fixed values in tests) and are never reused or changed after creation.
// Timestamps marshal as RFC3339, which is what the persisted file and the
// HTTP payloads carry.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
