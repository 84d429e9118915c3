package repositories

import "github.com/fedorukko2007-source/todo-app/internal/app/models"

// TaskStore owns the persisted task collection. The collection is always
// read and written as one unit; there is no partial persistence. Backends
// must preserve insertion order across a Save/Load round trip.
type TaskStore interface {
	Load() ([]models.Task, error)
	Save(tasks []models.Task) error
}
