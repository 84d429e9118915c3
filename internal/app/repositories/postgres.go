package repositories

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/fedorukko2007-source/todo-app/internal/app/apperr"
	"github.com/fedorukko2007-source/todo-app/internal/app/models"
)

// PostgresStore is an alternative TaskStore backend with the same
// whole-collection contract as FileStore: Load returns everything in
// insertion order, Save replaces everything in one transaction. The
// position column carries the order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperr.Storage("open postgres", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			position INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, apperr.Storage("create tasks table", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load() ([]models.Task, error) {
	rows, err := s.db.Query(
		"SELECT id, text, completed, created_at, updated_at FROM tasks ORDER BY position")
	if err != nil {
		return nil, apperr.Storage("select tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, apperr.Storage("scan task row", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate task rows", err)
	}
	return tasks, nil
}

func (s *PostgresStore) Save(tasks []models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return apperr.Storage("begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return apperr.Storage("clear tasks table", err)
	}
	for i, t := range tasks {
		_, err := tx.Exec(
			"INSERT INTO tasks (id, text, completed, created_at, updated_at, position) VALUES ($1, $2, $3, $4, $5, $6)",
			t.ID, t.Text, t.Completed, t.CreatedAt, t.UpdatedAt, i)
		if err != nil {
			return apperr.Storage("insert task row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Storage("commit tasks", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

var _ TaskStore = (*PostgresStore)(nil)
