package repositories

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/fedorukko2007-source/todo-app/internal/app/apperr"
	"github.com/fedorukko2007-source/todo-app/internal/app/models"
)

// FileStore keeps the whole collection in a single human-readable JSON file.
// No locking against other processes; the service serializes writers within
// this one.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the full collection. A missing file is initialized to an empty
// collection; an unparseable one is logged and treated as empty so a corrupt
// store heals itself on the next write instead of bricking the service.
func (s *FileStore) Load() ([]models.Task, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.Save([]models.Task{}); err != nil {
				return nil, err
			}
			return []models.Task{}, nil
		}
		return nil, apperr.Storage("read task file", err)
	}

	if len(b) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		log.Printf("task file %s is unparseable, treating as empty: %v", s.path, err)
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Save overwrites the collection in full. It writes a temp file next to the
// target and renames it over, so a crash mid-write leaves the previous
// content intact.
func (s *FileStore) Save(tasks []models.Task) error {
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return apperr.Storage("marshal tasks", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperr.Storage("create temp task file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Storage("write temp task file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Storage("close temp task file", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperr.Storage("replace task file", err)
	}
	return nil
}

var _ TaskStore = (*FileStore)(nil)
