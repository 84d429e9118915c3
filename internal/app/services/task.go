package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fedorukko2007-source/todo-app/internal/app/apperr"
	"github.com/fedorukko2007-source/todo-app/internal/app/models"
	"github.com/fedorukko2007-source/todo-app/internal/app/repositories"
	"github.com/fedorukko2007-source/todo-app/internal/kafka"
)

const taskListTTL = 15 * time.Second

// DeleteResult reports the outcome of a single-task delete.
type DeleteResult struct {
	DeletedID      string `json:"deletedId"`
	RemainingCount int    `json:"remainingCount"`
}

// ClearResult reports the outcome of a bulk clear of completed tasks.
type ClearResult struct {
	ClearedCount   int `json:"clearedCount"`
	RemainingCount int `json:"remainingCount"`
}

// TaskService owns the four mutations and the list read. Every mutation is a
// full load of the collection followed by a full save; the mutex serializes
// them so two in-process writers cannot overwrite each other's snapshot.
// That gives no protection against other processes touching the same file.
type TaskService struct {
	store  repositories.TaskStore
	cache  repositories.TaskCache
	events kafka.EventProducer

	mu sync.Mutex

	newID func() string
	now   func() time.Time
}

func NewTaskService(store repositories.TaskStore, cache repositories.TaskCache, events kafka.EventProducer) *TaskService {
	return &TaskService{
		store:  store,
		cache:  cache,
		events: events,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

func (s *TaskService) List() ([]models.Task, error) {
	ctx := context.Background()

	if tasks, err := s.cache.GetList(ctx); err == nil && tasks != nil {
		return tasks, nil
	}

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetList(ctx, tasks, taskListTTL)

	return tasks, nil
}

// Add appends a new task with the trimmed text. Whitespace-only text is a
// validation error and leaves the collection untouched.
func (s *TaskService) Add(text string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("task text must be a non-empty string")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	task := models.Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(append(tasks, task)); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateList(context.Background())
	s.events.Emit("task_created", task.ID, len(tasks)+1)

	return &task, nil
}

// Toggle flips the completed flag of the task with the given id and
// refreshes its updatedAt.
func (s *TaskService) Toggle(id string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return nil, apperr.NotFound("task %s not found", id)
	}

	tasks[idx].Completed = !tasks[idx].Completed
	tasks[idx].UpdatedAt = s.now()

	if err := s.store.Save(tasks); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateList(context.Background())
	s.events.Emit("task_toggled", id, len(tasks))

	task := tasks[idx]
	return &task, nil
}

func (s *TaskService) Delete(id string) (*DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	idx := findTask(tasks, id)
	if idx < 0 {
		return nil, apperr.NotFound("task %s not found", id)
	}

	remaining := append(tasks[:idx:idx], tasks[idx+1:]...)
	if err := s.store.Save(remaining); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateList(context.Background())
	s.events.Emit("task_deleted", id, len(remaining))

	return &DeleteResult{DeletedID: id, RemainingCount: len(remaining)}, nil
}

// ClearCompleted removes every completed task. With nothing to clear it
// performs no save at all.
func (s *TaskService) ClearCompleted() (*ClearResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	active := []models.Task{}
	for _, t := range tasks {
		if !t.Completed {
			active = append(active, t)
		}
	}

	cleared := len(tasks) - len(active)
	if cleared == 0 {
		return &ClearResult{ClearedCount: 0, RemainingCount: len(tasks)}, nil
	}

	if err := s.store.Save(active); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateList(context.Background())
	s.events.Emit("tasks_cleared", "", cleared)

	return &ClearResult{ClearedCount: cleared, RemainingCount: len(active)}, nil
}

func findTask(tasks []models.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
