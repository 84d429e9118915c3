package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fedorukko2007-source/todo-app/internal/app/apperr"
	"github.com/fedorukko2007-source/todo-app/internal/app/models"
	"github.com/fedorukko2007-source/todo-app/internal/app/repositories"
	"github.com/fedorukko2007-source/todo-app/internal/kafka"
)

type mockStore struct {
	tasks     []models.Task
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *mockStore) Load() ([]models.Task, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]models.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

func (m *mockStore) Save(tasks []models.Task) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tasks = make([]models.Task, len(tasks))
	copy(m.tasks, tasks)
	return nil
}

type recordedEvent struct {
	action string
	taskID string
	count  int
}

type mockProducer struct {
	events []recordedEvent
}

func (m *mockProducer) Emit(action, taskID string, count int) {
	m.events = append(m.events, recordedEvent{action, taskID, count})
}

func newTestService(store *mockStore) (*TaskService, *mockProducer) {
	producer := &mockProducer{}
	s := NewTaskService(store, repositories.NoopCache{}, producer)

	nextID := 0
	s.newID = func() string {
		nextID++
		return fmt.Sprintf("id-%d", nextID)
	}

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return s, producer
}

func TestAdd(t *testing.T) {
	t.Run("adds a task with trimmed text", func(t *testing.T) {
		store := &mockStore{}
		s, producer := newTestService(store)

		task, err := s.Add("  buy milk  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if task.Text != "buy milk" {
			t.Errorf("expected trimmed text 'buy milk', got %q", task.Text)
		}
		if task.ID == "" {
			t.Error("expected non-empty id")
		}
		if task.Completed {
			t.Error("new task must not be completed")
		}
		if !task.CreatedAt.Equal(task.UpdatedAt) {
			t.Errorf("createdAt (%v) and updatedAt (%v) must match at creation", task.CreatedAt, task.UpdatedAt)
		}

		tasks, err := s.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tasks) != 1 || tasks[0].ID != task.ID {
			t.Fatalf("expected the new task in the collection, got %+v", tasks)
		}

		if len(producer.events) != 1 || producer.events[0].action != "task_created" {
			t.Errorf("expected one task_created event, got %+v", producer.events)
		}
	})

	t.Run("rejects empty and whitespace-only text", func(t *testing.T) {
		store := &mockStore{}
		s, _ := newTestService(store)

		for _, text := range []string{"", "   ", "\t\n"} {
			_, err := s.Add(text)
			if err == nil {
				t.Fatalf("expected error for text %q", text)
			}
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("expected validation error for text %q, got %v", text, err)
			}
		}

		if store.saveCalls != 0 {
			t.Errorf("validation failure must not write, got %d save calls", store.saveCalls)
		}
	})

	t.Run("propagates save failure", func(t *testing.T) {
		store := &mockStore{saveErr: errors.New("disk full")}
		s, producer := newTestService(store)

		_, err := s.Add("task")
		if err == nil {
			t.Fatal("expected error, got none")
		}
		if len(producer.events) != 0 {
			t.Errorf("failed save must not emit events, got %+v", producer.events)
		}
	})
}

func TestToggle(t *testing.T) {
	t.Run("is its own inverse but advances updatedAt", func(t *testing.T) {
		store := &mockStore{}
		s, _ := newTestService(store)

		task, err := s.Add("walk dog")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		once, err := s.Toggle(task.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !once.Completed {
			t.Error("first toggle must complete the task")
		}
		if !once.UpdatedAt.After(task.UpdatedAt) {
			t.Error("toggle must advance updatedAt")
		}

		twice, err := s.Toggle(task.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if twice.Completed {
			t.Error("second toggle must restore the original state")
		}
		if !twice.UpdatedAt.After(once.UpdatedAt) {
			t.Error("second toggle must advance updatedAt again")
		}
		if !twice.CreatedAt.Equal(task.CreatedAt) {
			t.Error("toggle must not touch createdAt")
		}
	})

	t.Run("unknown id fails with not found and does not write", func(t *testing.T) {
		store := &mockStore{tasks: []models.Task{{ID: "id-1", Text: "a"}}}
		s, _ := newTestService(store)

		_, err := s.Toggle("missing")
		if err == nil {
			t.Fatal("expected error, got none")
		}
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("expected not_found error, got %v", err)
		}
		if store.saveCalls != 0 {
			t.Errorf("not-found must not write, got %d save calls", store.saveCalls)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes exactly one task", func(t *testing.T) {
		store := &mockStore{}
		s, _ := newTestService(store)

		first, _ := s.Add("first")
		second, _ := s.Add("second")

		res, err := s.Delete(first.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.DeletedID != first.ID {
			t.Errorf("expected deletedId %s, got %s", first.ID, res.DeletedID)
		}
		if res.RemainingCount != 1 {
			t.Errorf("expected remainingCount 1, got %d", res.RemainingCount)
		}

		tasks, _ := s.List()
		if len(tasks) != 1 || tasks[0].ID != second.ID {
			t.Fatalf("expected only the second task to remain, got %+v", tasks)
		}
	})

	t.Run("second delete of the same id fails with not found", func(t *testing.T) {
		store := &mockStore{}
		s, _ := newTestService(store)

		task, _ := s.Add("once")
		if _, err := s.Delete(task.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := s.Delete(task.ID)
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("expected not_found error, got %v", err)
		}
	})
}

func TestClearCompleted(t *testing.T) {
	t.Run("nothing completed performs no write", func(t *testing.T) {
		store := &mockStore{}
		s, producer := newTestService(store)

		s.Add("one")
		s.Add("two")
		savesBefore := store.saveCalls

		res, err := s.ClearCompleted()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ClearedCount != 0 || res.RemainingCount != 2 {
			t.Errorf("expected cleared=0 remaining=2, got %+v", res)
		}
		if store.saveCalls != savesBefore {
			t.Error("clear with nothing completed must not write")
		}
		for _, ev := range producer.events {
			if ev.action == "tasks_cleared" {
				t.Error("clear with nothing completed must not emit an event")
			}
		}
	})

	t.Run("removes all completed tasks", func(t *testing.T) {
		store := &mockStore{}
		s, _ := newTestService(store)

		a, _ := s.Add("a")
		b, _ := s.Add("b")
		s.Add("c")
		s.Toggle(a.ID)
		s.Toggle(b.ID)

		res, err := s.ClearCompleted()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ClearedCount != 2 || res.RemainingCount != 1 {
			t.Errorf("expected cleared=2 remaining=1, got %+v", res)
		}

		tasks, _ := s.List()
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.Completed {
				t.Errorf("task %s should not be completed after clear", task.ID)
			}
		}
	})
}

func TestScenario(t *testing.T) {
	store := &mockStore{}
	s, _ := newTestService(store)

	milk, err := s.Add("buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if milk.ID == "" || milk.Text != "buy milk" || milk.Completed {
		t.Fatalf("unexpected task: %+v", milk)
	}

	dog, err := s.Add("walk dog")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Toggle(dog.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tasks, _ := s.List()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}
	if completed != 1 {
		t.Fatalf("expected exactly 1 completed task, got %d", completed)
	}

	res, err := s.ClearCompleted()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ClearedCount != 1 || res.RemainingCount != 1 {
		t.Fatalf("expected cleared=1 remaining=1, got %+v", res)
	}

	tasks, _ = s.List()
	if len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Fatalf("expected only 'buy milk' to remain, got %+v", tasks)
	}
}

func TestListPropagatesStoreFailure(t *testing.T) {
	store := &mockStore{loadErr: errors.New("io failure")}
	s, _ := newTestService(store)

	if _, err := s.List(); err == nil {
		t.Fatal("expected error, got none")
	}
}

var _ kafka.EventProducer = (*mockProducer)(nil)
