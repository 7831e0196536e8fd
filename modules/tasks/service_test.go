package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// setupTestModule builds a TaskModule over an in-memory database,
// bypassing Start so tests exercise the handlers directly.
func setupTestModule(t *testing.T) *TaskModule {
	t.Helper()

	db := setupTestDB(t)
	return &TaskModule{
		db:   db,
		repo: NewRepository(db),
	}
}

func TestCreateTask(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	resp, err := m.createTask(ctx, CreateTaskRequest{
		Title:       "Buy groceries",
		Description: "Milk and eggs",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	if resp.ID == "" {
		t.Error("expected task ID to be set")
	}
	if resp.Title != "Buy groceries" {
		t.Errorf("resp.Title = %q, want %q", resp.Title, "Buy groceries")
	}
	if resp.Completed {
		t.Error("new task should not be completed")
	}
}

func TestCreateTask_TitleRequired(t *testing.T) {
	m := setupTestModule(t)

	_, err := m.createTask(context.Background(), CreateTaskRequest{Description: "no title"}, nil)
	if err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Errorf("expected title-required error, got %v", err)
	}
}

func TestGetTask(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Read book"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	resp, err := m.getTask(ctx, GetTaskRequest{ID: created.ID}, nil)
	if err != nil {
		t.Fatalf("getTask() error = %v", err)
	}
	if resp.Title != "Read book" {
		t.Errorf("resp.Title = %q, want %q", resp.Title, "Read book")
	}

	if _, err := m.getTask(ctx, GetTaskRequest{ID: "missing-id"}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("getTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListTasks(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	resp, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("expected empty list, got %d tasks", resp.Total)
	}

	for _, title := range []string{"one", "two"} {
		if _, err := m.createTask(ctx, CreateTaskRequest{Title: title}, nil); err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
	}

	resp, err = m.listTasks(ctx, ListTasksRequest{}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 2 || len(resp.Tasks) != 2 {
		t.Errorf("expected 2 tasks, got total=%d len=%d", resp.Total, len(resp.Tasks))
	}
}

func TestUpdateTask(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Draft", Description: "v1"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	newTitle := "Final"
	completed := true
	resp, err := m.updateTask(ctx, UpdateTaskRequest{
		ID:        created.ID,
		Title:     &newTitle,
		Completed: &completed,
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}

	if resp.Title != "Final" {
		t.Errorf("resp.Title = %q, want %q", resp.Title, "Final")
	}
	if !resp.Completed {
		t.Error("expected completed=true")
	}
	// Untouched field keeps its value
	if resp.Description != "v1" {
		t.Errorf("resp.Description = %q, want %q", resp.Description, "v1")
	}
}

func TestUpdateTask_Validation(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Keep"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	empty := ""
	if _, err := m.updateTask(ctx, UpdateTaskRequest{ID: created.ID, Title: &empty}, nil); err == nil {
		t.Error("expected error for empty title")
	}

	title := "nope"
	if _, err := m.updateTask(ctx, UpdateTaskRequest{ID: "missing-id", Title: &title}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("updateTask(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Remove"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	resp, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.ID}, nil)
	if err != nil {
		t.Fatalf("deleteTask() error = %v", err)
	}
	if !resp.Deleted {
		t.Error("expected deleted=true")
	}

	if _, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.ID}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleteTask(again) error = %v, want ErrNotFound", err)
	}
}
