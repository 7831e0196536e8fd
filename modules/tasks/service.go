package tasks

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createTask handles the task.create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title is required")
	}

	// GORM handles CreatedAt/UpdatedAt automatically
	task := &Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
	}

	if err := m.repo.Create(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	return toTaskResponse(task), nil
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" {
		return TaskResponse{}, fmt.Errorf("id is required")
	}

	task, err := m.repo.FindByID(req.ID)
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(task), nil
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(_ context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.repo.FindAll()
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}

	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}

	return response, nil
}

// updateTask handles the task.update service request.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.ID == "" {
		return TaskResponse{}, fmt.Errorf("id is required")
	}

	task, err := m.repo.FindByID(req.ID)
	if err != nil {
		return TaskResponse{}, err
	}

	// Update fields if provided (GORM handles UpdatedAt automatically)
	if req.Title != nil {
		if *req.Title == "" {
			return TaskResponse{}, fmt.Errorf("title cannot be empty")
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := m.repo.Update(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	return toTaskResponse(task), nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.ID == "" {
		return DeleteTaskResponse{Deleted: false}, fmt.Errorf("id is required")
	}

	if err := m.repo.Delete(req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}

	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(task *Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
