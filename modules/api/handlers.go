package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/example/task-tracker-api/modules/auth"
	"github.com/example/task-tracker-api/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Name == "" || req.Username == "" || req.Password == "" {
		return badRequest(c, "Name, username, email and password are required")
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleRegisterError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		Message: resp.Message,
		User: UserView{
			ID:        resp.User.ID,
			Username:  resp.User.Username,
			Name:      resp.User.Name,
			Email:     resp.User.Email,
			CreatedAt: resp.User.CreatedAt,
		},
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleLoginError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message:     resp.Message,
		Name:        resp.Name,
		AccessToken: resp.AccessToken,
		ExpiresIn:   resp.ExpiresIn,
	})
}

// ResetPassword handles password resets.
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.OldPassword == "" {
		return badRequest(c, "Email and old password are required")
	}

	authReq := auth.ResetPasswordRequest{
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}
	var resp auth.ResetPasswordResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"reset-password",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleResetPasswordError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(MessageResponse{
		Message: resp.Message,
	})
}

// CreateTask handles task creation.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	taskReq := tasks.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
	}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"create",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskView(resp))
}

// GetTask handles fetching a single task.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	taskReq := tasks.GetTaskRequest{ID: c.Params("id")}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"get",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskView(resp))
}

// ListTasks handles listing all tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	taskReq := tasks.ListTasksRequest{}
	var resp tasks.ListTasksResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"list",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	out := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(resp.Tasks)),
		Total: resp.Total,
	}
	for _, task := range resp.Tasks {
		out.Tasks = append(out.Tasks, toTaskView(task))
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// UpdateTask handles task updates.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := tasks.UpdateTaskRequest{
		ID:          c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	var resp tasks.TaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"update",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskView(resp))
}

// DeleteTask handles task deletion.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	taskReq := tasks.DeleteTaskRequest{ID: c.Params("id")}
	var resp tasks.DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.taskContainer,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&taskReq,
		&resp,
	); err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(DeleteTaskResponse{
		Deleted: resp.Deleted,
		ID:      resp.ID,
	})
}

// Error translation matches on error text: the service container
// flattens error values to strings, so sentinel comparison is not
// available on this side of the boundary.

// handleRegisterError maps registration failures to HTTP responses.
func (h *Handlers) handleRegisterError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "username is already taken"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Username is already taken",
		})
	default:
		return internalError(c, err)
	}
}

// handleLoginError maps login failures to HTTP responses.
func (h *Handlers) handleLoginError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User Not Found",
		})
	case strings.Contains(errStr, "invalid password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid Password",
		})
	default:
		return internalError(c, err)
	}
}

// handleResetPasswordError maps password reset failures to HTTP responses.
func (h *Handlers) handleResetPasswordError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "user not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "User Not Found",
		})
	case strings.Contains(errStr, "old password is incorrect"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Old password is incorrect",
		})
	case strings.Contains(errStr, "new password must be at least"):
		return badRequest(c, "New password must be at least 6 characters long")
	default:
		return internalError(c, err)
	}
}

// handleTaskError maps task service failures to HTTP responses.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "is required"),
		strings.Contains(errStr, "cannot be empty"):
		return badRequest(c, "Invalid task payload")
	default:
		return internalError(c, err)
	}
}

func toTaskView(task tasks.TaskResponse) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func internalError(c *fiber.Ctx, err error) error {
	// Log the actual error but don't expose it to the client
	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
