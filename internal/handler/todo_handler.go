package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskpad/internal/apperr"
	"taskpad/internal/auth"
	"taskpad/internal/model"
	"taskpad/internal/service"
)

// TodoHandler handles owner-scoped todo endpoints.
type TodoHandler struct {
	svc service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(svc service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// CreateTodoRequest is the body for creating a todo.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTodoRequest is the body for patching a todo. Only text and today are
// bound; any other field in the body is silently ignored.
type UpdateTodoRequest struct {
	Text  *string `json:"text"`
	Today *bool   `json:"today"`
}

// TodoResponse wraps a single todo document.
type TodoResponse struct {
	Todo *model.Todo `json:"todo"`
}

// TodoListResponse wraps a list of todo documents.
type TodoListResponse struct {
	Todos []model.Todo `json:"todos"`
}

// Create godoc
// @Summary Create a todo owned by the requester
// @Tags todos
// @Accept json
// @Produce json
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 201 {object} model.Todo
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed body", apperr.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}

	todo, err := h.svc.Create(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// List godoc
// @Summary List all todos owned by the requester
// @Tags todos
// @Produce json
// @Success 200 {object} TodoListResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}

	todos, err := h.svc.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return c.JSON(http.StatusOK, TodoListResponse{Todos: todos})
}

// Get godoc
// @Summary Fetch one todo by id
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	todo, err := h.svc.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Update godoc
// @Summary Patch a todo's text or today flag
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body UpdateTodoRequest true "Fields to change"
// @Success 200 {object} TodoResponse
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed body", apperr.ErrValidation)
	}

	todo, err := h.svc.Update(c.Request().Context(), user.ID, id, service.TodoPatch{
		Text:  req.Text,
		Today: req.Today,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// Delete godoc
// @Summary Delete a todo and return the deleted document
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} TodoResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Failure 404 {object} apperr.ErrorResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	todo, err := h.svc.Delete(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodoResponse{Todo: todo})
}

// parseTodoID validates the path id. A syntactically invalid id short-circuits
// to not-found before any store access.
func parseTodoID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.ErrNotFound
	}
	return id, nil
}
