package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskpad/internal/apperr"
	"taskpad/internal/handler"
	"taskpad/internal/model"
	"taskpad/internal/service"
)

// MockTodoService is a mock implementation of service.TodoService.
type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error) {
	args := m.Called(ctx, ownerID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) Update(ctx context.Context, ownerID, id uuid.UUID, patch service.TodoPatch) (*model.Todo, error) {
	args := m.Called(ctx, ownerID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockTodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func newTodoServer(svc service.TodoService, user *model.User) *echo.Echo {
	e := newEcho()
	h := handler.NewTodoHandler(svc)
	g := e.Group("/api", withUser(user, "tok"))
	g.POST("/todos", h.Create)
	g.GET("/todos", h.List)
	g.GET("/todos/:id", h.Get)
	g.PATCH("/todos/:id", h.Update)
	g.DELETE("/todos/:id", h.Delete)
	return e
}

func TestTodoHandler_Create(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "a@x.com"}
	todoID := uuid.New()

	mockSvc := new(MockTodoService)
	mockSvc.On("Create", mock.Anything, user.ID, "walk the dog").
		Return(&model.Todo{ID: todoID, Text: "walk the dog", OwnerID: user.ID}, nil)

	e := newTodoServer(mockSvc, user)

	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"text":"walk the dog"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), todoID.String())
	mockSvc.AssertExpectations(t)
}

func TestTodoHandler_Get_MalformedIDShortCircuits(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	mockSvc := new(MockTodoService)

	e := newTodoServer(mockSvc, user)

	req := httptest.NewRequest(http.MethodGet, "/api/todos/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// invalid ids 404 before any store access
	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestTodoHandler_Get_NotOwned(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	todoID := uuid.New()

	mockSvc := new(MockTodoService)
	mockSvc.On("Get", mock.Anything, user.ID, todoID).Return(nil, apperr.ErrNotFound)

	e := newTodoServer(mockSvc, user)

	req := httptest.NewRequest(http.MethodGet, "/api/todos/"+todoID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestTodoHandler_Update_WhitelistsFields(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	todoID := uuid.New()
	text := "x"

	mockSvc := new(MockTodoService)
	mockSvc.On("Update", mock.Anything, user.ID, todoID, service.TodoPatch{Text: &text}).
		Return(&model.Todo{ID: todoID, Text: "x", OwnerID: user.ID}, nil)

	e := newTodoServer(mockSvc, user)

	// owner_id and id in the body must be ignored; only text reaches the service
	body := `{"text":"x","owner_id":"evil","id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/todos/"+todoID.String(), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestTodoHandler_Delete_TwiceIsNotFound(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	todoID := uuid.New()

	mockSvc := new(MockTodoService)
	mockSvc.On("Delete", mock.Anything, user.ID, todoID).
		Return(&model.Todo{ID: todoID, Text: "bye", OwnerID: user.ID}, nil).Once()
	mockSvc.On("Delete", mock.Anything, user.ID, todoID).
		Return(nil, apperr.ErrNotFound).Once()

	e := newTodoServer(mockSvc, user)

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/"+todoID.String(), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bye")

	req = httptest.NewRequest(http.MethodDelete, "/api/todos/"+todoID.String(), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	mockSvc.AssertExpectations(t)
}

func TestTodoHandler_List(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	todos := []model.Todo{
		{ID: uuid.New(), Text: "first", OwnerID: user.ID},
		{ID: uuid.New(), Text: "second", OwnerID: user.ID},
	}

	mockSvc := new(MockTodoService)
	mockSvc.On("List", mock.Anything, user.ID).Return(todos, nil)

	e := newTodoServer(mockSvc, user)

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"todos"`)
	assert.Contains(t, rec.Body.String(), "first")
	assert.Contains(t, rec.Body.String(), "second")
	mockSvc.AssertExpectations(t)
}
