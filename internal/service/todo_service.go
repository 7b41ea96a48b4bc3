package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/cache"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const todoListCacheTTL = time.Minute

// TodoPatch carries the only two fields a PATCH may change. Anything else in
// the request body never reaches the store.
type TodoPatch struct {
	Text  *string
	Today *bool
}

// TodoService exposes owner-scoped todo operations. The owner id is an
// explicit argument everywhere; there is no ambient filter.
type TodoService interface {
	Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch TodoPatch) (*model.Todo, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
}

type todoService struct {
	todos repository.TodoRepository
	cache *cache.Client
}

// NewTodoService builds a TodoService with repository and cache.
func NewTodoService(todos repository.TodoRepository, cache *cache.Client) TodoService {
	return &todoService{todos: todos, cache: cache}
}

func (s *todoService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("todos:%s", ownerID)
}

func (s *todoService) Create(ctx context.Context, ownerID uuid.UUID, text string) (*model.Todo, error) {
	todo := &model.Todo{
		Text:    text,
		OwnerID: ownerID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return todo, nil
}

func (s *todoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	if data, _ := s.cache.Get(ctx, s.listCacheKey(ownerID)); data != nil {
		var cached []model.Todo
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	todos, err := s.todos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(todos); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(ownerID), payload, todoListCacheTTL)
	}
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	return s.todos.FindByOwner(ctx, ownerID, id)
}

func (s *todoService) Update(ctx context.Context, ownerID, id uuid.UUID, patch TodoPatch) (*model.Todo, error) {
	changes := map[string]interface{}{}
	if patch.Text != nil {
		changes["text"] = *patch.Text
	}
	if patch.Today != nil {
		changes["today"] = *patch.Today
	}

	todo, err := s.todos.UpdateByOwner(ctx, ownerID, id, changes)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	todo, err := s.todos.DeleteByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
	return todo, nil
}
