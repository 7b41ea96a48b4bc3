package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskpad/internal/model"
)

// TodoRepository defines todo persistence. Every method takes the owner id
// explicitly; there is no way to reach another owner's rows through this
// interface. Absent and not-owned both come back as apperr.ErrNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error)
	FindByOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
	UpdateByOwner(ctx context.Context, ownerID, id uuid.UUID, changes map[string]interface{}) (*model.Todo, error)
	DeleteByOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error)
}

type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository builds a GORM-backed repository.
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *model.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	var todos []model.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at").
		Find(&todos).Error
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *todoRepository) FindByOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&todo).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &todo, nil
}

// UpdateByOwner applies the given column changes and returns the updated row.
// The caller controls the change set; only whitelisted fields ever reach it.
// Existence is checked up front: MySQL reports zero affected rows for a
// same-value update, so RowsAffected cannot distinguish missing from no-op.
func (r *todoRepository) UpdateByOwner(ctx context.Context, ownerID, id uuid.UUID, changes map[string]interface{}) (*model.Todo, error) {
	todo, err := r.FindByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return todo, nil
	}
	err = r.db.WithContext(ctx).
		Model(&model.Todo{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(changes).Error
	if err != nil {
		return nil, err
	}
	return r.FindByOwner(ctx, ownerID, id)
}

// DeleteByOwner removes the todo and returns the deleted document.
func (r *todoRepository) DeleteByOwner(ctx context.Context, ownerID, id uuid.UUID) (*model.Todo, error) {
	todo, err := r.FindByOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Todo{}).Error
	if err != nil {
		return nil, err
	}
	return todo, nil
}
