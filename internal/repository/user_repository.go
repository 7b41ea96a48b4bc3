package repository

import (
	"context"
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskpad/internal/apperr"
	"taskpad/internal/model"
)

const mysqlDuplicateEntry = 1062

// UserRepository defines user persistence, including the active-token list
// that backs server-side revocation.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByToken(ctx context.Context, token, purpose string) (*model.User, error)
	AddToken(ctx context.Context, userID uuid.UUID, token, purpose string) error
	RemoveToken(ctx context.Context, userID uuid.UUID, token string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		var mysqlErr *gomysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return apperr.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

// FindByToken returns the user whose active-token list contains the exact
// token string. A revoked token has no row and resolves to nothing.
func (r *userRepository) FindByToken(ctx context.Context, token, purpose string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN auth_tokens ON auth_tokens.user_id = users.id").
		Where("auth_tokens.token = ? AND auth_tokens.purpose = ?", token, purpose).
		First(&user).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) AddToken(ctx context.Context, userID uuid.UUID, token, purpose string) error {
	entry := &model.AuthToken{
		UserID:  userID,
		Token:   token,
		Purpose: purpose,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// RemoveToken deletes the token from the user's active list. Removing a token
// that is already gone is not an error.
func (r *userRepository) RemoveToken(ctx context.Context, userID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.AuthToken{}).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
