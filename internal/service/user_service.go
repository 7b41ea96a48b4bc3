package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskpad/internal/apperr"
	"taskpad/internal/auth"
	"taskpad/internal/model"
	"taskpad/internal/repository"
)

const bcryptCost = 10

// UserService handles signup, login, and session lifecycle.
type UserService interface {
	// Signup creates a user and issues the first session token.
	Signup(ctx context.Context, email, password string) (*model.User, string, error)
	// Login verifies credentials and appends a fresh token to the active list.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// Logout removes the given token from the user's active list. Removing a
	// token that is already gone succeeds.
	Logout(ctx context.Context, userID uuid.UUID, token string) error
}

type userService struct {
	users    repository.UserRepository
	codec    *auth.TokenCodec
	sessions *auth.SessionCache
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, codec *auth.TokenCodec, sessions *auth.SessionCache) UserService {
	return &userService{users: users, codec: codec, sessions: sessions}
}

func (s *userService) Signup(ctx context.Context, email, password string) (*model.User, string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password map to the same error.
		return nil, "", apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.users.RemoveToken(ctx, userID, token); err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	s.sessions.Delete(ctx, token)
	return nil
}

func (s *userService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.codec.Sign(userID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.users.AddToken(ctx, userID, token, model.TokenPurposeAuth); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}
