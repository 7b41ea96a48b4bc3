package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskpad/internal/apperr"
	"taskpad/internal/auth"
	"taskpad/internal/service"
)

// UserHandler handles signup, login, and session endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CredentialsRequest is the body for signup and login. Extra fields are
// ignored by binding; only email and password are ever read.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Signup godoc
// @Summary Sign up a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} model.User
// @Header 201 {string} x-auth "session token"
// @Failure 400 {object} apperr.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Signup(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed body", apperr.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}

	user, token, err := h.svc.Signup(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(auth.HeaderToken, token)
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with email and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} model.User
// @Header 200 {string} x-auth "session token"
// @Failure 400 {object} apperr.ErrorResponse
// @Failure 401 {object} apperr.ErrorResponse
// @Router /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: malformed body", apperr.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err.Error())
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Response().Header().Set(auth.HeaderToken, token)
	return c.JSON(http.StatusOK, user)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} apperr.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Revoke the current session token
// @Tags users
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} apperr.ErrorResponse
// @Router /users/me/token [delete]
func (h *UserHandler) Logout(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return apperr.ErrInvalidToken
	}

	if err := h.svc.Logout(c.Request().Context(), user.ID, auth.TokenFrom(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{})
}
