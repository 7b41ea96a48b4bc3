package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskpad/internal/apperr"
	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authMW *auth.Middleware,
	userHandler *handler.UserHandler,
	todoHandler *handler.TodoHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Signup)
	api.POST("/users/login", userHandler.Login)

	// Authenticated routes
	authed := api.Group("", authMW.Handler())
	authed.GET("/users/me", userHandler.Me)
	authed.DELETE("/users/me/token", userHandler.Logout)
	authed.POST("/todos", todoHandler.Create)
	authed.GET("/todos", todoHandler.List)
	authed.GET("/todos/:id", todoHandler.Get)
	authed.PATCH("/todos/:id", todoHandler.Update)
	authed.DELETE("/todos/:id", todoHandler.Delete)

	// Unmatched non-API routes fall through to the single-page shell.
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api") ||
				strings.HasPrefix(p, "/swagger") ||
				p == "/healthz"
		},
	}))
}

// ErrorHandler renders every failure path as the JSON error shape, including
// router 404s and recover-path 500s.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *apperr.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		// already mapped
	case errors.As(err, &echoErr):
		httpErr = apperr.NewHTTPError(echoErr.Code, fmt.Sprintf("%v", echoErr.Message), codeFor(echoErr.Code))
	default:
		httpErr = apperr.MapToHTTP(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.StatusCode)
		return
	}
	_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "HTTP_ERROR"
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator installed on the Echo instance.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
