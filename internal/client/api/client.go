package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"taskpad/internal/model"
)

// HeaderToken is the request/response header carrying the session token.
const HeaderToken = "x-auth"

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string `json:"error"`
	Code    string `json:"code"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s (%s)", e.Status, e.Message, e.Code)
}

// Client talks to the taskpad REST API. It holds the current session token
// and sends it on every authenticated call.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the given base URL (scheme://host:port).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs a previously issued session token.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current session token, if any.
func (c *Client) Token() string { return c.token }

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type todoEnvelope struct {
	Todo model.Todo `json:"todo"`
}

type todoListEnvelope struct {
	Todos []model.Todo `json:"todos"`
}

// Signup creates a user and captures the issued token.
func (c *Client) Signup(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/users", credentials{email, password}, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and captures the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/users/login", credentials{email, password}, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current token server-side and forgets it locally.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/users/me/token", nil, nil, false); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateTodo creates a todo owned by the authenticated user.
func (c *Client) CreateTodo(ctx context.Context, text string) (*model.Todo, error) {
	var todo model.Todo
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, &todo, false); err != nil {
		return nil, err
	}
	return &todo, nil
}

// ListTodos returns all todos owned by the authenticated user.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var env todoListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &env, false); err != nil {
		return nil, err
	}
	return env.Todos, nil
}

// TodoPatch carries the optional fields of an update.
type TodoPatch struct {
	Text  *string `json:"text,omitempty"`
	Today *bool   `json:"today,omitempty"`
}

// UpdateTodo patches a todo's text or today flag.
func (c *Client) UpdateTodo(ctx context.Context, id uuid.UUID, patch TodoPatch) (*model.Todo, error) {
	var env todoEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/todos/"+id.String(), patch, &env, false); err != nil {
		return nil, err
	}
	return &env.Todo, nil
}

// DeleteTodo deletes a todo and returns the deleted document.
func (c *Client) DeleteTodo(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	var env todoEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/todos/"+id.String(), nil, &env, false); err != nil {
		return nil, err
	}
	return &env.Todo, nil
}

// do performs one round-trip. When captureToken is set, a token in the
// response header replaces the client's current one.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, captureToken bool) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(HeaderToken, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if captureToken {
		if token := resp.Header.Get(HeaderToken); token != "" {
			c.token = token
		}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
