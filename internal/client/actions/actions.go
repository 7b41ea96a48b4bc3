package actions

import (
	"context"

	"github.com/google/uuid"

	"taskpad/internal/client/api"
	"taskpad/internal/client/state"
)

// Creator builds action descriptors and effects. Async creators close over
// the API client, perform the round-trip, then dispatch plain actions.
type Creator struct {
	api *api.Client
}

// New creates a Creator bound to an API client.
func New(c *api.Client) *Creator {
	return &Creator{api: c}
}

// SetSearchText is a plain creator; no I/O involved.
func (c *Creator) SetSearchText(text string) state.Action {
	return state.SetSearchText{Text: text}
}

// StartSignup creates an account and logs the new user in.
func (c *Creator) StartSignup(email, password string) state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		user, err := c.api.Signup(ctx, email, password)
		if err != nil {
			return err
		}
		s.Dispatch(state.Signup{User: *user})
		return nil
	}
}

// StartLogin authenticates and sets the auth slice.
func (c *Creator) StartLogin(email, password string) state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		user, err := c.api.Login(ctx, email, password)
		if err != nil {
			return err
		}
		s.Dispatch(state.Login{User: *user})
		return nil
	}
}

// StartLogout revokes the session server-side, then clears local state.
func (c *Creator) StartLogout() state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		if err := c.api.Logout(ctx); err != nil {
			return err
		}
		s.Dispatch(state.Logout{})
		return nil
	}
}

// StartTodos hydrates the todo list from the server.
func (c *Creator) StartTodos() state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		todos, err := c.api.ListTodos(ctx)
		if err != nil {
			return err
		}
		s.Dispatch(state.AddTodos{Todos: todos})
		return nil
	}
}

// StartAddTodo creates a todo and appends the server's document.
func (c *Creator) StartAddTodo(text string) state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		todo, err := c.api.CreateTodo(ctx, text)
		if err != nil {
			return err
		}
		s.Dispatch(state.AddTodo{Todo: *todo})
		return nil
	}
}

// StartUpdateTodo patches a todo and replaces the local copy with the
// server's document.
func (c *Creator) StartUpdateTodo(id uuid.UUID, patch api.TodoPatch) state.Thunk {
	return func(ctx context.Context, s *state.Store) error {
		todo, err := c.api.UpdateTodo(ctx, id, patch)
		if err != nil {
			return err
		}
		s.Dispatch(state.UpdateTodo{Todo: *todo})
		return nil
	}
}
