package state

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskpad/internal/model"
)

func TestStore_DispatchUpdatesTree(t *testing.T) {
	s := New()
	user := model.User{ID: uuid.New(), Email: "a@x.com"}
	todo := someTodo("walk the dog")

	s.Dispatch(Login{User: user})
	s.Dispatch(AddTodo{Todo: todo})
	s.Dispatch(SetSearchText{Text: "walk"})

	got := s.State()
	assert.Equal(t, user, got.Auth)
	assert.Equal(t, []model.Todo{todo}, got.Todos)
	assert.Equal(t, "walk", got.SearchText)
	assert.True(t, got.LoggedIn())
}

func TestStore_LogoutClearsTodosAndAuth(t *testing.T) {
	s := New(WithInitialState(State{
		Todos:      []model.Todo{someTodo("a")},
		Auth:       model.User{ID: uuid.New()},
		SearchText: "keep me",
	}))

	s.Dispatch(Logout{})

	got := s.State()
	assert.Empty(t, got.Todos)
	assert.False(t, got.LoggedIn())
	// search text is UI-only and survives logout
	assert.Equal(t, "keep me", got.SearchText)
}

func TestStore_HookObservesEveryDispatch(t *testing.T) {
	var seen []Action
	s := New(WithHook(func(action Action, next State) {
		seen = append(seen, action)
	}))

	s.Dispatch(AddTodo{Todo: someTodo("a")})
	s.Dispatch(Logout{})

	assert.Len(t, seen, 2)
	assert.IsType(t, AddTodo{}, seen[0])
	assert.IsType(t, Logout{}, seen[1])
}

func TestStore_SubscribeSeesResultingState(t *testing.T) {
	s := New()
	var states []State
	s.Subscribe(func(next State) {
		states = append(states, next)
	})

	s.Dispatch(AddTodo{Todo: someTodo("a")})
	s.Dispatch(AddTodo{Todo: someTodo("b")})

	assert.Len(t, states, 2)
	assert.Len(t, states[0].Todos, 1)
	assert.Len(t, states[1].Todos, 2)
}

func TestStore_RunExecutesThunk(t *testing.T) {
	s := New()
	todo := someTodo("from effect")

	err := s.Run(context.Background(), func(ctx context.Context, s *Store) error {
		s.Dispatch(AddTodo{Todo: todo})
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []model.Todo{todo}, s.State().Todos)
}

func TestStore_RunPropagatesError(t *testing.T) {
	s := New()
	boom := errors.New("network down")

	err := s.Run(context.Background(), func(ctx context.Context, s *Store) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.State().Todos)
}

func TestStore_IndependentInstances(t *testing.T) {
	// stores are explicitly constructed, so two instances never share state
	a := New()
	b := New()

	a.Dispatch(AddTodo{Todo: someTodo("only in a")})

	assert.Len(t, a.State().Todos, 1)
	assert.Empty(t, b.State().Todos)
}
