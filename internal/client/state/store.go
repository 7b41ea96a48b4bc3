package state

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpad/internal/model"
)

// State is the full client-side state tree. It is ephemeral: rebuilt from
// the server on each load, never persisted.
type State struct {
	Todos      []model.Todo
	Auth       model.User
	SearchText string
}

// LoggedIn reports whether an authenticated user is present.
func (s State) LoggedIn() bool {
	return s.Auth.ID != uuid.Nil
}

// Thunk is an effect: it may perform I/O and dispatch plain actions along the
// way. Effects are explicit values run by the store, never smuggled through
// Dispatch, so the reducers stay pure and testable without I/O.
type Thunk func(ctx context.Context, s *Store) error

// Hook observes every dispatched action and the resulting state.
type Hook func(action Action, next State)

// Store holds the state tree and folds actions into it through the reducers.
// Construct one explicitly per consumer; there is no package-global instance.
type Store struct {
	mu    sync.RWMutex
	state State
	hooks []Hook
	subs  []func(State)
	log   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState seeds the state tree.
func WithInitialState(initial State) Option {
	return func(s *Store) { s.state = initial }
}

// WithHook installs an inspection hook observing every dispatch.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, h) }
}

// WithLogger sets the logger. Default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a store combining the todos, auth, and searchText reducers.
func New(opts ...Option) *Store {
	s := &Store{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state tree. Reducers never mutate slices in
// place, so the returned value is safe to read concurrently with dispatches.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch folds one action through every reducer and notifies observers.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	next := State{
		Todos:      todosReducer(s.state.Todos, action),
		Auth:       authReducer(s.state.Auth, action),
		SearchText: searchTextReducer(s.state.SearchText, action),
	}
	s.state = next
	hooks := s.hooks
	subs := s.subs
	s.mu.Unlock()

	s.log.Debug("dispatch", zap.String("action", actionName(action)))
	for _, h := range hooks {
		h(action, next)
	}
	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers a listener invoked after every dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Run executes an effect against this store. Overlapping effects are not
// ordered relative to each other; last resolved wins.
func (s *Store) Run(ctx context.Context, t Thunk) error {
	if err := t(ctx, s); err != nil {
		s.log.Warn("effect failed", zap.Error(err))
		return err
	}
	return nil
}

func actionName(action Action) string {
	switch action.(type) {
	case AddTodo:
		return "ADD_TODO"
	case AddTodos:
		return "ADD_TODOS"
	case UpdateTodo:
		return "UPDATE_TODO"
	case Login:
		return "LOGIN"
	case Signup:
		return "SIGNUP"
	case Logout:
		return "LOGOUT"
	case SetSearchText:
		return "SET_SEARCH_TEXT"
	default:
		return "UNKNOWN"
	}
}
