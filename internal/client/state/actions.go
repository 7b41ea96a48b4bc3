package state

import "taskpad/internal/model"

// Action is a plain state-transition descriptor. The set of actions is
// sealed; reducers ignore anything they do not recognize.
type Action interface {
	isAction()
}

// AddTodo appends one todo.
type AddTodo struct {
	Todo model.Todo
}

// AddTodos appends a sequence of todos (bulk hydrate on load).
type AddTodos struct {
	Todos []model.Todo
}

// UpdateTodo replaces the todo with a matching id.
type UpdateTodo struct {
	Todo model.Todo
}

// Login sets the authenticated user.
type Login struct {
	User model.User
}

// Signup sets the authenticated user after account creation.
type Signup struct {
	User model.User
}

// Logout clears the authenticated user and the todo list.
type Logout struct{}

// SetSearchText replaces the UI search filter.
type SetSearchText struct {
	Text string
}

func (AddTodo) isAction()       {}
func (AddTodos) isAction()      {}
func (UpdateTodo) isAction()    {}
func (Login) isAction()         {}
func (Signup) isAction()        {}
func (Logout) isAction()        {}
func (SetSearchText) isAction() {}
