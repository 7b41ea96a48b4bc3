package state

import "taskpad/internal/model"

// Reducers are pure and total: they never mutate their input, and unknown
// actions return the input value unchanged.

func todosReducer(todos []model.Todo, action Action) []model.Todo {
	switch a := action.(type) {
	case AddTodo:
		next := make([]model.Todo, 0, len(todos)+1)
		next = append(next, todos...)
		return append(next, a.Todo)
	case AddTodos:
		next := make([]model.Todo, 0, len(todos)+len(a.Todos))
		next = append(next, todos...)
		return append(next, a.Todos...)
	case UpdateTodo:
		next := make([]model.Todo, len(todos))
		for i, todo := range todos {
			if todo.ID == a.Todo.ID {
				next[i] = a.Todo
			} else {
				next[i] = todo
			}
		}
		return next
	case Logout:
		return []model.Todo{}
	default:
		return todos
	}
}

func authReducer(auth model.User, action Action) model.User {
	switch a := action.(type) {
	case Login:
		return a.User
	case Signup:
		return a.User
	case Logout:
		return model.User{}
	default:
		return auth
	}
}

func searchTextReducer(text string, action Action) string {
	switch a := action.(type) {
	case SetSearchText:
		return a.Text
	default:
		return text
	}
}
