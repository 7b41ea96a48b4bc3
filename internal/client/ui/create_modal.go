package ui

import (
	"context"

	"taskpad/internal/client/actions"
	"taskpad/internal/client/state"
)

// CreateModal is the creation dialog's controller: a transient text input and
// a visibility flag, wired to the store through the action creators. It holds
// no other state; the todo itself lives server-side and in the store.
type CreateModal struct {
	store   *state.Store
	actions *actions.Creator
	input   string
	visible bool
}

// NewCreateModal wires a modal to a store and action creators.
func NewCreateModal(store *state.Store, creator *actions.Creator) *CreateModal {
	return &CreateModal{store: store, actions: creator}
}

// Show makes the modal visible.
func (m *CreateModal) Show() { m.visible = true }

// Visible reports whether the modal is shown.
func (m *CreateModal) Visible() bool { return m.visible }

// SetInput replaces the transient input text.
func (m *CreateModal) SetInput(text string) { m.input = text }

// Input returns the transient input text.
func (m *CreateModal) Input() string { return m.input }

// Submit runs the create-todo effect with the current input, then clears the
// input and hides the modal. Input is cleared even when the effect fails.
// Empty text is not validated here; the server decides.
func (m *CreateModal) Submit(ctx context.Context) error {
	err := m.store.Run(ctx, m.actions.StartAddTodo(m.input))
	m.input = ""
	m.visible = false
	return err
}

// Cancel clears the input and hides the modal without dispatching anything.
func (m *CreateModal) Cancel() {
	m.input = ""
	m.visible = false
}
