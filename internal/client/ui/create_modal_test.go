package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskpad/internal/client/actions"
	"taskpad/internal/client/api"
	"taskpad/internal/client/state"
	"taskpad/internal/model"
)

func newModalFixture(t *testing.T, handler http.HandlerFunc) (*CreateModal, *state.Store, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)

	client := api.New(srv.URL)
	store := state.New()
	modal := NewCreateModal(store, actions.New(client))
	return modal, store, srv.Close
}

func TestCreateModal_SubmitCreatesAndResets(t *testing.T) {
	todoID := uuid.New()

	modal, store, done := newModalFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "walk the dog", body["text"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Todo{ID: todoID, Text: "walk the dog"})
	})
	defer done()

	modal.Show()
	modal.SetInput("walk the dog")
	assert.True(t, modal.Visible())

	err := modal.Submit(context.Background())
	assert.NoError(t, err)

	// the server's document landed in the store
	todos := store.State().Todos
	assert.Len(t, todos, 1)
	assert.Equal(t, todoID, todos[0].ID)

	// input cleared, modal hidden
	assert.Empty(t, modal.Input())
	assert.False(t, modal.Visible())
}

func TestCreateModal_SubmitFailureStillResets(t *testing.T) {
	modal, store, done := newModalFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid or revoked token","code":"UNAUTHORIZED"}`))
	})
	defer done()

	modal.Show()
	modal.SetInput("doomed")

	err := modal.Submit(context.Background())
	assert.Error(t, err)

	// nothing dispatched, but the modal resets either way
	assert.Empty(t, store.State().Todos)
	assert.Empty(t, modal.Input())
	assert.False(t, modal.Visible())
}

func TestCreateModal_CancelResetsWithoutDispatch(t *testing.T) {
	modal, store, done := newModalFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cancel must not hit the network")
	})
	defer done()

	modal.Show()
	modal.SetInput("never sent")
	modal.Cancel()

	assert.Empty(t, store.State().Todos)
	assert.Empty(t, modal.Input())
	assert.False(t, modal.Visible())
}
