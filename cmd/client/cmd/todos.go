package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskpad/internal/client/api"
	"taskpad/internal/client/state"
	"taskpad/internal/client/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Create a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		modal := ui.NewCreateModal(e.store, e.actions)
		modal.Show()
		modal.SetInput(strings.Join(args, " "))
		if err := modal.Submit(cmd.Context()); err != nil {
			return err
		}
		todos := e.store.State().Todos
		created := todos[len(todos)-1]
		color.Green("Created %s", created.ID)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [search]",
	Short: "List todos, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if len(args) == 1 {
			e.store.Dispatch(e.actions.SetSearchText(args[0]))
		}
		if err := e.store.Run(cmd.Context(), e.actions.StartTodos()); err != nil {
			return err
		}
		render(e.store.State())
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a todo's today flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid todo id %q", args[0])
		}

		e := newEnv()
		if err := e.store.Run(cmd.Context(), e.actions.StartTodos()); err != nil {
			return err
		}
		found := false
		var next bool
		for _, todo := range e.store.State().Todos {
			if todo.ID == id {
				found = true
				next = !todo.Today
				break
			}
		}
		if !found {
			return fmt.Errorf("no todo with id %s", id)
		}

		patch := api.TodoPatch{Today: &next}
		if err := e.store.Run(cmd.Context(), e.actions.StartUpdateTodo(id, patch)); err != nil {
			return err
		}
		color.Green("Updated %s", id)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid todo id %q", args[0])
		}

		e := newEnv()
		deleted, err := e.client.DeleteTodo(cmd.Context(), id)
		if err != nil {
			return err
		}
		color.Yellow("Deleted %q", deleted.Text)
		return nil
	},
}

func render(s state.State) {
	filter := strings.ToLower(s.SearchText)
	shown := 0
	for _, todo := range s.Todos {
		if filter != "" && !strings.Contains(strings.ToLower(todo.Text), filter) {
			continue
		}
		mark := " "
		if todo.Today {
			mark = color.GreenString("x")
		}
		fmt.Printf("[%s] %s  %s\n", mark, todo.ID, todo.Text)
		shown++
	}
	if shown == 0 {
		color.Yellow("no todos")
	}
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, removeCmd)
}
