// Package cmd implements the taskpad CLI, a terminal frontend driving the
// client store the same way the web shell does.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskpad/internal/client/actions"
	"taskpad/internal/client/api"
	"taskpad/internal/client/state"
)

var (
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "taskpad",
	Short:         "Taskpad - todo list client",
	Long:          "Command line client for the taskpad todo service.\nThe session token is kept in ~/.taskpad/token between invocations.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "taskpad server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store dispatches")
}

// env bundles the per-invocation client wiring: one store, one API client,
// one set of action creators.
type env struct {
	store   *state.Store
	actions *actions.Creator
	client  *api.Client
}

func newEnv() *env {
	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}

	client := api.New(serverURL)
	if token, err := loadToken(); err == nil && token != "" {
		client.SetToken(token)
	}

	return &env{
		store:   state.New(state.WithLogger(logger)),
		actions: actions.New(client),
		client:  client,
	}
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskpad", "token"), nil
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func clearToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
