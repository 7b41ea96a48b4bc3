package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var signupCmd = &cobra.Command{
	Use:   "signup <email> <password>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if err := e.store.Run(cmd.Context(), e.actions.StartSignup(args[0], args[1])); err != nil {
			return err
		}
		if err := saveToken(e.client.Token()); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		color.Green("Signed up as %s", e.store.State().Auth.Email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if err := e.store.Run(cmd.Context(), e.actions.StartLogin(args[0], args[1])); err != nil {
			return err
		}
		if err := saveToken(e.client.Token()); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		color.Green("Logged in as %s", e.store.State().Auth.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		if err := e.store.Run(cmd.Context(), e.actions.StartLogout()); err != nil {
			return err
		}
		if err := clearToken(); err != nil {
			return err
		}
		color.Yellow("Logged out")
		return nil
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEnv()
		user, err := e.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", color.CyanString(user.Email), user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd, loginCmd, logoutCmd, meCmd)
}
