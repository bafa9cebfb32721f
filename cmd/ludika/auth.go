package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
)

func authCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, sign up, and inspect the current session",
	}
	cmd.AddCommand(loginCmd(a), signupCmd(a), logoutCmd(a), whoamiCmd(a))
	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if password == "" {
				var err error
				if password, err = promptSecret("Password"); err != nil {
					return err
				}
			}

			if err := a.session.Login(cmd.Context(), model.LoginCredentials{
				Username: username,
				Password: password,
			}); err != nil {
				return err
			}

			user := a.session.User()
			if user == nil {
				return writeln(cmd.OutOrStdout(), "Logged in.")
			}
			return writef(cmd.OutOrStdout(), "Logged in as %s (%s)\n",
				user.VisibleName, user.Role.DisplayName())
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func signupCmd(a *app) *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			if name == "" {
				return errors.New("--name is required")
			}
			if password == "" {
				var err error
				if password, err = promptSecret("Password"); err != nil {
					return err
				}
			}

			if err := a.session.Signup(cmd.Context(), model.SignupCredentials{
				Email:       email,
				VisibleName: name,
				Password:    password,
			}); err != nil {
				return err
			}

			user := a.session.User()
			if user == nil {
				return writeln(cmd.OutOrStdout(), "Account created.")
			}
			return writef(cmd.OutOrStdout(), "Welcome, %s\n", user.VisibleName)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Visible name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			return writeln(cmd.OutOrStdout(), "Logged out.")
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile behind the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Initialize(cmd.Context()); err != nil {
				return err
			}
			user := a.session.User()
			if user == nil {
				return errors.New(`not logged in; run "ludika auth login"`)
			}
			return a.printResult(user, userDetailTable(user))
		},
	}
}
