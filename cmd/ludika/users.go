package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/TheManchineel/ludika-go/internal/domain/model"
	"github.com/TheManchineel/ludika-go/internal/viewstate"
)

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer platform users (privileged)",
	}
	cmd.AddCommand(
		usersListCmd(a),
		usersShowCmd(a),
		usersUpdateCmd(a),
		usersDeleteCmd(a),
		usersDeleteGamesCmd(a),
	)
	return cmd
}

func usersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := viewstate.NewUsers(a.users)
			view.Fetch(cmd.Context())
			snap := view.Snapshot()
			if snap.Err != "" {
				return fmt.Errorf("%s", snap.Err)
			}
			return a.printResult(snap.Users, usersTable(snap.Users))
		},
	}
}

func usersShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <uuid>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			user, err := a.users.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printResult(user, userDetailTable(user))
		},
	}
}

func usersUpdateCmd(a *app) *cobra.Command {
	var enabled bool
	var role string

	cmd := &cobra.Command{
		Use:   "update <uuid>",
		Short: "Change a user's enabled flag or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			var in model.UserAdminUpdate
			if cmd.Flags().Changed("enabled") {
				in.Enabled = &enabled
			}
			if cmd.Flags().Changed("role") {
				r := model.UserRole(role)
				if !r.Valid() {
					return fmt.Errorf("invalid role %q", role)
				}
				in.Role = &r
			}
			if in.Enabled == nil && in.Role == nil {
				return fmt.Errorf("nothing to update; pass --enabled or --role")
			}

			user, err := a.users.AdminUpdate(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.printResult(user, userDetailTable(user))
		},
	}

	cmd.Flags().BoolVar(&enabled, "enabled", true, "Enable or disable the account")
	cmd.Flags().StringVar(&role, "role", "",
		"New role (user|content_moderator|platform_administrator)")
	return cmd
}

func usersDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <uuid>",
		Short: "Delete a user (administrators only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			if err := confirm(yes, fmt.Sprintf("This deletes user %s permanently", id)); err != nil {
				return err
			}

			view := viewstate.NewUsers(a.users)
			if err := view.Delete(cmd.Context(), id); err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "Deleted user %s\n", id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func usersDeleteGamesCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-games <uuid>",
		Short: "Delete every game proposed by a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			if err := confirm(yes, fmt.Sprintf("This deletes all games proposed by %s", id)); err != nil {
				return err
			}
			if err := a.users.DeleteGames(cmd.Context(), id); err != nil {
				return err
			}
			return writef(cmd.OutOrStdout(), "Deleted games proposed by %s\n", id)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func accountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage my own account",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-name <visible-name>",
		Short: "Change my display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.users.UpdateVisibleName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printResult(user, userDetailTable(user))
		},
	})

	var password string
	setPassword := &cobra.Command{
		Use:   "set-password",
		Short: "Change my password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = promptSecret("New password"); err != nil {
					return err
				}
			}
			if err := a.users.UpdatePassword(cmd.Context(), password); err != nil {
				return err
			}
			return writeln(cmd.OutOrStdout(), "Password updated.")
		},
	}
	setPassword.Flags().StringVarP(&password, "password", "p", "", "New password (prompted when omitted)")
	cmd.AddCommand(setPassword)

	return cmd
}

func parseUserID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}
