package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

func newUserCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff users",
	}

	cmd.AddCommand(newUserListCmd(env))
	cmd.AddCommand(newUserGetCmd(env))
	cmd.AddCommand(newUserAddCmd(env))
	cmd.AddCommand(newUserUpdateCmd(env))
	cmd.AddCommand(newUserDeleteCmd(env))

	return cmd
}

func userRows(users []zoosdk.User) [][]string {
	rows := make([][]string, len(users))
	for i, u := range users {
		operatorType := "-"
		if u.OperatorType != nil {
			operatorType = u.OperatorType.Label()
		}
		rows[i] = []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Name + " " + u.LastName,
			u.Role.Label(),
			operatorType,
		}
	}
	return rows
}

func newUserListCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := env.client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, users)
			}
			printTable(
				[]string{"ID", "USERNAME", "NAME", "ROLE", "TYPE"},
				userRows(users),
			)
			return nil
		},
	}
}

func newUserGetCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single user with owned records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			u, err := env.client.GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, u)
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s %s (id %d)\n", u.Name, u.LastName, u.ID)
			_, _ = fmt.Fprintf(os.Stdout, "  username:   %s\n", u.Username)
			_, _ = fmt.Fprintf(os.Stdout, "  role:       %s\n", u.Role.Label())
			if u.OperatorType != nil {
				_, _ = fmt.Fprintf(os.Stdout, "  type:       %s\n", u.OperatorType.Label())
			}
			_, _ = fmt.Fprintf(os.Stdout, "  animals:    %d\n", len(u.Animals))
			_, _ = fmt.Fprintf(os.Stdout, "  enclosures: %d\n", len(u.Enclosures))
			_, _ = fmt.Fprintf(os.Stdout, "  tickets:    %d\n", len(u.Tickets))
			return nil
		},
	}
}

func userFlags(cmd *cobra.Command, in *zoosdk.UserInput, operatorType *string) {
	cmd.Flags().StringVar(&in.Username, "username", "", "Login username")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password")
	cmd.Flags().StringVar(&in.Name, "name", "", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar((*string)(&in.Role), "role", "", "Role (ADMIN, MANAGER, OPERATOR)")
	cmd.Flags().StringVar(operatorType, "operator-type", "", "Operator subtype (ZOOKEEPER, VETERINARIAN, SECURITY_GUARD)")
}

func applyOperatorType(cmd *cobra.Command, in *zoosdk.UserInput, operatorType string) {
	if cmd.Flags().Changed("operator-type") {
		t := zoosdk.OperatorType(operatorType)
		in.OperatorType = &t
	}
}

func newUserAddCmd(env *appEnv) *cobra.Command {
	var (
		in           zoosdk.UserInput
		operatorType string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyOperatorType(cmd, &in, operatorType)
			created, err := env.client.CreateUser(cmd.Context(), in)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, created)
			}
			_, _ = fmt.Fprintf(os.Stdout, "User %q created with id %d\n", created.Username, created.ID)
			return nil
		},
	}

	userFlags(cmd, &in, &operatorType)
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newUserUpdateCmd(env *appEnv) *cobra.Command {
	var (
		in           zoosdk.UserInput
		operatorType string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			applyOperatorType(cmd, &in, operatorType)
			updated, err := env.client.UpdateUser(cmd.Context(), id, in)
			if err != nil {
				return err
			}

			// Editing your own account refreshes the cached principal so
			// the next whoami shows the new name.
			if current := env.session.CurrentUser(); current != nil && current.ID == updated.ID {
				_ = env.session.UpdateCurrentUser(zoosdk.Principal{
					ID:           updated.ID,
					Username:     updated.Username,
					FirstName:    updated.Name,
					LastName:     updated.LastName,
					Role:         updated.Role,
					OperatorType: updated.OperatorType,
				})
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, updated)
			}
			_, _ = fmt.Fprintf(os.Stdout, "User %d updated\n", id)
			return nil
		},
	}

	userFlags(cmd, &in, &operatorType)

	return cmd
}

func newUserDeleteCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := env.client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"status": "ok", "id": id})
			}
			_, _ = fmt.Fprintf(os.Stdout, "User %d deleted\n", id)
			return nil
		},
	}
}
