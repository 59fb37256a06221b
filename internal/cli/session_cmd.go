package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(env *appEnv) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and persist the session",
		Long: "Authenticate with username and password. On success the session " +
			"is stored under ~/.zooadmin so later commands run without logging " +
			"in again.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" {
				_, _ = fmt.Fprint(os.Stdout, "Username: ")
				if _, err := fmt.Scanln(&username); err != nil {
					return fmt.Errorf("read username: %w", err)
				}
			}
			if password == "" {
				_, _ = fmt.Fprint(os.Stdout, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				_, _ = fmt.Fprintln(os.Stdout)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			principal, err := env.session.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, principal)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n",
				principal.DisplayName(), principal.Role.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted if omitted)")

	return cmd
}

func newLogoutCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		Long: "Notify the backend and clear the stored session. Logout always " +
			"succeeds locally, even when the backend is unreachable.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			env.session.Logout(cmd.Context())
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok"})
			}
			_, _ = fmt.Fprintln(os.Stdout, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			principal := env.session.CurrentUser()
			if principal == nil {
				return fmt.Errorf("not logged in")
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, principal)
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s\n", principal.DisplayName())
			_, _ = fmt.Fprintf(os.Stdout, "  username: %s\n", principal.Username)
			_, _ = fmt.Fprintf(os.Stdout, "  role:     %s\n", principal.Role.Label())
			if principal.OperatorType != nil {
				_, _ = fmt.Fprintf(os.Stdout, "  type:     %s\n", principal.OperatorType.Label())
			}
			return nil
		},
	}
}

func newPingCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity and credentials against the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reply, err := env.client.TestConnection(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]string{"status": "ok", "reply": reply})
			}
			_, _ = fmt.Fprintln(os.Stdout, reply)
			return nil
		},
	}
}
