package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

func newTicketCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "Manage maintenance tickets",
	}

	cmd.AddCommand(newTicketListCmd(env))
	cmd.AddCommand(newTicketGetCmd(env))
	cmd.AddCommand(newTicketAddCmd(env))
	cmd.AddCommand(newTicketUpdateCmd(env))
	cmd.AddCommand(newTicketDeleteCmd(env))
	cmd.AddCommand(newTicketAcceptCmd(env))
	cmd.AddCommand(newTicketCompleteCmd(env))

	return cmd
}

func ticketRows(tickets []zoosdk.Ticket) [][]string {
	rows := make([][]string, len(tickets))
	for i, t := range tickets {
		rows[i] = []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			string(t.Urgency),
			t.RecommendedRole.Label(),
			t.CreationDate,
			fmtID(t.User),
		}
	}
	return rows
}

var ticketHeaders = []string{"ID", "TITLE", "URGENCY", "ROLE", "CREATED", "ASSIGNEE"}

func newTicketListCmd(env *appEnv) *cobra.Command {
	var (
		mine bool
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long: "Without flags, lists the shared dashboard of unassigned tickets. " +
			"--mine lists the tickets you accepted; --all lists every ticket " +
			"(admin and manager only).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				tickets []zoosdk.Ticket
				err     error
			)
			switch {
			case mine && all:
				return fmt.Errorf("--mine and --all are mutually exclusive")
			case mine:
				tickets, err = env.client.MyTickets(cmd.Context())
			case all:
				tickets, err = env.client.AllTickets(cmd.Context())
			default:
				tickets, err = env.client.DashboardTickets(cmd.Context())
			}
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, tickets)
			}
			printTable(ticketHeaders, ticketRows(tickets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "Only tickets assigned to you")
	cmd.Flags().BoolVar(&all, "all", false, "Every ticket, assigned or not")

	return cmd
}

func newTicketGetCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			t, err := env.client.GetTicket(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, t)
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s (id %d)\n", t.Title, t.ID)
			_, _ = fmt.Fprintf(os.Stdout, "  urgency:     %s\n", t.Urgency)
			_, _ = fmt.Fprintf(os.Stdout, "  role:        %s\n", t.RecommendedRole.Label())
			_, _ = fmt.Fprintf(os.Stdout, "  created:     %s\n", t.CreationDate)
			_, _ = fmt.Fprintf(os.Stdout, "  assignee:    %s\n", fmtID(t.User))
			_, _ = fmt.Fprintf(os.Stdout, "  description: %s\n", t.Description)
			return nil
		},
	}
}

func ticketFlags(cmd *cobra.Command, t *zoosdk.Ticket) {
	cmd.Flags().StringVar(&t.Title, "title", "", "Ticket title")
	cmd.Flags().StringVar(&t.Description, "description", "", "Description")
	cmd.Flags().StringVar((*string)(&t.Urgency), "urgency", string(zoosdk.UrgencyLow), "Urgency (BASSO, MEDIO, ALTO)")
	cmd.Flags().StringVar((*string)(&t.RecommendedRole), "role", "", "Recommended operator subtype (ZOOKEEPER, VETERINARIAN, SECURITY_GUARD)")
}

func newTicketAddCmd(env *appEnv) *cobra.Command {
	var t zoosdk.Ticket

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a ticket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := env.client.CreateTicket(cmd.Context(), t)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, created)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Ticket %q created with id %d\n", created.Title, created.ID)
			return nil
		},
	}

	ticketFlags(cmd, &t)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newTicketUpdateCmd(env *appEnv) *cobra.Command {
	var t zoosdk.Ticket

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			updated, err := env.client.UpdateTicket(cmd.Context(), id, t)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, updated)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Ticket %d updated\n", id)
			return nil
		},
	}

	ticketFlags(cmd, &t)

	return cmd
}

func newTicketDeleteCmd(env *appEnv) *cobra.Command {
	return newTicketActionCmd("delete <id>", "Delete a ticket",
		func(ctx context.Context, id int64) (string, error) {
			if err := env.client.DeleteTicket(ctx, id); err != nil {
				return "", err
			}
			return fmt.Sprintf("Ticket %d deleted", id), nil
		})
}

func newTicketAcceptCmd(env *appEnv) *cobra.Command {
	return newTicketActionCmd("accept <id>", "Accept an unassigned ticket (operators only)",
		func(ctx context.Context, id int64) (string, error) {
			t, err := env.client.AcceptTicket(ctx, id)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Ticket %d accepted: %s", id, t.Title), nil
		})
}

func newTicketCompleteCmd(env *appEnv) *cobra.Command {
	return newTicketActionCmd("complete <id>", "Complete a ticket you accepted (operators only)",
		func(ctx context.Context, id int64) (string, error) {
			t, err := env.client.CompleteTicket(ctx, id)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Ticket %d completed: %s", id, t.Title), nil
		})
}

// newTicketActionCmd builds the shared scaffolding for the id-only ticket
// state transitions.
func newTicketActionCmd(use, short string, run func(ctx context.Context, id int64) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ticket id %q", args[0])
			}
			msg, err := run(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"status": "ok", "id": id})
			}
			_, _ = fmt.Fprintln(os.Stdout, msg)
			return nil
		},
	}
}
