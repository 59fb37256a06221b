package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

func newEnclosureCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enclosure",
		Short: "Manage enclosures",
	}

	cmd.AddCommand(newEnclosureListCmd(env))
	cmd.AddCommand(newEnclosureGetCmd(env))
	cmd.AddCommand(newEnclosureAddCmd(env))
	cmd.AddCommand(newEnclosureUpdateCmd(env))
	cmd.AddCommand(newEnclosureDeleteCmd(env))

	return cmd
}

func enclosureRows(enclosures []zoosdk.Enclosure) [][]string {
	rows := make([][]string, len(enclosures))
	for i, e := range enclosures {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			fmt.Sprintf("%.0f", e.Area),
			fmtID(e.User),
			strconv.Itoa(len(e.Animals)),
		}
	}
	return rows
}

func newEnclosureListCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all enclosures",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enclosures, err := env.client.ListEnclosures(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, enclosures)
			}
			printTable(
				[]string{"ID", "NAME", "AREA", "USER", "ANIMALS"},
				enclosureRows(enclosures),
			)
			return nil
		},
	}
}

func newEnclosureGetCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single enclosure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid enclosure id %q", args[0])
			}
			enclosure, err := env.client.GetEnclosure(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, enclosure)
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s (id %d)\n", enclosure.Name, enclosure.ID)
			_, _ = fmt.Fprintf(os.Stdout, "  area:        %.0f m2\n", enclosure.Area)
			_, _ = fmt.Fprintf(os.Stdout, "  description: %s\n", enclosure.Description)
			_, _ = fmt.Fprintf(os.Stdout, "  user:        %s\n", fmtID(enclosure.User))
			_, _ = fmt.Fprintf(os.Stdout, "  animals:     %d\n", len(enclosure.Animals))
			return nil
		},
	}
}

func enclosureFlags(cmd *cobra.Command, enclosure *zoosdk.Enclosure, userID *int64) {
	cmd.Flags().StringVar(&enclosure.Name, "name", "", "Enclosure name")
	cmd.Flags().Float64Var(&enclosure.Area, "area", 0, "Area in square metres")
	cmd.Flags().StringVar(&enclosure.Description, "description", "", "Description")
	cmd.Flags().Int64Var(userID, "user", 0, "Responsible user id")
}

func newEnclosureAddCmd(env *appEnv) *cobra.Command {
	var (
		enclosure zoosdk.Enclosure
		userID    int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an enclosure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("user") {
				enclosure.User = &userID
			}
			created, err := env.client.CreateEnclosure(cmd.Context(), enclosure)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, created)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Enclosure %q created with id %d\n", created.Name, created.ID)
			return nil
		},
	}

	enclosureFlags(cmd, &enclosure, &userID)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEnclosureUpdateCmd(env *appEnv) *cobra.Command {
	var (
		enclosure zoosdk.Enclosure
		userID    int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an enclosure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid enclosure id %q", args[0])
			}
			if cmd.Flags().Changed("user") {
				enclosure.User = &userID
			}
			updated, err := env.client.UpdateEnclosure(cmd.Context(), id, enclosure)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, updated)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Enclosure %d updated\n", id)
			return nil
		},
	}

	enclosureFlags(cmd, &enclosure, &userID)

	return cmd
}

func newEnclosureDeleteCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an enclosure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid enclosure id %q", args[0])
			}
			if err := env.client.DeleteEnclosure(cmd.Context(), id); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"status": "ok", "id": id})
			}
			_, _ = fmt.Fprintf(os.Stdout, "Enclosure %d deleted\n", id)
			return nil
		},
	}
}
