package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

func newAnimalCmd(env *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "animal",
		Short: "Manage animals",
	}

	cmd.AddCommand(newAnimalListCmd(env))
	cmd.AddCommand(newAnimalGetCmd(env))
	cmd.AddCommand(newAnimalAddCmd(env))
	cmd.AddCommand(newAnimalUpdateCmd(env))
	cmd.AddCommand(newAnimalDeleteCmd(env))

	return cmd
}

func animalRows(animals []zoosdk.Animal) [][]string {
	rows := make([][]string, len(animals))
	for i, a := range animals {
		rows[i] = []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			a.Category.Label(),
			fmt.Sprintf("%.1f", a.Weight),
			fmtID(a.User),
			fmtID(a.Enclosure),
		}
	}
	return rows
}

func newAnimalListCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all animals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			animals, err := env.client.ListAnimals(cmd.Context())
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, animals)
			}
			printTable(
				[]string{"ID", "NAME", "CATEGORY", "WEIGHT", "USER", "ENCLOSURE"},
				animalRows(animals),
			)
			return nil
		},
	}
}

func newAnimalGetCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid animal id %q", args[0])
			}
			animal, err := env.client.GetAnimal(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, animal)
			}
			printTable(
				[]string{"ID", "NAME", "CATEGORY", "WEIGHT", "USER", "ENCLOSURE"},
				animalRows([]zoosdk.Animal{*animal}),
			)
			return nil
		},
	}
}

func animalFlags(cmd *cobra.Command, animal *zoosdk.Animal, userID, enclosureID *int64) {
	cmd.Flags().StringVar(&animal.Name, "name", "", "Animal name")
	cmd.Flags().StringVar((*string)(&animal.Category), "category", "", "Category (MAMMAL, BIRD, REPTILE, AMPHIBIAN, FISH, INSECT)")
	cmd.Flags().Float64Var(&animal.Weight, "weight", 0, "Weight in kg")
	cmd.Flags().Int64Var(userID, "user", 0, "Assigned caretaker user id")
	cmd.Flags().Int64Var(enclosureID, "enclosure", 0, "Enclosure id")
}

// applyAnimalRefs copies the optional foreign keys into the record, only
// when the flags were actually set.
func applyAnimalRefs(cmd *cobra.Command, animal *zoosdk.Animal, userID, enclosureID *int64) {
	if cmd.Flags().Changed("user") {
		animal.User = userID
	}
	if cmd.Flags().Changed("enclosure") {
		animal.Enclosure = enclosureID
	}
}

func newAnimalAddCmd(env *appEnv) *cobra.Command {
	var (
		animal      zoosdk.Animal
		userID      int64
		enclosureID int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an animal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyAnimalRefs(cmd, &animal, &userID, &enclosureID)
			created, err := env.client.CreateAnimal(cmd.Context(), animal)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, created)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Animal %q created with id %d\n", created.Name, created.ID)
			return nil
		},
	}

	animalFlags(cmd, &animal, &userID, &enclosureID)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newAnimalUpdateCmd(env *appEnv) *cobra.Command {
	var (
		animal      zoosdk.Animal
		userID      int64
		enclosureID int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid animal id %q", args[0])
			}
			applyAnimalRefs(cmd, &animal, &userID, &enclosureID)
			updated, err := env.client.UpdateAnimal(cmd.Context(), id, animal)
			if err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, updated)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Animal %d updated\n", id)
			return nil
		},
	}

	animalFlags(cmd, &animal, &userID, &enclosureID)

	return cmd
}

func newAnimalDeleteCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an animal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid animal id %q", args[0])
			}
			if err := env.client.DeleteAnimal(cmd.Context(), id); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, map[string]any{"status": "ok", "id": id})
			}
			_, _ = fmt.Fprintf(os.Stdout, "Animal %d deleted\n", id)
			return nil
		},
	}
}
