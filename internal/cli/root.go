// Package cli implements the zooctl command tree: session management,
// resource CRUD and the interactive dashboard, all built on the zoosdk
// client.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/pkg/credstore"
	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

var (
	version = "dev"
	commit  = "none"
)

// appEnv carries the resolved client and session into subcommands. It is
// populated by the root command's PersistentPreRunE once flags, env vars
// and the config profile have been reconciled.
type appEnv struct {
	client  *zoosdk.Client
	session *zoosdk.Session
}

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			errObj := map[string]any{
				"error": err.Error(),
			}
			var apiErr *zoosdk.APIError
			if errors.As(err, &apiErr) {
				errObj["kind"] = string(apiErr.Kind)
				if apiErr.StatusCode != 0 {
					errObj["http_status"] = apiErr.StatusCode
				}
			}
			_ = printJSON(os.Stdout, errObj)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		output  string
		profile string
	)

	env := &appEnv{}

	rootCmd := &cobra.Command{
		Use:           "zooctl",
		Short:         "Zoo administration CLI",
		Long:          "Command-line interface for the zoo administration backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Load config from profile if flags/env not set
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			p := cfg.ActiveProfile(profile)

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("ZOO_HOST"); v != "" {
					host = v
				} else if p.Host != "" {
					host = p.Host
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("ZOO_OUTPUT"); v != "" {
					output = v
				} else if p.Output != "" {
					output = p.Output
				}
			}
			if err := validateOutputFormat(output); err != nil {
				return err
			}

			store, err := newSessionStore()
			if err != nil {
				return err
			}

			logger := slogx.New(slogx.Config{
				Service: "zooctl",
				Version: version,
				Level:   os.Getenv("ZOO_LOG_LEVEL"),
				Format:  "text",
			})

			env.client = zoosdk.NewClient(host, store)
			env.session = zoosdk.NewSession(env.client, logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "Backend host URL")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())

	// Session lifecycle
	rootCmd.AddCommand(newLoginCmd(env))
	rootCmd.AddCommand(newLogoutCmd(env))
	rootCmd.AddCommand(newWhoamiCmd(env))
	rootCmd.AddCommand(newPingCmd(env))

	// Resources
	rootCmd.AddCommand(newAnimalCmd(env))
	rootCmd.AddCommand(newEnclosureCmd(env))
	rootCmd.AddCommand(newUserCmd(env))
	rootCmd.AddCommand(newTicketCmd(env))

	// Interactive dashboard
	rootCmd.AddCommand(newDashboardCmd(env))

	return rootCmd
}

// newSessionStore builds the durable session store. Sessions persist as
// plain JSON under ~/.zooadmin by default; pointing ZOO_SESSION_KEY_FILE
// at a key file encrypts the stored credentials at rest.
func newSessionStore() (zoosdk.SessionStore, error) {
	var sealer *cryptox.Sealer
	if keyFile := os.Getenv("ZOO_SESSION_KEY_FILE"); keyFile != "" {
		s, err := cryptox.NewSealerFromFile(keyFile)
		if err != nil {
			return nil, fmt.Errorf("load session key: %w", err)
		}
		sealer = s
	}

	path := credstore.DefaultPath()
	if dir := ConfigDir(); dir != "" {
		path = filepath.Join(dir, "session.json")
	}
	return credstore.NewFileStore(path, sealer), nil
}
