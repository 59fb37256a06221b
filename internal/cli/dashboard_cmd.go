package cli

import (
	"github.com/spf13/cobra"

	"github.com/finconsgroup/zooadmin/internal/dashboard"
)

func newDashboardCmd(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive terminal dashboard",
		Long: "Open a full-screen dashboard with tabbed views over animals, " +
			"enclosures, tickets and staff. Requires a logged-in session.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return dashboard.Run(env.session)
		},
	}
}
