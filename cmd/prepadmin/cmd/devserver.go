package cmd

import (
	"github.com/dmitrijs2005/prepadmin/internal/server"
	"github.com/spf13/cobra"
)

var devServerCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run an in-memory backend for trying the console locally",
	Long: `Serves the REST API under /api/v1 with seeded admin and member accounts,
a sample template and a sample lesson. Nothing is persisted.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		app, err := server.NewApp(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		return app.Run(cmd.Context())
	},
}
