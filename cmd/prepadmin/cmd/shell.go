package cmd

import (
	"github.com/dmitrijs2005/prepadmin/internal/client/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive admin console",
	// Flags are read by the config package from os.Args.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		app, err := cli.NewApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		return app.Run(ctx)
	},
}
