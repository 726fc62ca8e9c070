package cmd

import (
	"os"

	"github.com/dmitrijs2005/prepadmin/internal/config"
	"github.com/dmitrijs2005/prepadmin/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prepadmin",
	Short: "prepadmin is the admin console of the interview-prep backend",
	Long: `An operator console to manage case templates, lessons, interviews and users
of the interview-prep REST backend. Settings come from a config file (-c),
PREPADMIN_* environment variables and the -a, -s, -d and -l flags.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(shellCmd, devServerCmd, versionCmd)
}

// setup loads the layered configuration and builds the logger it names.
// Logs go to stderr so they do not mix with console output.
func setup() (*config.Config, logging.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
