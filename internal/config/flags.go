package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/prepadmin/internal/flagx"
)

// parseFlags overlays Config with the flags this package owns. os.Args is
// filtered first so cobra subcommands and their flags do not interfere.
func parseFlags(cfg *Config) error {
	return loadFlags(cfg, os.Args[1:])
}

func loadFlags(cfg *Config, osArgs []string) error {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-s", "-d", "-l"})

	fs := flag.NewFlagSet("prepadmin", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.StringVar(&cfg.TokenStore, "s", cfg.TokenStore, "token store: sqlite, bolt, redis or memory")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zap")

	return fs.Parse(args)
}
