package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/cyberdoom/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   entity-store DSN (default from Config)
//	-driver     entity-store driver, "sqlite" or "pgx"
//	-k string   generation-service API key
//	-m string   generation-service model name
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-driver", "-k", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "entity store DSN")
	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "entity store driver (sqlite or pgx)")
	fs.StringVar(&cfg.GenAIAPIKey, "k", cfg.GenAIAPIKey, "generation service API key")
	fs.StringVar(&cfg.GenAIModel, "m", cfg.GenAIModel, "generation service model")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// The API key can also arrive via the environment, which wins over
	// defaults but not over an explicit flag.
	if cfg.GenAIAPIKey == "" {
		cfg.GenAIAPIKey = os.Getenv("API_KEY")
	}
}
