package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkov/pinboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-m int      max pins per scope
//	-t int      command timeout, seconds
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so positional subcommand arguments pass through
// untouched.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-m", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxPinsPerScope, "m", config.MaxPinsPerScope, "max pins per scope")
	commandTimeout := fs.Int("t", int(config.CommandTimeout.Seconds()), "command timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CommandTimeout = time.Duration(*commandTimeout) * time.Second
}
