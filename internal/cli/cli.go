package cli

import (
	"flag"
	"io"
)

// CLIArgs are the command-line arguments that control the service.
// Keep this small for now — add fields as modules need them.
type CLIArgs struct {
	// Listen is the HTTP listen address.
	Listen string

	// Rules is an optional path to a JSON rule table; empty uses the
	// builtin ruleset.
	Rules string

	// DB is the SQLite file backing the decision log.
	DB string

	// Seed seeds the stock-image sampler; 0 picks a time-based seed.
	Seed int64

	// Verbose enables debug logging.
	Verbose bool

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("adsift", flag.ContinueOnError)
	var (
		listen  = fs.String("listen", ":8080", "HTTP listen address")
		rules   = fs.String("rules", "", "Path to a JSON ruleset (empty = builtin rules)")
		db      = fs.String("db", "adsift.db", "SQLite file for the decision log")
		seed    = fs.Int64("seed", 0, "Image sampler seed (0 = time-based)")
		verbose = fs.Bool("verbose", false, "Enable debug logging")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}

	return &CLIArgs{
		Listen:  *listen,
		Rules:   *rules,
		DB:      *db,
		Seed:    *seed,
		Verbose: *verbose,
		RawArgs: args,
	}, nil
}
