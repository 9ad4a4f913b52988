// Package config resolves settings for the tripdiary CLI.
//
// Sources, later ones winning: built-in defaults, a JSON file named with
// -c, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// ErrInvalidFlags marks a command-line parse failure. The flag set has
// already written the problem and usage to stderr.
var ErrInvalidFlags = errors.New("invalid flags")

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL string
	DataPath  string
	Token     string
	Timeout   time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.DataPath = "tripdiary.db"
	c.Token = ""
	c.Timeout = 10 * time.Second
}

// Load builds a Config from args (usually os.Args[1:]) and returns it with
// the arguments left after the global flags, i.e. the command and its own
// arguments.
func Load(args []string, stderr io.Writer) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	fs := flag.NewFlagSet("tripdiary", flag.ContinueOnError)
	fs.SetOutput(stderr)

	jsonPath := fs.String("c", "", "path to JSON config file")
	serverURL := fs.String("s", cfg.ServerURL, "trip server base URL")
	dataPath := fs.String("d", cfg.DataPath, "local database file (:memory: for a throwaway store)")
	token := fs.String("t", cfg.Token, "bearer token for the trip server")
	timeout := fs.Duration("timeout", cfg.Timeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}

	if *jsonPath != "" {
		if err := parseJSON(*jsonPath, cfg); err != nil {
			return nil, nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s":
			cfg.ServerURL = *serverURL
		case "d":
			cfg.DataPath = *dataPath
		case "t":
			cfg.Token = *token
		case "timeout":
			cfg.Timeout = *timeout
		}
	})

	return cfg, fs.Args(), nil
}
