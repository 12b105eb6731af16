package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    Config
	Resolver  statblock.Resolver
	Extractor statblock.Extractor
	Scraper   *archive.Scraper
}

// CLI defines the command-line interface structure for Kong.
// Command aliases are declared here and nowhere else.
type CLI struct {
	Config  string `short:"C" type:"path" env:"STATBLOCK_CONFIG" help:"YAML configuration file"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" aliases:"parse" help:"Extract a stat block from an HTML file or stdin"`
	Fetch   FetchCmd   `cmd:"" aliases:"get,scrape" help:"Fetch and extract archive entries by identifier"`
	Kinds   KindsCmd   `cmd:"" help:"List entry kinds and their aliases"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" optional:"" help:"HTML file to read (stdin if omitted or -)"`
	Page bool   `short:"p" help:"Input is a full page; select the stat block container first"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Kind        string        `arg:"" help:"Entry kind (creature, npc or an alias)"`
	IDs         []int         `arg:"" name:"id" help:"Archive entry identifiers"`
	Concurrency int           `short:"c" help:"Concurrent fetch limit"`
	Rate        float64       `short:"r" help:"Requests per second per host"`
	Timeout     time.Duration `env:"STATBLOCK_TIMEOUT" help:"HTTP request timeout"`
}

// apply overrides configuration with the flags that were set.
func (c *FetchCmd) apply(cfg *Config) {
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Rate > 0 {
		cfg.Rate = c.Rate
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
}

// KindsCmd is the "kinds" subcommand.
type KindsCmd struct{}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
