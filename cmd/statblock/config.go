package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/fwojciec/statblock"
	"github.com/fwojciec/statblock/archive"
	"github.com/fwojciec/statblock/goquery"
	sbhttp "github.com/fwojciec/statblock/http"
	yaml "gopkg.in/yaml.v3"
)

// DefaultRate is the default number of requests per second sent to one host.
const DefaultRate = 1.0

// Config holds the settings that may be loaded from a YAML file.
type Config struct {
	// URLs maps a kind name or alias to the base URL its identifiers are appended to.
	URLs        map[string]string `yaml:"urls"`
	Container   string            `yaml:"container"`
	UserAgent   string            `yaml:"userAgent"`
	Rate        float64           `yaml:"rate"`
	Concurrency int               `yaml:"concurrency"`
	Timeout     time.Duration     `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Container:   goquery.DefaultContainer,
		UserAgent:   sbhttp.DefaultUserAgent,
		Rate:        DefaultRate,
		Concurrency: archive.DefaultConcurrency,
		Timeout:     sbhttp.DefaultFetchTimeout,
	}
}

// LoadConfig reads the YAML file at path over the defaults. Keys missing
// from the file keep their default; unknown keys are rejected. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, statblock.Errorf(statblock.EINVALID, "read config: %v", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, statblock.Errorf(statblock.EINVALID, "parse config %s: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate returns an error if a setting is out of range.
func (c Config) Validate() error {
	if c.Rate <= 0 {
		return statblock.Errorf(statblock.EINVALID, "rate must be positive, got %v", c.Rate)
	}
	if c.Concurrency < 0 {
		return statblock.Errorf(statblock.EINVALID, "concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return statblock.Errorf(statblock.EINVALID, "timeout must not be negative, got %s", c.Timeout)
	}
	_, err := c.KindURLs()
	return err
}

// KindURLs resolves the keys of URLs to kinds.
func (c Config) KindURLs() (map[statblock.Kind]string, error) {
	urls := make(map[statblock.Kind]string, len(c.URLs))
	for name, base := range c.URLs {
		kind, err := statblock.ParseKind(name)
		if err != nil {
			return nil, err
		}
		urls[kind] = base
	}
	return urls, nil
}
