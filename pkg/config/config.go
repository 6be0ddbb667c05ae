// Package config loads and validates streamcount configuration from a
// YAML file merged over built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultMaxRounds is the round budget used when none is configured.
const DefaultMaxRounds = 5000

// DefaultStateCap bounds the number of live round states by default.
const DefaultStateCap = 1024

var validate = validator.New()

// Config holds all tunable parameters for a streamcount run.
type Config struct {
	// Input is the edge list path; ".sz" files are snappy-compressed.
	Input string `yaml:"input"`

	// Seed initializes the random source. The same seed and input
	// reproduce the exact estimate sequence.
	Seed int64 `yaml:"seed"`

	// MaxRounds is the feedback loop's round budget.
	MaxRounds int `yaml:"max_rounds" validate:"required,gt=0"`

	// EdgeCount and VertexCount are the graph-size scalars in the
	// estimate formula. Zero means "derive from the loaded graph".
	EdgeCount   int `yaml:"edge_count" validate:"gte=0"`
	VertexCount int `yaml:"vertex_count" validate:"gte=0"`

	// StateCap bounds live round states; 0 disables eviction.
	StateCap int `yaml:"state_cap" validate:"gte=0"`

	// Exact also runs the exact triangle counter for reference.
	Exact bool `yaml:"exact"`

	// MetricsAddr, when set, serves Prometheus metrics and health
	// endpoints on this address (e.g. ":9090").
	MetricsAddr string `yaml:"metrics_addr"`

	// PublishAddr, when set, streams estimate records on a nanomsg PUB
	// socket at this address (e.g. "tcp://0.0.0.0:5555").
	PublishAddr string `yaml:"publish_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxRounds: DefaultMaxRounds,
		StateCap:  DefaultStateCap,
	}
}

// Load reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field rules. Violations
// are configuration errors and fatal to the run.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid config: field %s fails %q", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	// A nonzero vertex count below 3 can never form a triangle and
	// breaks the estimate formula's (v-2) factor
	if c.VertexCount != 0 && c.VertexCount < 3 {
		return fmt.Errorf("invalid config: vertex_count must be 0 (derive) or >= 3, got %d", c.VertexCount)
	}
	return nil
}
