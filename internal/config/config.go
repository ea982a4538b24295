// Package config loads the optional datasink.yml configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wizzomafizzo/datasink/internal/logging"
	"github.com/wizzomafizzo/datasink/internal/transfer"
)

// DefaultPath is where the config file is looked up when no --config flag is
// given. A missing file is not an error; defaults apply.
const DefaultPath = "datasink.yml"

type Config struct {
	// LogFile is the append-only transfer log path.
	LogFile string `yaml:"log_file"`
	// CollisionPolicy is "merge" or "timestamp" for directory-copy
	// collisions.
	CollisionPolicy string `yaml:"collision_policy"`
	// History controls the sqlite transfer journal.
	History History `yaml:"history"`
	// AllowedRoots widens the safety boundary beyond home and working
	// directory.
	AllowedRoots []string `yaml:"allowed_roots"`
}

type History struct {
	// Path overrides the XDG data-dir database location.
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		LogFile:         logging.DefaultLogFile,
		CollisionPolicy: string(transfer.PolicyMerge),
		History:         History{Enabled: true},
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// Validate checks field values that have a closed set of valid inputs.
func (c *Config) Validate() error {
	switch transfer.CollisionPolicy(c.CollisionPolicy) {
	case transfer.PolicyMerge, transfer.PolicyTimestamp:
		return nil
	default:
		return fmt.Errorf("invalid collision_policy %q (want %q or %q)",
			c.CollisionPolicy, transfer.PolicyMerge, transfer.PolicyTimestamp)
	}
}

// Policy returns the configured collision policy as its typed value.
func (c *Config) Policy() transfer.CollisionPolicy {
	return transfer.CollisionPolicy(c.CollisionPolicy)
}
