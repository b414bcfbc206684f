// Package appconfig loads the service configuration from a YAML file
// with environment-variable overrides.
package appconfig

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything the service needs to reach its GCP backends.
type Config struct {
	ProjectID string `yaml:"project_id"`
	Region    string `yaml:"region"`

	// PuzzleTable is the fully qualified BigQuery export table of the
	// puzzle collection (project.dataset.table).
	PuzzleTable string `yaml:"puzzle_table"`

	// IndexCollection holds one pagination index doc per dimension.
	IndexCollection string `yaml:"index_collection"`
	// ProfileCollection holds author profiles for display-name lookup.
	ProfileCollection string `yaml:"profile_collection"`

	PageSize int `yaml:"page_size"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Region:            "us-central1",
		IndexCollection:   "puzzle-indexes",
		ProfileCollection: "profiles",
		PageSize:          20,
	}
}

// Load reads the config file at path, layering it over the defaults and
// then applying environment overrides. An empty path skips the file and
// uses defaults plus environment only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		c.ProjectID = v
	}
	if v := os.Getenv("GCP_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("PUZZLE_TABLE"); v != "" {
		c.PuzzleTable = v
	}
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		}
	}
}

func (c *Config) validate() error {
	if c.ProjectID == "" {
		return fmt.Errorf("project_id is required (file or GCP_PROJECT_ID)")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	return nil
}
