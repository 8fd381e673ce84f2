// Package config provides the configuration structure for the preset generator.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	"github.com/pelletier/go-toml/v2"
)

// Built-in defaults used when no configuration file is given.
const (
	DefaultOutputDir       = "presets/factory"
	DefaultCollisionPolicy = "fail"
	DefaultAuthor          = "Bret Bouchard"
	DefaultVersion         = "2.0.0"
	DefaultPluginVersion   = "2.0.0"
	DefaultBucket          = "CHOIR_PRESETS"
	DefaultLogsDir         = "logs"
)

// OutputConfig holds where artifacts go and how name collisions are handled.
type OutputConfig struct {
	Dir             string `toml:"dir"`
	CollisionPolicy string `toml:"collision_policy"`
}

// MetadataConfig holds the authoring stamped into every record.
type MetadataConfig struct {
	Author        string `toml:"author"`
	Version       string `toml:"version"`
	PluginVersion string `toml:"plugin_version"`
}

// CatalogConfig holds the location of additional theme documents.
type CatalogConfig struct {
	ExtraDir string `toml:"extra_dir"`
}

// NATSConfig holds the configuration for NATS. An empty URL disables NATS
// and artifacts are written to the output directory.
type NATSConfig struct {
	URL                    string `toml:"url"`
	ObjectStoreBucket      string `toml:"object_store_bucket"`
	PresetGeneratedSubject string `toml:"preset_generated_subject"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
}

// Config is the root configuration structure.
type Config struct {
	Output   OutputConfig   `toml:"output"`
	Metadata MetadataConfig `toml:"metadata"`
	Catalog  CatalogConfig  `toml:"catalog"`
	NATS     NATSConfig     `toml:"nats"`
	Paths    PathsConfig    `toml:"paths"`
}

// Default returns the configuration of a run without a configuration file.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:             DefaultOutputDir,
			CollisionPolicy: DefaultCollisionPolicy,
		},
		Metadata: MetadataConfig{
			Author:        DefaultAuthor,
			Version:       DefaultVersion,
			PluginVersion: DefaultPluginVersion,
		},
		Catalog: CatalogConfig{
			ExtraDir: "",
		},
		NATS: NATSConfig{
			URL:                    "",
			ObjectStoreBucket:      DefaultBucket,
			PresetGeneratedSubject: "",
		},
		Paths: PathsConfig{
			BaseLogsDir: DefaultLogsDir,
		},
	}
}

// Parse decodes TOML over the defaults. Keys absent from data keep their
// default values; unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()

	err := dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

// Load reads a TOML configuration file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", path, err)
	}

	return cfg, nil
}

// LoadShared loads the configuration using the central configurator, on top
// of the defaults.
func LoadShared(log *logger.Logger) (*Config, error) {
	cfg := Default()

	err := configurator.Load(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	return cfg, nil
}
