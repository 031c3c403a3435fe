package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"swimparse/pkg/contracts/domain"
)

// Config is the complete application configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Locations LocationsConfig `yaml:"locations" envconfig:"LOCATIONS"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// PathsConfig holds the filesystem layout the CLI works in.
type PathsConfig struct {
	UploadsDir string `yaml:"uploads_dir" envconfig:"UPLOADS_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
}

// LocationsConfig points at the known-locations registry file.
type LocationsConfig struct {
	File string `yaml:"file" envconfig:"FILE"`
}

// defaults returns the baseline configuration. Defaults live here
// rather than in envconfig tags: a tag default would overwrite values
// loaded from the YAML file whenever the env var is unset.
func defaults() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Paths: PathsConfig{
			UploadsDir: "data/uploads",
			ReportsDir: "data/reports",
		},
		Locations: LocationsConfig{
			File: "locations.yml",
		},
	}
}

// Load builds configuration from defaults, an optional YAML file, and
// SWIMPARSE_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := defaults()

	configFile := os.Getenv("SWIMPARSE_CONFIG")
	if configFile == "" {
		configFile = "swimparse.yml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if err := envconfig.Process("SWIMPARSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// EnsureDirs creates the configured data directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.UploadsDir, c.Paths.ReportsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// locationsFile is the YAML shape of the known-locations registry.
type locationsFile struct {
	Locations []domain.Location `yaml:"locations"`
}

// LoadLocations reads the known-locations registry. A missing file is
// not an error: preflight then runs with no registry and every document
// resolves as location-ambiguous.
func LoadLocations(path string) ([]domain.Location, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}
	var f locationsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse locations file %s: %w", path, err)
	}
	return f.Locations, nil
}
