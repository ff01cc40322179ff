// Package config loads the client configuration from the yaml file
// written by `bookhub init`, with an environment override for the
// backend address.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BaseURL string `yaml:"base_url"`
	Catalog struct {
		BooksPerPage   int `yaml:"books_per_page"`
		ReviewsPerPage int `yaml:"reviews_per_page"`
	} `yaml:"catalog"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
}

// Default returns the configuration `bookhub init` writes.
func Default() Config {
	var cfg Config
	cfg.BaseURL = "http://localhost:8080/api"
	cfg.Catalog.BooksPerPage = 9
	cfg.Catalog.ReviewsPerPage = 5
	cfg.Cache.Path = filepath.Join(Dir(), "cache.db")
	return cfg
}

// Dir is the per-user bookhub directory.
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".bookhub")
}

// DefaultPath is the config file location under Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the config file at path, falling back to defaults when it
// does not exist. BOOKHUB_BASE_URL overrides the configured backend.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if baseURL := os.Getenv("BOOKHUB_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
