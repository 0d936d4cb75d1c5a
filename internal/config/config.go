// Package config loads the server environment and the embedded product
// catalog (set-aside codes, display projection, export exclusions).
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrMissingAPIKey is fatal at startup; the tool is useless without the key.
var ErrMissingAPIKey = errors.New("SAM_API_KEY is not set")

// Config is the process configuration from the environment.
type Config struct {
	APIKey  string
	BaseURL string // empty selects the production endpoint
	Port    string
}

// FromEnv reads the environment. The API key is required; everything else
// has a default.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:  os.Getenv("SAM_API_KEY"),
		BaseURL: os.Getenv("SAM_BASE_URL"),
		Port:    os.Getenv("PORT"),
	}
	if cfg.APIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	if cfg.Port == "" {
		cfg.Port = "8082"
	}
	return cfg, nil
}

// SetAsideOption is one selectable set-aside code.
type SetAsideOption struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// Catalog is the embedded product configuration.
type Catalog struct {
	NAICSPrefix      string           `yaml:"naics_prefix"`
	SetAsides        []SetAsideOption `yaml:"set_asides"`
	DisplayFields    []string         `yaml:"display_fields"`
	ExportExclusions []string         `yaml:"export_exclusions"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.DisplayFields) == 0 {
		return nil, errors.New("catalog has no display fields")
	}
	return &c, nil
}

// ValidSetAside reports whether the code is in the catalog.
func (c *Catalog) ValidSetAside(code string) bool {
	for _, o := range c.SetAsides {
		if o.Code == code {
			return true
		}
	}
	return false
}
