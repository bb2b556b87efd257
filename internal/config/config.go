package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Config represents the top-level book.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Display  DisplayConfig  `yaml:"display"`
	Roles    RolesConfig    `yaml:"roles"`
}

// BusinessConfig identifies the business and its bookkeeping currency.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // ISO code, e.g. "SAR" or "EGP"
}

// DisplayConfig holds presentation preferences carried with the book.
type DisplayConfig struct {
	Language string `yaml:"language"` // "ar" or "en"
	Theme    string `yaml:"theme"`    // "light" or "dark"
}

// RolesConfig maps transaction account roles to chart-of-accounts codes.
// These are resolved to account IDs once at startup; transaction intent
// is never inferred from entry text.
type RolesConfig struct {
	Revenue        string `yaml:"revenue_account"`
	CostOfSales    string `yaml:"cost_of_sales_account"`
	InventoryAsset string `yaml:"inventory_account"`
}

// Load reads a book.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book. The
// role codes match the seed chart of accounts.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "SAR",
		},
		Display: DisplayConfig{
			Language: "ar",
			Theme:    "light",
		},
		Roles: RolesConfig{
			Revenue:        "4101",
			CostOfSales:    "5202",
			InventoryAsset: "1201",
		},
	}
}

// Settings projects the config into the snapshot's settings record.
func (c *Config) Settings() model.Settings {
	return model.Settings{
		Language:    c.Display.Language,
		Theme:       c.Display.Theme,
		Currency:    c.Business.Currency,
		CompanyName: c.Business.Name,
	}
}

// ApplySettings copies imported snapshot settings back into the config.
func (c *Config) ApplySettings(s model.Settings) {
	if s.Language != "" {
		c.Display.Language = s.Language
	}
	if s.Theme != "" {
		c.Display.Theme = s.Theme
	}
	if s.Currency != "" {
		c.Business.Currency = s.Currency
	}
	if s.CompanyName != "" {
		c.Business.Name = s.CompanyName
	}
}
