package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	yaml "go.yaml.in/yaml/v3"
)

// Config is the full process configuration, read once at startup.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Headers Headers       `yaml:"headers"`
	General GeneralConfig `yaml:"general"`
	Email   EmailConfig   `yaml:"email"`
	Logging LoggingConfig `yaml:"logging"`

	// MonitoredGPUs is General.GPUs split and trimmed, populated by Load.
	MonitoredGPUs []string `yaml:"-"`
}

type APIConfig struct {
	// BaseSearchURL must contain a {locale} placeholder.
	BaseSearchURL string `yaml:"base_search_url"`
	// InventoryURL must contain {locale} and {sku} placeholders.
	InventoryURL string   `yaml:"inventory_url"`
	Locale       string   `yaml:"locale"`
	Timeout      Duration `yaml:"timeout"`
}

type GeneralConfig struct {
	Manufacturer string `yaml:"manufacturer"`
	// GPUs is a comma-separated list of GPU names to monitor.
	GPUs          string   `yaml:"gpus"`
	CheckInterval Duration `yaml:"check_interval"`
	MaxFailures   int      `yaml:"max_failures"`
}

type EmailConfig struct {
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Recipient string `yaml:"recipient"`
	SMTPHost  string `yaml:"smtp_host"`
	SMTPPort  int    `yaml:"smtp_port"`

	BaselineSubject string `yaml:"baseline_subject"`
	ListingSubject  string `yaml:"listing_subject"`
	ProductSubject  string `yaml:"product_subject"`
	DownSubject     string `yaml:"down_subject"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SearchURL expands the {locale} placeholder in the base search URL.
func (a APIConfig) SearchURL() string {
	return strings.ReplaceAll(a.BaseSearchURL, "{locale}", a.Locale)
}

// InventoryURLFor expands the {locale} and {sku} placeholders for one probe.
func (a APIConfig) InventoryURLFor(sku string) string {
	url := strings.ReplaceAll(a.InventoryURL, "{locale}", a.Locale)
	return strings.ReplaceAll(url, "{sku}", sku)
}

// Load reads, strictly decodes and validates the config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes and validates raw config bytes.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()

	for _, name := range strings.Split(cfg.General.GPUs, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.MonitoredGPUs = append(cfg.MonitoredGPUs, name)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.Timeout <= 0 {
		c.API.Timeout = Duration(defaultTimeout)
	}
	if c.Email.SMTPHost == "" {
		c.Email.SMTPHost = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	switch {
	case c.API.BaseSearchURL == "":
		return fmt.Errorf("api.base_search_url is required")
	case !strings.Contains(c.API.BaseSearchURL, "{locale}"):
		return fmt.Errorf("api.base_search_url must contain a {locale} placeholder")
	case c.API.InventoryURL == "":
		return fmt.Errorf("api.inventory_url is required")
	case !strings.Contains(c.API.InventoryURL, "{sku}"):
		return fmt.Errorf("api.inventory_url must contain a {sku} placeholder")
	case c.API.Locale == "":
		return fmt.Errorf("api.locale is required")
	case c.General.Manufacturer == "":
		return fmt.Errorf("general.manufacturer is required")
	case len(c.MonitoredGPUs) == 0:
		return fmt.Errorf("general.gpus must name at least one GPU")
	case c.General.CheckInterval <= 0:
		return fmt.Errorf("general.check_interval must be > 0")
	case c.General.MaxFailures <= 0:
		return fmt.Errorf("general.max_failures must be > 0")
	}
	return nil
}
