package lottiegrab

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level lottiegrab configuration.
type Config struct {
	Browser  BrowserConfig  `yaml:"browser"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Debounce DebounceConfig `yaml:"debounce"`
	Store    StoreConfig    `yaml:"store"`
	API      APIConfig      `yaml:"api"`
	Sinks    []SinkConfig   `yaml:"sinks"`
}

// BrowserConfig controls the Chrome instance.
type BrowserConfig struct {
	Remote  string   `yaml:"remote"`
	Headful bool     `yaml:"headful"`
	Open    []string `yaml:"open"`
}

// FetchConfig controls candidate body re-retrieval.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	MaxBody   int64         `yaml:"max_body"`
	UserAgent string        `yaml:"user_agent"`
}

// DebounceConfig controls count notification batching.
type DebounceConfig struct {
	Window time.Duration `yaml:"window"`
}

// StoreConfig locates the animation database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// APIConfig controls the HTTP API listener.
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// SinkConfig defines an output backend.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | webhook
	URL  string `yaml:"url"`  // for webhook
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.MaxBody <= 0 {
		c.Fetch.MaxBody = 10 << 20
	}
	if c.Debounce.Window <= 0 {
		c.Debounce.Window = 500 * time.Millisecond
	}
	if c.Store.Path == "" {
		c.Store.Path = "lottiegrab.db"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8087"
	}
}
