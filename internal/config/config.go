package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Source is the URL the quote feed is fetched from
	SourceURL string `json:"source_url"`

	// SubmitURL receives user quote submissions
	SubmitURL string `json:"submit_url"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	ShowAuthor  bool   `json:"show_author"`
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		SourceURL: "",
		SubmitURL: "",
		UI: UIConfig{
			Theme:       "dark",
			ShowAuthor:  true,
			DensityMode: "comfortable",
		},
	}
}

// DataDir returns the directory for config, database, and logs
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quotefeed")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// AutoPopulateFromEnv fills in endpoints from environment variables
func (c *Config) AutoPopulateFromEnv() {
	if url := os.Getenv("QUOTEFEED_SOURCE_URL"); url != "" {
		c.SourceURL = url
	}
	if url := os.Getenv("QUOTEFEED_SUBMIT_URL"); url != "" {
		c.SubmitURL = url
	}
}
