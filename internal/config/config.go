package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      Server      `yaml:"server"`
	KeyMappings KeyMappings `yaml:"key_mappings"`
}

// Server holds the connection and refresh settings
type Server struct {
	// BaseURL is the root of the board API, e.g. https://board.example.com
	BaseURL string `yaml:"base_url"`

	// BoardRefresh is the silent refresh interval of the interactive board
	BoardRefresh Duration `yaml:"board_refresh"`

	// TVRefresh is the polling interval of the read-only display
	TVRefresh Duration `yaml:"tv_refresh"`
}

// Duration wraps time.Duration so intervals read naturally in YAML ("10s",
// "1m30s") instead of as nanosecond integers.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

const (
	defaultBoardRefresh = Duration(5 * time.Second)
	defaultTVRefresh    = Duration(30 * time.Second)
)

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := defaultConfig()
		applyEnv(config)
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := defaultConfig()
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()
	applyEnv(&config)

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "quadro", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "quadro", "config.yaml"), nil
}

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			BoardRefresh: defaultBoardRefresh,
			TVRefresh:    defaultTVRefresh,
		},
		KeyMappings: DefaultKeyMappings(),
	}
}

// applyEnv lets QUADRO_SERVER_URL override the configured server
func applyEnv(c *Config) {
	if url := os.Getenv("QUADRO_SERVER_URL"); url != "" {
		c.Server.BaseURL = url
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.BoardRefresh <= 0 {
		c.Server.BoardRefresh = defaultBoardRefresh
	}
	if c.Server.TVRefresh <= 0 {
		c.Server.TVRefresh = defaultTVRefresh
	}
	c.KeyMappings.applyDefaults()
}
