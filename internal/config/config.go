package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the REST base the dashboard talks to out of the box
const DefaultServerURL = "http://localhost:8000/api"

// Config holds user preferences
type Config struct {
	ServerURL       string        `yaml:"server_url" json:"server_url"`             // REST API base, including the /api prefix
	RequestTimeout  time.Duration `yaml:"request_timeout" json:"request_timeout"`   // Per-request HTTP timeout
	Concurrency     int           `yaml:"concurrency" json:"concurrency"`           // Parallel fetches per pass, 1 = sequential
	RefreshInterval time.Duration `yaml:"refresh_interval" json:"refresh_interval"` // Background re-aggregation, 0 disables
	NoticeTimeout   time.Duration `yaml:"notice_timeout" json:"notice_timeout"`     // How long a notification stays visible
	MaskPasswords   bool          `yaml:"mask_passwords" json:"mask_passwords"`     // Hide passwords until revealed

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.credboard
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".credboard"), nil
}

// DefaultConfig returns default settings with environment overrides applied
func DefaultConfig() *Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "logs", "credboard.log")
	}

	return &Config{
		ServerURL:       getEnv("CREDBOARD_SERVER_URL", DefaultServerURL),
		RequestTimeout:  getEnvDuration("CREDBOARD_REQUEST_TIMEOUT", 30*time.Second),
		Concurrency:     getEnvInt("CREDBOARD_CONCURRENCY", 1),
		RefreshInterval: getEnvDuration("CREDBOARD_REFRESH_INTERVAL", 0),
		NoticeTimeout:   getEnvDuration("CREDBOARD_NOTICE_TIMEOUT", 3*time.Second),
		MaskPasswords:   getEnv("CREDBOARD_MASK_PASSWORDS", "true") == "true",
		LogLevel:        getEnv("CREDBOARD_LOG_LEVEL", "INFO"),
		LogFile:         getEnv("CREDBOARD_LOG_FILE", logPath),
		LogConsole:      getEnv("CREDBOARD_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

// Path returns the config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.credboard/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// normalize clamps values a hand-edited file could get wrong
func (c *Config) normalize() {
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.NoticeTimeout <= 0 {
		c.NoticeTimeout = 3 * time.Second
	}
	if c.RefreshInterval < 0 {
		c.RefreshInterval = 0
	}
}

// Save saves config to ~/.credboard/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config as yaml to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
