package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PHISHLENS_"

// Config holds the runtime options. Values come from DefaultConfig, then an
// optional YAML file, then PHISHLENS_* environment variables.
type Config struct {
	// ListenAddr is the HTTP listen address for `phishlens serve`.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigin is echoed in Access-Control-Allow-Origin.
	AllowedOrigin string `yaml:"allowed_origin"`

	// Startup artifacts. All three must exist.
	ModelPath     string `yaml:"model_path"`
	DatasetPath   string `yaml:"dataset_path"`
	AllowlistPath string `yaml:"allowlist_path"`

	// HistoryPath is the SQLite file for recorded checks. Empty disables history.
	HistoryPath string `yaml:"history_path"`

	LogLevel string `yaml:"log_level"`

	// TopImportances is the number of bars in the importance chart.
	TopImportances int `yaml:"top_importances"`

	// IPFlagZero makes the ip feature always 0 instead of matching a dotted quad.
	IPFlagZero bool `yaml:"ip_flag_zero"`
}

// DefaultConfig returns a Config populated with development defaults. Paths
// are relative to the working directory, next to the trainer's output.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		AllowedOrigin:  "*",
		ModelPath:      "phishing_model.gob",
		DatasetPath:    "dataset_phishing.csv",
		AllowlistPath:  "famous_url_with_alias.csv",
		HistoryPath:    "phishlens.db",
		LogLevel:       "info",
		TopImportances: 15,
	}
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped
// when path is empty) and the process environment. A .env file in the working
// directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PHISHLENS_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LISTEN_ADDR":    &c.ListenAddr,
		"ALLOWED_ORIGIN": &c.AllowedOrigin,
		"MODEL":          &c.ModelPath,
		"DATASET":        &c.DatasetPath,
		"ALLOWLIST":      &c.AllowlistPath,
		"HISTORY":        &c.HistoryPath,
		"LOG_LEVEL":      &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "TOP_IMPORTANCES"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sTOP_IMPORTANCES: %w", EnvPrefix, err)
		}
		c.TopImportances = n
	}
	if v, ok := lookup(EnvPrefix + "IP_FLAG_ZERO"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sIP_FLAG_ZERO: %w", EnvPrefix, err)
		}
		c.IPFlagZero = b
	}
	return nil
}

// Validate rejects configs the application cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.ModelPath == "":
		return errors.New("config: model_path is required")
	case c.DatasetPath == "":
		return errors.New("config: dataset_path is required")
	case c.AllowlistPath == "":
		return errors.New("config: allowlist_path is required")
	case c.TopImportances <= 0:
		return fmt.Errorf("config: top_importances must be positive, got %d", c.TopImportances)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}
