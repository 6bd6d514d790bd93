package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable ClauseSense settings.
type Config struct {
	GatewayURL      string `json:"gateway_url"`
	TimeoutSec      int    `json:"timeout_sec"`       // per-request bound
	PollIntervalSec int    `json:"poll_interval_sec"` // activity log re-poll cadence
	OutputDir       string `json:"output_dir"`        // where downloaded reports land
	Tone            string `json:"tone"`              // default analysis options
	Structure       string `json:"structure"`
	Focus           string `json:"focus"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		GatewayURL:      "http://localhost:8001",
		TimeoutSec:      120,
		PollIntervalSec: 30,
		OutputDir:       ".",
		Tone:            "formal",
		Structure:       "structured",
		Focus:           "full",
	}
}

// Timeout returns the per-request bound as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// PollInterval returns the activity log re-poll cadence as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// GlobalPath returns the location of the global config file.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "clausesense", "config.json"), nil
}

// LoadGlobal reads ~/.config/clausesense/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .clausesenserc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".clausesenserc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Save writes cfg to the global config file, creating the directory
// if needed.
func Save(cfg Config) error {
	path, err := GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	// Apply global values over defaults.
	if global != nil {
		applyLayer(&result, global)
	}

	// Apply project values over global.
	if project != nil {
		applyLayer(&result, project)
	}

	return result
}

func applyLayer(dst *Config, layer *Config) {
	if layer.GatewayURL != "" {
		dst.GatewayURL = layer.GatewayURL
	}
	if layer.TimeoutSec > 0 {
		dst.TimeoutSec = layer.TimeoutSec
	}
	if layer.PollIntervalSec > 0 {
		dst.PollIntervalSec = layer.PollIntervalSec
	}
	if layer.OutputDir != "" {
		dst.OutputDir = layer.OutputDir
	}
	if layer.Tone != "" {
		dst.Tone = layer.Tone
	}
	if layer.Structure != "" {
		dst.Structure = layer.Structure
	}
	if layer.Focus != "" {
		dst.Focus = layer.Focus
	}
}

// ApplyEnv overlays environment variables on cfg. A .env file in the
// working directory is loaded first when present; variables already set
// in the real environment win over it.
func ApplyEnv(cfg Config) Config {
	_ = godotenv.Load()

	if v := os.Getenv("CLAUSESENSE_GATEWAY_URL"); v != "" {
		cfg.GatewayURL = v
	}
	if v := os.Getenv("CLAUSESENSE_TIMEOUT_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSec = n
		}
	}
	if v := os.Getenv("CLAUSESENSE_POLL_INTERVAL_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollIntervalSec = n
		}
	}
	if v := os.Getenv("CLAUSESENSE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	return cfg
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
