package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process-level settings. Per-user preferences such as the
// Gemini API key live in the database instead.
type Config struct {
	DatabasePath     string        `yaml:"database_path"`
	LogPath          string        `yaml:"log_path"`
	GeminiModel      string        `yaml:"gemini_model"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	ReminderInterval time.Duration `yaml:"reminder_interval"`
}

func defaults() *Config {
	return &Config{
		DatabasePath:     "study_assistant.db",
		LogPath:          "study_assistant.log",
		GeminiModel:      "gemini-2.0-flash",
		RequestTimeout:   30 * time.Second,
		ReminderInterval: 15 * time.Minute,
	}
}

// Load reads the config file at path when it exists, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %q: %w", path, err)
			}
		case os.IsNotExist(err):
			// Fall through to env overrides.
		default:
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.ReminderInterval < time.Minute {
		cfg.ReminderInterval = time.Minute
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STUDY_ASSISTANT_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("STUDY_ASSISTANT_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("STUDY_ASSISTANT_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("STUDY_ASSISTANT_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("STUDY_ASSISTANT_REMINDER_INTERVAL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ReminderInterval = time.Duration(n) * time.Minute
		}
	}
}
