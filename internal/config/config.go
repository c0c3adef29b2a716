package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "configs/config.toml"

type Config struct {
	API struct {
		BaseURL    string `toml:"base_url"`
		Timeout    time.Duration
		StrTimeout string `toml:"timeout"`
	} `toml:"api"`
	Auth struct {
		CallbackAddr string `toml:"callback_addr"`
		SessionFile  string `toml:"session_file"`
	} `toml:"auth"`
	Cache struct {
		Staleness    time.Duration
		StrStaleness string `toml:"staleness"`

		RedisAddr     string `toml:"redis_addr"`
		RedisPassword string `toml:"redis_password"`
		RedisDB       int    `toml:"redis_db"`
	} `toml:"cache"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`

	Features Features
}

// Features is the enumerated feature flag set. Flags are read from
// FEATURE_* environment variables and a feature is enabled only when the
// variable equals "true" or "1".
type Features struct {
	FeedbackAIPolish     bool
	AdminSessions        bool
	AbsenceConflictCheck bool
}

var featureVars = map[string]func(*Features, bool){
	"FEATURE_FEEDBACK_AI_POLISH_ENABLED":     func(f *Features, v bool) { f.FeedbackAIPolish = v },
	"FEATURE_ADMIN_SESSIONS_ENABLED":         func(f *Features, v bool) { f.AdminSessions = v },
	"FEATURE_ABSENCE_CONFLICT_CHECK_ENABLED": func(f *Features, v bool) { f.AbsenceConflictCheck = v },
}

func GetConfig(logger *slog.Logger) (*Config, error) {
	path := os.Getenv("HRCONSOLE_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error read config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	var cfg *Config
	if _, tomlErr := toml.Decode(string(data), &cfg); tomlErr != nil {
		logger.Error("Error decode config file", slog.String("error", tomlErr.Error()))
		return nil, tomlErr
	}

	if v := os.Getenv("HRCONSOLE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("HRCONSOLE_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if cfg.API.StrTimeout != "" {
		cfg.API.Timeout, err = time.ParseDuration(cfg.API.StrTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid api.timeout: %w", err)
		}
	} else {
		cfg.API.Timeout = 30 * time.Second
	}

	if cfg.Cache.StrStaleness != "" {
		cfg.Cache.Staleness, err = time.ParseDuration(cfg.Cache.StrStaleness)
		if err != nil {
			return nil, fmt.Errorf("invalid cache.staleness: %w", err)
		}
	} else {
		cfg.Cache.Staleness = 5 * time.Minute
	}

	if cfg.Auth.SessionFile == "" {
		cfg.Auth.SessionFile = defaultSessionFile()
	}
	if cfg.Auth.CallbackAddr == "" {
		cfg.Auth.CallbackAddr = "127.0.0.1:8765"
	}

	features, err := LoadFeatures(os.Environ())
	if err != nil {
		return nil, err
	}
	cfg.Features = features

	logger.Info("Config is loaded", slog.String("api", cfg.API.BaseURL))
	return cfg, nil
}

// LoadFeatures parses FEATURE_* variables from an environ-style list.
// Unknown FEATURE_* variables are a startup error so typos fail loudly
// instead of silently disabling a feature.
func LoadFeatures(environ []string) (Features, error) {
	var f Features
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, "FEATURE_") {
			continue
		}

		set, known := featureVars[key]
		if !known {
			return Features{}, fmt.Errorf("unknown feature flag variable %q", key)
		}
		set(&f, FlagEnabled(value))
	}
	return f, nil
}

// FlagEnabled implements the flag contract: only "true" and "1" enable.
func FlagEnabled(value string) bool {
	return value == "true" || value == "1"
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hrconsole-session.json"
	}
	return dir + "/hrconsole/session.json"
}
