// Package config resolves runtime settings from flags, environment
// variables, an optional mindcheck.yaml and a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/mindcheck/internal/scoring"
)

// EnvPrefix prefixes every environment override, e.g. MINDCHECK_ENDPOINT.
const EnvPrefix = "MINDCHECK"

// DefaultLogLevel applies when no level is configured.
const DefaultLogLevel = "info"

// Config holds the resolved settings.
type Config struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DBPath    string        `mapstructure:"db"`
	NoHistory bool          `mapstructure:"no-history"`
	LogFile   string        `mapstructure:"log-file"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
}

// RegisterFlags adds the settings flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (default ./mindcheck.yaml or ~/.config/mindcheck/mindcheck.yaml)")
	fs.String("endpoint", scoring.DefaultEndpoint, "Scoring service URL")
	fs.Duration("timeout", scoring.DefaultTimeout, "Scoring request timeout")
	fs.String("db", "", "Path to the SQLite history database (default $XDG_DATA_HOME/mindcheck/mindcheck.db)")
	fs.Bool("no-history", false, "Do not record assessments in the local history")
	fs.String("log-file", "", "Log file path (default $XDG_STATE_HOME/mindcheck/mindcheck.log)")
	fs.String("log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.String("log-format", "console", "Log format: console or json")
}

// Load resolves the configuration. Precedence, highest first: explicitly set
// flags, MINDCHECK_* environment variables (including those from .env),
// the config file, flag defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("mindcheck")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mindcheck")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LogFile == "" {
		p, err := DefaultLogPath()
		if err != nil {
			return nil, err
		}
		cfg.LogFile = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings that can be checked without I/O.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Endpoint)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("endpoint: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("endpoint %q: scheme must be http or https", c.Endpoint))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("endpoint %q: missing host", c.Endpoint))
	}

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// DefaultLogPath returns $XDG_STATE_HOME/mindcheck/mindcheck.log, falling
// back to ~/.local/state.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mindcheck", "mindcheck.log"), nil
}

// loadEnvFile loads variables from path when it exists. Variables already
// set in the environment win.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
