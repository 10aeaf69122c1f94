// Package config builds the process configuration once at startup.
//
// Values come from the environment (prefix ROUTERWATCH) and optional .env files. The
// resulting Config is passed to the components that need it; nothing else in the module
// reads the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. ROUTERWATCH_LOG_LEVEL.
const EnvPrefix = "ROUTERWATCH"

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Router   RouterConfig   `mapstructure:"router"`
	Database DatabaseConfig `mapstructure:"database"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text or json
	Output     string `mapstructure:"output"` // stdout, stderr or file
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// RouterConfig holds the commands whose output is parsed.
type RouterConfig struct {
	ClientsCommand string        `mapstructure:"clients_command"`
	FlowsCommand   string        `mapstructure:"flows_command"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	Shell          string        `mapstructure:"shell"`
}

// DatabaseConfig enables the Postgres sink when DSN is set.
type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	TablePrefix string `mapstructure:"table_prefix"`
}

// Enabled reports whether persistence is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("router.clients_command", "")
	v.SetDefault("router.flows_command", "nlbw -c show -g mac,ip")
	v.SetDefault("router.command_timeout", 10*time.Second)
	v.SetDefault("router.shell", "sh")

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.table_prefix", "routerwatch_")
}

// Load reads the given .env files (missing ones are ignored), then the environment,
// and returns a validated Config.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load env file %s: %w", file, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}

	switch strings.ToLower(c.Log.Output) {
	case "stdout", "stderr":
	case "file":
		if c.Log.FilePath == "" {
			return errors.New("log file path is required when output is file")
		}
	default:
		return fmt.Errorf("unsupported log output: %s", c.Log.Output)
	}

	if c.Router.CommandTimeout <= 0 {
		return fmt.Errorf("router command timeout must be positive, got %s", c.Router.CommandTimeout)
	}
	if c.Router.Shell == "" {
		return errors.New("router shell must not be empty")
	}
	return nil
}
