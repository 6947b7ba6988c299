// Package config loads application configuration from an optional
// config.yaml, .env file and TASKBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DataDir string       `mapstructure:"data_dir"`
	Board   BoardConfig  `mapstructure:"board"`
	Auth    AuthConfig   `mapstructure:"auth"`
	Delays  DelayConfig  `mapstructure:"delays"`
	Logger  LoggerConfig `mapstructure:"logger"`
}

// BoardConfig selects which board is mounted. Each key is an
// independent collection with its own storage file.
type BoardConfig struct {
	Key string `mapstructure:"key"`
}

// AuthConfig holds the demo credential pair.
type AuthConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// DelayConfig bounds the simulated request latencies.
type DelayConfig struct {
	LoadMin   time.Duration `mapstructure:"load_min"`
	LoadMax   time.Duration `mapstructure:"load_max"`
	SaveMin   time.Duration `mapstructure:"save_min"`
	SaveMax   time.Duration `mapstructure:"save_max"`
	MoveMin   time.Duration `mapstructure:"move_min"`
	MoveMax   time.Duration `mapstructure:"move_max"`
	LoginMin  time.Duration `mapstructure:"login_min"`
	LoginMax  time.Duration `mapstructure:"login_max"`
	CookieMin time.Duration `mapstructure:"cookie_min"`
	CookieMax time.Duration `mapstructure:"cookie_max"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func Load() (*Config, error) {
	// .env values become plain environment variables, if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	v.SetDefault("data_dir", filepath.Join(home, ".taskboard"))
	v.SetDefault("board.key", "challenge5-kanban")
	v.SetDefault("auth.username", "test")
	v.SetDefault("auth.password", "test")
	// bounds taken from the app this board simulates
	v.SetDefault("delays.load_min", 500*time.Millisecond)
	v.SetDefault("delays.load_max", 3*time.Second)
	v.SetDefault("delays.save_min", 500*time.Millisecond)
	v.SetDefault("delays.save_max", 2*time.Second)
	v.SetDefault("delays.move_min", 100*time.Millisecond)
	v.SetDefault("delays.move_max", 400*time.Millisecond)
	v.SetDefault("delays.login_min", 500*time.Millisecond)
	v.SetDefault("delays.login_max", 5*time.Second)
	v.SetDefault("delays.cookie_min", 500*time.Millisecond)
	v.SetDefault("delays.cookie_max", 2*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "taskboard.log")
}
