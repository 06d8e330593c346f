// Package config resolves stickynote settings from an optional config file,
// STICKYNOTE_* environment variables and command-line flags (highest wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	AppName = "stickynote"

	logFileName = "stickynote.log"
)

// Keys shared with the CLI for flag binding.
const (
	KeyDataDir        = "data_dir"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"
	KeyHistoryEnabled = "history.enabled"
	KeyTUIMouse       = "tui.mouse"
	KeyTUIAltScreen   = "tui.alt_screen"
	KeyTUITitle       = "tui.title"
)

type Config struct {
	DataDir string        `mapstructure:"data_dir" validate:"required"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	TUI     TUIConfig     `mapstructure:"tui"`

	// ConfigFile is the file the settings were read from ("" when none was found).
	ConfigFile string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File defaults to <data_dir>/logs/stickynote.log.
	File string `mapstructure:"file"`
}

type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type TUIConfig struct {
	Mouse     bool   `mapstructure:"mouse"`
	AltScreen bool   `mapstructure:"alt_screen"`
	Title     string `mapstructure:"title" validate:"max=64"`
}

// Dir returns the config directory: $STICKYNOTE_CONFIG_DIR when set, otherwise
// <user config dir>/stickynote.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("STICKYNOTE_CONFIG_DIR")); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// NewViper returns a viper instance with defaults and env binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("STICKYNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir, _ := Dir()
	v.SetDefault(KeyDataDir, dir)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyTUIMouse, true)
	v.SetDefault(KeyTUIAltScreen, true)
	v.SetDefault(KeyTUITitle, AppName)
	return v
}

// Load reads the config file (explicit path, or config.{toml,yaml,json} in Dir)
// and returns the validated settings. A missing default config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}
	if file = strings.TrimSpace(file); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if strings.TrimSpace(cfg.Log.File) == "" && cfg.DataDir != "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "logs", logFileName)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
