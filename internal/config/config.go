package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFile = ".modals/config.json"
	envPrefix  = "MODALS"

	// MinDialogWidth is the narrowest dialog the renderer can lay out.
	MinDialogWidth = 24
)

// Config holds the user's settings.
type Config struct {
	UI  UIConfig  `json:"ui" mapstructure:"ui"`
	Log LogConfig `json:"log" mapstructure:"log"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ReducedMotion bool `json:"reduced_motion" mapstructure:"reduced_motion"`
	DialogWidth   int  `json:"dialog_width" mapstructure:"dialog_width"`
}

// LogConfig holds logging settings. An empty File discards logs.
type LogConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file,omitempty" mapstructure:"file"`
}

var levels = []string{"debug", "info", "warn", "error"}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		UI:  UIConfig{DialogWidth: 56},
		Log: LogConfig{Level: "info"},
	}
}

// Keys lists the settable keys.
func Keys() []string {
	return []string{"ui.reduced_motion", "ui.dialog_width", "log.level", "log.file"}
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk, applying MODALS_* environment overrides
// (e.g. MODALS_UI_REDUCED_MOTION=true). A missing file yields defaults.
func Load(baseDir string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("ui.reduced_motion", def.UI.ReducedMotion)
	v.SetDefault("ui.dialog_width", def.UI.DialogWidth)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := Path(baseDir)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.UI.DialogWidth < MinDialogWidth {
		return fmt.Errorf("ui.dialog_width must be at least %d, got %d", MinDialogWidth, c.UI.DialogWidth)
	}
	if !slices.Contains(levels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(levels, ", "), c.Log.Level)
	}
	return nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Set updates one key in the stored config. Environment overrides are not
// written back.
func Set(baseDir, key, value string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := cfg.set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return Save(baseDir, cfg)
}

// Get returns the value of one key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "ui.reduced_motion":
		return strconv.FormatBool(c.UI.ReducedMotion), nil
	case "ui.dialog_width":
		return strconv.Itoa(c.UI.DialogWidth), nil
	case "log.level":
		return c.Log.Level, nil
	case "log.file":
		return c.Log.File, nil
	}
	return "", fmt.Errorf("unknown key %q", key)
}

func (c *Config) set(key, value string) error {
	switch key {
	case "ui.reduced_motion":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.UI.ReducedMotion = b
	case "ui.dialog_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.UI.DialogWidth = n
	case "log.level":
		c.Log.Level = strings.ToLower(value)
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}
