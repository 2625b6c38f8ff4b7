// ABOUTME: ndl configuration management with backend selection.
// ABOUTME: Layers defaults, the JSON config file, and NDL_ environment variables through viper.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

// EnvPrefix prefixes every environment override, e.g. NDL_ANALYTICS_VOLUME_WEEKS.
const EnvPrefix = "NDL"

// Config stores ndl configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "kv".
	Backend string `mapstructure:"backend" json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts ndl.db here, the kv backend uses a kv/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/ndl.
	DataDir string `mapstructure:"data_dir" json:"data_dir,omitempty"`

	// User is the default identity for commands that take --user.
	User string `mapstructure:"user" json:"user,omitempty"`

	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty"`
	LogFile  string `mapstructure:"log_file" json:"log_file,omitempty"`
	LogJSON  bool   `mapstructure:"log_json" json:"log_json,omitempty"`

	// ListenAddr is where `ndl serve` binds.
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr,omitempty"`

	Analytics AnalyticsConfig `mapstructure:"analytics" json:"analytics"`
}

// AnalyticsConfig tunes the aggregation windows and normalization.
type AnalyticsConfig struct {
	VolumeWeeks       int    `mapstructure:"volume_weeks" json:"volume_weeks,omitempty"`
	DistributionWeeks int    `mapstructure:"distribution_weeks" json:"distribution_weeks,omitempty"`
	UnmatchedBodyPart string `mapstructure:"unmatched_body_part" json:"unmatched_body_part,omitempty"`
	WeightUnit        string `mapstructure:"weight_unit" json:"weight_unit,omitempty"`
	WeightWindow      int    `mapstructure:"weight_window" json:"weight_window,omitempty"`
}

// setDefaults registers a default for every key so env overrides apply on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", storage.BackendSQLite)
	v.SetDefault("data_dir", "")
	v.SetDefault("user", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_json", false)
	v.SetDefault("listen_addr", "127.0.0.1:8080")

	d := analytics.DefaultOptions()
	v.SetDefault("analytics.volume_weeks", d.VolumeWeeks)
	v.SetDefault("analytics.distribution_weeks", d.DistributionWeeks)
	v.SetDefault("analytics.unmatched_body_part", string(d.Fallback))
	v.SetDefault("analytics.weight_unit", string(d.WeightUnit))
	v.SetDefault("analytics.weight_window", d.WeightWindow)
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return storage.BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// StoragePath returns where the configured backend keeps its data:
// the SQLite file or the kv directory.
func (c *Config) StoragePath() (string, error) {
	switch backend := c.GetBackend(); backend {
	case storage.BackendSQLite:
		return filepath.Join(c.GetDataDir(), "ndl.db"), nil
	case storage.BackendKV:
		return storage.KVDir(c.GetDataDir()), nil
	default:
		return "", fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenStorage creates a Repository implementation based on the configured backend.
// log receives the kv backend's internal messages and may be nil.
func (c *Config) OpenStorage(log *logrus.Logger) (storage.Repository, error) {
	path, err := c.StoragePath()
	if err != nil {
		return nil, err
	}
	if c.GetBackend() == storage.BackendKV {
		return storage.OpenKV(path, log)
	}
	return storage.Open(path)
}

// AnalyticsOptions converts the analytics section into service options.
// Zero values fall back to the service defaults.
func (c *Config) AnalyticsOptions() (analytics.Options, error) {
	opts := analytics.DefaultOptions()
	a := c.Analytics

	if a.VolumeWeeks < 0 || a.DistributionWeeks < 0 || a.WeightWindow < 0 {
		return opts, errors.New("analytics windows cannot be negative")
	}
	if a.VolumeWeeks > 0 {
		opts.VolumeWeeks = a.VolumeWeeks
	}
	if a.DistributionWeeks > 0 {
		opts.DistributionWeeks = a.DistributionWeeks
	}
	if a.WeightWindow > 0 {
		opts.WeightWindow = a.WeightWindow
	}
	if a.UnmatchedBodyPart != "" {
		b, err := analytics.ParseBucket(a.UnmatchedBodyPart)
		if err != nil {
			return opts, fmt.Errorf("analytics.unmatched_body_part: %w", err)
		}
		opts.Fallback = b
	}
	if a.WeightUnit != "" {
		u, err := models.ParseWeightUnit(a.WeightUnit)
		if err != nil {
			return opts, fmt.Errorf("analytics.weight_unit: %w", err)
		}
		opts.WeightUnit = u
	}
	return opts, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "ndl", "config.json")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path. A missing file yields the defaults
// with environment overrides applied.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveFile(GetConfigPath())
}

// SaveFile writes config to path as indented JSON.
func (c *Config) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
