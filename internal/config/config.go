// Package config resolves nvramctl settings from flags, NVRAM_* environment
// variables, an optional config file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "nvramctl"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes every environment override, e.g. NVRAM_DEVICE.
	EnvPrefix = "NVRAM"
	// DefaultDevice is the NVRAM flash device on Apple silicon Linux.
	DefaultDevice = "/dev/mtd0"
)

// Keys shared by flags, environment and config file.
const (
	KeyDevice  = "device"
	KeyVerbose = "verbose"
	KeyLogFile = "log_file"
	KeyJSON    = "json"
)

// Config holds the resolved settings.
type Config struct {
	Device  string `mapstructure:"device"`
	Verbose bool   `mapstructure:"verbose"`
	LogFile string `mapstructure:"log_file"`
	JSON    bool   `mapstructure:"json"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{Device: DefaultDevice}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// ConfigFile, if set, is the only config file read and must exist.
	ConfigFile string
	// ConfigDir overrides the directory searched for config.{yaml,toml,json}.
	ConfigDir string
	// Flags are bound by key; flag names use '-' where keys use '_'.
	Flags *pflag.FlagSet
}

// ConfigDir returns $XDG_CONFIG_HOME/nvramctl, defaulting to ~/.config/nvramctl.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration. It returns the settings and the config
// file that was used, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyDevice, defaults.Device)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	v.SetDefault(KeyLogFile, defaults.LogFile)
	v.SetDefault(KeyJSON, defaults.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, key := range []string{KeyDevice, KeyVerbose, KeyLogFile, KeyJSON} {
			flag := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, "", fmt.Errorf("bind flag %s: %w", flag.Name, err)
			}
		}
	}

	resolvedPath, err := readConfigFile(v, opts)
	if err != nil {
		return nil, "", err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Device == "" {
		return nil, "", errors.New("config: device path is empty")
	}
	return &cfg, resolvedPath, nil
}

func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", fmt.Errorf("config file not found: %s: %w", opts.ConfigFile, err)
		}
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config %s: %w", opts.ConfigFile, err)
		}
		return opts.ConfigFile, nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			// No home directory: run on defaults.
			return "", nil
		}
	}
	v.SetConfigName(ConfigFileName)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config in %s: %w", dir, err)
	}
	return v.ConfigFileUsed(), nil
}
