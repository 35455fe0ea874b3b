package userconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory under $HOME for wtp-complete config
	ConfigDir = ".config/wtp-complete"
	// ConfigFile is the name of the user config file
	ConfigFile = "config.yaml"
	// PathEnv overrides the config file location
	PathEnv = "WTP_COMPLETE_CONFIG"
)

// Defaults
const (
	DefaultWtpPath  = "wtp"
	DefaultGitPath  = "git"
	DefaultTimeout  = "2s"
	DefaultLogLevel = "warn"
)

// UserConfig holds user-level configuration
type UserConfig struct {
	// WtpPath is the wtp binary used to list worktrees
	WtpPath string `koanf:"wtp_path" yaml:"wtp_path,omitempty"`
	// GitPath is the git binary used to list branches
	GitPath string `koanf:"git_path" yaml:"git_path,omitempty"`
	// Timeout bounds each suggestion command (e.g. "500ms", "2s")
	Timeout string `koanf:"timeout" yaml:"timeout,omitempty"`
	// LogLevel is a logrus level name; logs go to stderr
	LogLevel string `koanf:"log_level" yaml:"log_level,omitempty"`
}

// DefaultUserConfig returns a config with default values
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		WtpPath:  DefaultWtpPath,
		GitPath:  DefaultGitPath,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// GetConfigPath returns the full path to the user config file
func GetConfigPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDir, ConfigFile), nil
}

// Load reads the user config. Returns the default config if the file
// doesn't exist.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultUserConfig(), err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultUserConfig(), nil
		}
		return DefaultUserConfig(), err
	}

	return Parse(data)
}

// Parse decodes config YAML on top of the defaults
func Parse(data []byte) (*UserConfig, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return DefaultUserConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultUserConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return DefaultUserConfig(), fmt.Errorf("failed to decode config: %w", err)
	}

	// Empty values fall back to defaults
	defaults := DefaultUserConfig()
	for _, key := range ValidKeys() {
		if v, _ := cfg.Get(key); v == "" {
			def, _ := defaults.Get(key)
			_ = cfg.Set(key, def)
		}
	}

	return cfg, nil
}

// Save writes the user config.
// Uses atomic write (temp file + rename) to prevent corruption if interrupted.
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".config.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	success = true
	return nil
}

// TimeoutDuration returns the parsed timeout, or the default when the value
// does not parse or is not positive
func (c *UserConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// Get returns a config value as a string
func (c *UserConfig) Get(key string) (string, error) {
	switch key {
	case "wtp_path":
		return c.WtpPath, nil
	case "git_path":
		return c.GitPath, nil
	case "timeout":
		return c.Timeout, nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set sets a config value after validating it
func (c *UserConfig) Set(key, value string) error {
	switch key {
	case "wtp_path":
		c.WtpPath = value
	case "git_path":
		c.GitPath = value
	case "timeout":
		if value != "" {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", value, err)
			}
			if d <= 0 {
				return fmt.Errorf("invalid timeout %q: must be positive", value)
			}
		}
		c.Timeout = value
	case "log_level":
		if value != "" {
			if _, err := logrus.ParseLevel(value); err != nil {
				return fmt.Errorf("invalid log level %q: %w", value, err)
			}
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Unset resets a config value to its default
func (c *UserConfig) Unset(key string) error {
	def, err := DefaultUserConfig().Get(key)
	if err != nil {
		return err
	}
	return c.Set(key, def)
}

// ValidKeys returns the list of valid configuration keys
func ValidKeys() []string {
	keys := []string{"wtp_path", "git_path", "timeout", "log_level"}
	sort.Strings(keys)
	return keys
}
