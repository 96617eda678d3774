// Package config provides configuration management for flowsync.
// It supports YAML configuration files, environment variables, and sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klauern/flowsync/internal/reconcile"
	"github.com/klauern/flowsync/internal/util"
)

// Config represents the complete flowsync configuration.
type Config struct {
	// Plan configures default planning behavior
	Plan PlanConfig `yaml:"plan"`

	// Prefixes configures default per-side name prefix remapping
	Prefixes PrefixesConfig `yaml:"prefixes"`

	// Output configures display preferences
	Output OutputConfig `yaml:"output"`
}

// PlanConfig holds planning settings.
type PlanConfig struct {
	// DuplicatePolicy is how duplicate names within a category are handled
	// (reject or first-wins)
	DuplicatePolicy string `yaml:"duplicate_policy"`
	// ForceEncoding skips the startup byte-encoding precondition check
	ForceEncoding bool `yaml:"force_encoding"`
	// Progress enables the category progress bar
	Progress bool `yaml:"progress"`
}

// PrefixesConfig holds default prefix remap pairs. CLI flags override these.
type PrefixesConfig struct {
	// LambdaSource is the lambda function-name prefix on the source side
	LambdaSource string `yaml:"lambda_source,omitempty"`
	// LambdaTarget is the lambda function-name prefix on the target side
	LambdaTarget string `yaml:"lambda_target,omitempty"`
	// BotSource is the bot-name prefix on the source side
	BotSource string `yaml:"bot_source,omitempty"`
	// BotTarget is the bot-name prefix on the target side
	BotTarget string `yaml:"bot_target,omitempty"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, always, never)
	Color string `yaml:"color"`
	// Verbose enables verbose output
	Verbose bool `yaml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Plan: PlanConfig{
			DuplicatePolicy: string(reconcile.DuplicateReject),
			ForceEncoding:   false,
			Progress:        true,
		},
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
	}
}

// configFileName is the name of the config file.
const configFileName = "config.yaml"

// FilePath returns the path to the config file.
func FilePath() string {
	return filepath.Join(util.FlowsyncConfigPath(), configFileName)
}

// Load loads the configuration from file, merging with defaults.
// If the config file doesn't exist, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	configPath := FilePath()
	// #nosec G304 - configPath is constructed from trusted config directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file, use defaults with environment overrides
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML over defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// Save writes the configuration to the config file.
func (c *Config) Save() error {
	return c.SaveToPath(FilePath())
}

// SaveToPath writes the configuration to a specific path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// applyEnvironment applies environment variable overrides.
// Environment variables follow the pattern FLOWSYNC_<SECTION>_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("FLOWSYNC_PLAN_DUPLICATE_POLICY"); v != "" {
		c.Plan.DuplicatePolicy = v
	}
	if v := os.Getenv("FLOWSYNC_PLAN_FORCE_ENCODING"); v != "" {
		c.Plan.ForceEncoding = parseBool(v)
	}
	if v := os.Getenv("FLOWSYNC_PLAN_PROGRESS"); v != "" {
		c.Plan.Progress = parseBool(v)
	}

	if v := os.Getenv("FLOWSYNC_PREFIX_LAMBDA_SOURCE"); v != "" {
		c.Prefixes.LambdaSource = v
	}
	if v := os.Getenv("FLOWSYNC_PREFIX_LAMBDA_TARGET"); v != "" {
		c.Prefixes.LambdaTarget = v
	}
	if v := os.Getenv("FLOWSYNC_PREFIX_BOT_SOURCE"); v != "" {
		c.Prefixes.BotSource = v
	}
	if v := os.Getenv("FLOWSYNC_PREFIX_BOT_TARGET"); v != "" {
		c.Prefixes.BotTarget = v
	}

	if v := os.Getenv("FLOWSYNC_OUTPUT_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("FLOWSYNC_OUTPUT_VERBOSE"); v != "" {
		c.Output.Verbose = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// GetDuplicatePolicy returns the duplicate policy from config, validating it.
func (c *Config) GetDuplicatePolicy() reconcile.DuplicatePolicy {
	policy := reconcile.DuplicatePolicy(c.Plan.DuplicatePolicy)
	if policy.IsValid() {
		return policy
	}
	return reconcile.DuplicateReject
}

// Exists returns true if a config file exists.
func Exists() bool {
	_, err := os.Stat(FilePath())
	return err == nil
}
