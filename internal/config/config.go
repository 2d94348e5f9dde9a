// Package config handles configuration loading and management for the
// health butler. It supports XDG config paths, project-level overrides,
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the butler.
type Config struct {
	Anthropic    AnthropicConfig    `mapstructure:"anthropic"`
	Retry        RetryConfig        `mapstructure:"retry"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Storage      StorageConfig      `mapstructure:"storage"`
	TUI          TUIConfig          `mapstructure:"tui"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	// APIKey is the Anthropic API key. ANTHROPIC_API_KEY takes precedence.
	APIKey string `mapstructure:"api_key"`
	// Model is the model used for planning, synthesis, and workers.
	Model string `mapstructure:"model"`
	// UseAWSBedrock routes API calls through AWS Bedrock.
	UseAWSBedrock bool `mapstructure:"use_aws_bedrock"`
	// AWSRegion is the Bedrock region.
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile"`
}

// RetryConfig holds the retry schedule for worker calls.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries"`
	// InitialDelay is the sleep before the first retry.
	InitialDelay time.Duration `mapstructure:"initial_delay"`
	// BackoffFactor multiplies the delay after each retry.
	BackoffFactor float64 `mapstructure:"backoff_factor"`
}

// OrchestratorConfig holds orchestration behavior settings.
type OrchestratorConfig struct {
	// StepTimeout is the deadline applied to each worker call, including
	// its retries and backoff sleeps.
	StepTimeout time.Duration `mapstructure:"step_timeout"`
	// Apology is returned to the user when every delegation fails.
	Apology string `mapstructure:"apology"`
	// VocabularyPath points to an optional YAML routing-vocabulary file
	// overriding the built-in keyword sets.
	VocabularyPath string `mapstructure:"vocabulary_path"`
	// DisablePlanner skips the LLM planning path and always uses the
	// deterministic keyword classifier.
	DisablePlanner bool `mapstructure:"disable_planner"`
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DBPath is the SQLite database path. Empty uses the XDG data dir.
	DBPath string `mapstructure:"db_path"`
}

// TUIConfig holds chat TUI settings.
type TUIConfig struct {
	// ShowStatus renders orchestrator status updates in the transcript.
	ShowStatus bool `mapstructure:"show_status"`
}

// DefaultApology is returned when no delegation produced a usable result.
const DefaultApology = "I apologize, but I encountered an error processing your request. Please try again."

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
//  1. Environment variables (BUTLER_*, ANTHROPIC_API_KEY)
//  2. Project config (.butler.yaml in the current directory)
//  3. User config (~/.config/butler/config.yaml)
//  4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if project := findProjectConfig(); project != "" {
		pv := viper.New()
		pv.SetConfigFile(project)
		if err := pv.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(pv.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("BUTLER")
	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file, applying defaults
// for any missing values.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Watch reloads the config file at path whenever it changes and invokes
// onChange with the freshly parsed result. Parse failures keep the previous
// config and are reported through onError (which may be nil).
func Watch(path string, onChange func(*Config), onError func(error)) error {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.use_aws_bedrock", false)

	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.initial_delay", "1s")
	v.SetDefault("retry.backoff_factor", 2.0)

	v.SetDefault("orchestrator.step_timeout", "2m")
	v.SetDefault("orchestrator.apology", DefaultApology)
	v.SetDefault("orchestrator.vocabulary_path", "")
	v.SetDefault("orchestrator.disable_planner", false)

	v.SetDefault("storage.db_path", "")

	v.SetDefault("tui.show_status", true)
}

// Save writes the config to the user config file
// (~/.config/butler/config.yaml), creating the directory if needed.
func Save(cfg *Config) error {
	dir := userConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	out := map[string]any{
		"anthropic": map[string]any{
			"api_key":         cfg.Anthropic.APIKey,
			"model":           cfg.Anthropic.Model,
			"use_aws_bedrock": cfg.Anthropic.UseAWSBedrock,
			"aws_region":      cfg.Anthropic.AWSRegion,
			"aws_profile":     cfg.Anthropic.AWSProfile,
		},
		"retry": map[string]any{
			"max_retries":    cfg.Retry.MaxRetries,
			"initial_delay":  cfg.Retry.InitialDelay.String(),
			"backoff_factor": cfg.Retry.BackoffFactor,
		},
		"orchestrator": map[string]any{
			"step_timeout":    cfg.Orchestrator.StepTimeout.String(),
			"apology":         cfg.Orchestrator.Apology,
			"vocabulary_path": cfg.Orchestrator.VocabularyPath,
			"disable_planner": cfg.Orchestrator.DisablePlanner,
		},
		"storage": map[string]any{
			"db_path": cfg.Storage.DBPath,
		},
		"tui": map[string]any{
			"show_status": cfg.TUI.ShowStatus,
		},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ActiveConfigFile returns the config file with the highest file-level
// precedence in Load: the project .butler.yaml when present, otherwise the
// user config file when present, otherwise "". Callers use it to pick the
// file to watch for live reload.
func ActiveConfigFile() string {
	if project := findProjectConfig(); project != "" {
		return project
	}
	candidate := filepath.Join(userConfigDir(), "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

// userConfigDir returns the XDG config directory for the butler.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "butler")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "butler")
}

// findProjectConfig looks for .butler.yaml in the current directory.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(cwd, ".butler.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
