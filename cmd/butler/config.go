package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbutler/swarm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify butler configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/butler/config.yaml
Project-specific overrides can be placed in .butler.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("retry.max_retries: %d\n", cfg.Retry.MaxRetries)
	fmt.Printf("retry.initial_delay: %s\n", cfg.Retry.InitialDelay)
	fmt.Printf("retry.backoff_factor: %g\n", cfg.Retry.BackoffFactor)
	fmt.Printf("orchestrator.step_timeout: %s\n", cfg.Orchestrator.StepTimeout)
	fmt.Printf("orchestrator.vocabulary_path: %s\n", orDefault(cfg.Orchestrator.VocabularyPath, "(built-in)"))
	fmt.Printf("orchestrator.disable_planner: %t\n", cfg.Orchestrator.DisablePlanner)
	fmt.Printf("storage.db_path: %s\n", orDefault(cfg.Storage.DBPath, "(default)"))
	fmt.Printf("tui.show_status: %t\n", cfg.TUI.ShowStatus)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_aws_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseAWSBedrock), nil
	case "retry.max_retries":
		return strconv.Itoa(cfg.Retry.MaxRetries), nil
	case "retry.initial_delay":
		return cfg.Retry.InitialDelay.String(), nil
	case "retry.backoff_factor":
		return strconv.FormatFloat(cfg.Retry.BackoffFactor, 'g', -1, 64), nil
	case "orchestrator.step_timeout":
		return cfg.Orchestrator.StepTimeout.String(), nil
	case "orchestrator.vocabulary_path":
		return cfg.Orchestrator.VocabularyPath, nil
	case "orchestrator.disable_planner":
		return strconv.FormatBool(cfg.Orchestrator.DisablePlanner), nil
	case "storage.db_path":
		return cfg.Storage.DBPath, nil
	case "tui.show_status":
		return strconv.FormatBool(cfg.TUI.ShowStatus), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "anthropic.api_key":
		if err := config.ValidateAPIKey(value); err != nil {
			return err
		}
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_aws_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for use_aws_bedrock: %w", err)
		}
		cfg.Anthropic.UseAWSBedrock = b
	case "retry.max_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_retries: %w", err)
		}
		cfg.Retry.MaxRetries = n
	case "retry.initial_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for initial_delay: %w", err)
		}
		cfg.Retry.InitialDelay = d
	case "retry.backoff_factor":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for backoff_factor: %w", err)
		}
		cfg.Retry.BackoffFactor = f
	case "orchestrator.step_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for step_timeout: %w", err)
		}
		cfg.Orchestrator.StepTimeout = d
	case "orchestrator.vocabulary_path":
		cfg.Orchestrator.VocabularyPath = value
	case "orchestrator.disable_planner":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for disable_planner: %w", err)
		}
		cfg.Orchestrator.DisablePlanner = b
	case "storage.db_path":
		cfg.Storage.DBPath = value
	case "tui.show_status":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for show_status: %w", err)
		}
		cfg.TUI.ShowStatus = b
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
