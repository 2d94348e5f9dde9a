package main

import (
	"errors"
	"testing"

	"github.com/healthbutler/swarm/internal/config"
)

func TestBuildOrchestratorResolvesConfiguredKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := &config.Config{}
	cfg.Anthropic.APIKey = "sk-ant-REDACTED"
	cfg.Anthropic.Model = "claude-sonnet-4-20250514"
	cfg.Orchestrator.Apology = config.DefaultApology

	orch, client, err := buildOrchestrator(cfg, nil)
	if err != nil {
		t.Fatalf("buildOrchestrator: %v", err)
	}
	if orch == nil || client == nil {
		t.Fatal("expected orchestrator and client")
	}
}

func TestBuildOrchestratorRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := &config.Config{}
	cfg.Anthropic.Model = "claude-sonnet-4-20250514"

	_, _, err := buildOrchestrator(cfg, nil)
	if !errors.Is(err, config.ErrNoAPIKey) {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}
