package main

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/healthbutler/swarm/internal/api"
	"github.com/healthbutler/swarm/internal/config"
	"github.com/healthbutler/swarm/internal/orchestrator"
	"github.com/healthbutler/swarm/internal/retry"
	"github.com/healthbutler/swarm/internal/state"
	"github.com/healthbutler/swarm/internal/worker"
)

// buildOrchestrator assembles the full delegation pipeline from config:
// API client, specialist workers, planner with keyword fallback, and
// synthesizer. onStatus may be nil.
func buildOrchestrator(cfg *config.Config, onStatus func(string)) (*orchestrator.Orchestrator, *api.Client, error) {
	clientCfg := api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	}
	if !cfg.Anthropic.UseAWSBedrock {
		key, err := config.GetAPIKey(cfg)
		if err != nil {
			return nil, nil, err
		}
		clientCfg.APIKey = key
	}

	client, err := api.NewClient(clientCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w", err)
	}

	registry := worker.NewRegistry(
		worker.NewNutrition(client),
		worker.NewFitness(client),
	)

	vocab := orchestrator.DefaultVocabulary()
	if cfg.Orchestrator.VocabularyPath != "" {
		vocab, err = orchestrator.LoadVocabulary(cfg.Orchestrator.VocabularyPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load vocabulary: %w", err)
		}
	}
	classifier, err := orchestrator.NewClassifier(vocab)
	if err != nil {
		return nil, nil, fmt.Errorf("build classifier: %w", err)
	}

	var planCap orchestrator.PlanCapability
	if !cfg.Orchestrator.DisablePlanner {
		planCap = api.NewPlanner(client)
	}

	apology := cfg.Orchestrator.Apology
	if apology == "" {
		apology = config.DefaultApology
	}

	orch := orchestrator.New(orchestrator.Config{
		Registry:    registry,
		Planner:     orchestrator.NewPlanner(planCap, classifier, registry.IDs()),
		Synthesizer: orchestrator.NewSynthesizer(api.NewSynthesizer(client), apology),
		Policy: retry.Policy{
			MaxRetries:    cfg.Retry.MaxRetries,
			InitialDelay:  cfg.Retry.InitialDelay,
			BackoffFactor: cfg.Retry.BackoffFactor,
		},
		Retryable:   api.Retryable,
		StepTimeout: cfg.Orchestrator.StepTimeout,
		OnStatus:    onStatus,
	})

	return orch, client, nil
}

// openStore opens and migrates the butler database.
func openStore(cfg *config.Config) (*state.DB, error) {
	path := cfg.Storage.DBPath
	if path == "" {
		path = state.DefaultDBPath()
	}

	db, err := state.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// profileSideContext loads the saved profile as worker side context.
// A missing profile is not an error; workers just get no profile fields.
func profileSideContext(store state.ProfileStore) map[string]string {
	profile, err := store.GetProfile()
	if err != nil || profile == nil {
		return nil
	}
	return profile.SideContext()
}

// buildRequest packages one user question with the saved profile attached
// as side context.
func buildRequest(question, mediaRef string, store state.ProfileStore) orchestrator.Request {
	return orchestrator.Request{
		UserInput:   question,
		MediaRef:    mediaRef,
		SideContext: profileSideContext(store),
	}
}
