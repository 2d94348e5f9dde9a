package worker

import (
	"context"

	"github.com/healthbutler/swarm/internal/api"
	"github.com/healthbutler/swarm/pkg/models"
)

const fitnessSystemPrompt = `You are an expert Fitness Coach and Wellness Assistant.

Your responsibilities:
1. Suggest post-meal activities to manage blood sugar and digestion.
2. Recommend specific exercises based on calculated calorie intake
   (e.g., "That burger was 800kcal, try a 30-min brisk walk").
3. Answer questions about the user's saved profile, goals, and preferences
   when that data appears in the context.
4. Motivate the user to stay active without being judgmental.

Keep your advice short, encouraging, and scientifically grounded. Adapt to
the user's profile: respect listed limitations and available equipment.`

// Fitness is the exercise-recommendation worker. It also serves profile and
// identity queries, answering from the profile data in its context.
type Fitness struct {
	client *api.Client
}

// NewFitness creates the fitness worker.
func NewFitness(client *api.Client) *Fitness {
	return &Fitness{client: client}
}

// ID implements Worker.
func (f *Fitness) ID() models.WorkerID { return models.WorkerFitness }

// MediaCapable implements Worker.
func (f *Fitness) MediaCapable() bool { return false }

// Execute produces fitness advice, using chained nutrition analysis and the
// user's profile from the context when present.
func (f *Fitness) Execute(ctx context.Context, task string, entries []models.ContextEntry) (string, error) {
	result, err := f.client.Complete(ctx, fitnessSystemPrompt, composePrompt(task, entries), 2048)
	if err != nil {
		return "", err
	}
	if result == "" {
		return "I couldn't come up with a recommendation for that. Could you tell me more about what you're looking for?", nil
	}
	return result, nil
}
