package worker

import (
	"context"

	"github.com/healthbutler/swarm/internal/api"
	"github.com/healthbutler/swarm/pkg/models"
)

const nutritionSystemPrompt = `You are an expert Nutritionist and Dietitian AI.

Your responsibilities:
1. Identify food items from descriptions or attached meal images.
2. Estimate calories and macronutrients (protein, carbs, fat) with high accuracy.
3. Provide a breakdown of ingredients when possible.
4. Offer brief, actionable health tips based on the food content.

When you don't know the exact nutrition, use your general knowledge but say it is an estimate.
If the context includes prior analysis or user preferences, prioritize that data.`

// Nutrition is the food-analysis worker. It is the only media-capable
// worker: attached meal images are passed through as media references.
type Nutrition struct {
	client *api.Client
}

// NewNutrition creates the nutrition worker.
func NewNutrition(client *api.Client) *Nutrition {
	return &Nutrition{client: client}
}

// ID implements Worker.
func (n *Nutrition) ID() models.WorkerID { return models.WorkerNutrition }

// MediaCapable implements Worker.
func (n *Nutrition) MediaCapable() bool { return true }

// Execute analyzes the described (or attached) meal. Empty model output is
// a soft failure reported as a result string, not an error.
func (n *Nutrition) Execute(ctx context.Context, task string, entries []models.ContextEntry) (string, error) {
	result, err := n.client.Complete(ctx, nutritionSystemPrompt, composePrompt(task, entries), 2048)
	if err != nil {
		return "", err
	}
	if result == "" {
		return "I couldn't produce a nutrition analysis for that. Could you describe the meal in more detail?", nil
	}
	return result, nil
}
