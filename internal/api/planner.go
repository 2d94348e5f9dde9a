package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/healthbutler/swarm/pkg/models"
)

// plannerSystemPrompt steers the model toward a strict JSON delegation plan.
const plannerSystemPrompt = `You are the Coordinator for a personal health butler.
Your ONLY job is to analyze the user's message and decide which specialist worker(s) should handle it.

## Available workers

### nutrition
Handles: Food analysis, calorie counting, meal logging, dietary advice, macro tracking.
Route here when: the user mentions food, eating, meals, calories, macros, recipes, ingredients, diet plans, or attaches a food image.

### fitness
Handles: Exercise recommendations, workout plans, activity tracking, weight goals, body stats, and the user's saved profile.
Route here when: the user asks about exercise, workouts, weight goals, BMI, body measurements, steps, or their own profile details.

## Routing rules
1. FOOD or EATING -> "nutrition"
2. EXERCISE, BODY STATS, or FITNESS -> "fitness"
3. EATING plus a request for exercise advice -> BOTH: "nutrition" first, then "fitness"
4. The user's PROFILE or IDENTITY -> "fitness"
5. Truly ambiguous -> "nutrition"

Respond with ONLY a JSON object of the form:
{"delegations": [{"worker": "nutrition", "task": "..."}]}`

// plannedDelegation is the JSON structure returned by the model for one step.
type plannedDelegation struct {
	Worker string `json:"worker"`
	Task   string `json:"task"`
}

type plannerResponse struct {
	Delegations []plannedDelegation `json:"delegations"`
}

// Planner asks Claude for a delegation plan. It implements the
// orchestrator's plan capability; any failure here degrades silently to the
// deterministic classifier, so errors are returned untouched.
type Planner struct {
	client *Client
}

// NewPlanner creates a Claude-backed delegation planner.
func NewPlanner(client *Client) *Planner {
	return &Planner{client: client}
}

// Plan requests a structured delegation list for the user's text. Worker IDs
// not present in known are discarded; an all-unknown or empty plan is an error.
func (p *Planner) Plan(ctx context.Context, userText string, known []models.WorkerID) ([]models.Delegation, error) {
	prompt := fmt.Sprintf("Analyze the following user message and decide which worker(s) should handle it.\n\nUSER MESSAGE: %q\n\nReturn a JSON object with a \"delegations\" array.", userText)

	raw, err := p.client.Complete(ctx, plannerSystemPrompt, prompt, 1024)
	if err != nil {
		return nil, fmt.Errorf("plan request: %w", err)
	}

	return parsePlan(raw, userText, known)
}

// parsePlan extracts and validates the JSON plan from a model response,
// tolerating surrounding prose or markdown fences.
func parsePlan(response, userText string, known []models.WorkerID) ([]models.Delegation, error) {
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON object found in plan response (%d chars)", len(response))
	}

	var parsed plannerResponse
	if err := json.Unmarshal([]byte(response[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}

	knownSet := make(map[models.WorkerID]bool, len(known))
	for _, id := range known {
		knownSet[id] = true
	}

	var delegations []models.Delegation
	for _, d := range parsed.Delegations {
		worker := models.WorkerID(strings.ToLower(strings.TrimSpace(d.Worker)))
		if !knownSet[worker] {
			continue
		}
		task := d.Task
		if task == "" {
			task = userText
		}
		delegations = append(delegations, models.Delegation{Worker: worker, Task: task})
	}

	if len(delegations) == 0 {
		return nil, fmt.Errorf("plan contained no known workers")
	}
	return delegations, nil
}
