package orchestrator

import (
	"context"
	"log"
	"strings"

	"github.com/healthbutler/swarm/pkg/models"
)

// PlanCapability proposes a delegation plan from free text. Implementations
// return typed delegations already validated against the known worker IDs.
// Any error degrades silently to the deterministic classifier.
type PlanCapability interface {
	Plan(ctx context.Context, userText string, known []models.WorkerID) ([]models.Delegation, error)
}

// Planner decides the ordered delegation list for a request. The LLM
// capability is optional; the classifier is the guaranteed floor, so Plan
// never fails and never returns an empty list.
type Planner struct {
	capability PlanCapability
	classifier *Classifier
	known      []models.WorkerID
}

// NewPlanner creates a planner. capability may be nil to force
// classifier-only planning.
func NewPlanner(capability PlanCapability, classifier *Classifier, known []models.WorkerID) *Planner {
	return &Planner{capability: capability, classifier: classifier, known: known}
}

// Plan returns the delegation list for the user's text. Identity queries
// bypass the LLM entirely: routing them deterministically prevents the model
// from sending profile questions to the nutrition worker.
func (p *Planner) Plan(ctx context.Context, userText string, hasMedia bool) []models.Delegation {
	if p.classifier.isIdentityQuery(strings.ToLower(strings.TrimSpace(userText))) {
		return p.classifier.Classify(userText)
	}

	if p.capability != nil {
		planningInput := userText
		if hasMedia {
			planningInput = userText + " [image attached]"
		}

		delegations, err := p.capability.Plan(ctx, planningInput, p.known)
		if err == nil && len(delegations) > 0 {
			return delegations
		}
		if err != nil {
			log.Printf("[planner] capability failed, using keyword fallback: %v", err)
		}
	}

	return p.classifier.Classify(userText)
}
