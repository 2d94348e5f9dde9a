package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/healthbutler/swarm/pkg/models"
)

// recordingPlan captures its input and returns a scripted plan or error.
type recordingPlan struct {
	delegations []models.Delegation
	err         error
	input       string
	calls       int
}

func (r *recordingPlan) Plan(ctx context.Context, userText string, known []models.WorkerID) ([]models.Delegation, error) {
	r.calls++
	r.input = userText
	return r.delegations, r.err
}

var knownWorkers = []models.WorkerID{models.WorkerFitness, models.WorkerNutrition}

func TestPlanUsesCapability(t *testing.T) {
	cap := &recordingPlan{delegations: []models.Delegation{
		{Worker: models.WorkerFitness, Task: "suggest a workout"},
	}}
	p := NewPlanner(cap, newTestClassifier(t), knownWorkers)

	got := p.Plan(context.Background(), "suggest a workout", false)
	if len(got) != 1 || got[0].Worker != models.WorkerFitness {
		t.Fatalf("capability plan should be used: %+v", got)
	}
	if cap.input != "suggest a workout" {
		t.Errorf("capability received %q", cap.input)
	}
}

func TestPlanAnnotatesMedia(t *testing.T) {
	cap := &recordingPlan{delegations: []models.Delegation{
		{Worker: models.WorkerNutrition, Task: "analyze the photo"},
	}}
	p := NewPlanner(cap, newTestClassifier(t), knownWorkers)

	p.Plan(context.Background(), "what is this meal?", true)
	if cap.input != "what is this meal? [image attached]" {
		t.Errorf("media requests should be annotated for planning: %q", cap.input)
	}
}

func TestPlanFallsBackOnCapabilityError(t *testing.T) {
	cap := &recordingPlan{err: errors.New("api unavailable")}
	p := NewPlanner(cap, newTestClassifier(t), knownWorkers)

	got := p.Plan(context.Background(), "I want a workout plan", false)
	if len(got) != 1 || got[0].Worker != models.WorkerFitness {
		t.Fatalf("fallback should classify deterministically: %+v", got)
	}
	if got[0].Task != "I want a workout plan" {
		t.Errorf("fallback task should be the raw text: %q", got[0].Task)
	}
}

func TestPlanFallsBackOnEmptyCapabilityPlan(t *testing.T) {
	cap := &recordingPlan{}
	p := NewPlanner(cap, newTestClassifier(t), knownWorkers)

	got := p.Plan(context.Background(), "How many calories are in rice?", false)
	if len(got) != 1 || got[0].Worker != models.WorkerNutrition {
		t.Fatalf("empty capability plan should fall back: %+v", got)
	}
}

func TestPlanIdentityBypassesCapability(t *testing.T) {
	cap := &recordingPlan{delegations: []models.Delegation{
		{Worker: models.WorkerNutrition, Task: "should never be used"},
	}}
	p := NewPlanner(cap, newTestClassifier(t), knownWorkers)

	got := p.Plan(context.Background(), "Who am I?", false)
	if cap.calls != 0 {
		t.Error("identity queries must not reach the planning capability")
	}
	if len(got) != 1 || got[0].Worker != models.WorkerFitness || got[0].Task != identityTask {
		t.Fatalf("identity query misplanned: %+v", got)
	}
}

func TestPlanNilCapabilityClassifierOnly(t *testing.T) {
	p := NewPlanner(nil, newTestClassifier(t), knownWorkers)

	got := p.Plan(context.Background(), "what should I eat for dinner?", false)
	if len(got) != 1 || got[0].Worker != models.WorkerNutrition {
		t.Fatalf("classifier-only plan: %+v", got)
	}
}
