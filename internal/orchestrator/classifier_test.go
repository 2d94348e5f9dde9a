package orchestrator

import (
	"testing"

	"github.com/healthbutler/swarm/pkg/models"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultVocabulary())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassifyNeverEmpty(t *testing.T) {
	c := newTestClassifier(t)

	inputs := []string{
		"",
		"hello there",
		"what is the meaning of life?",
		"I ate lunch",
		"suggest a workout",
		"Who am I?",
	}
	for _, input := range inputs {
		if got := c.Classify(input); len(got) == 0 {
			t.Errorf("Classify(%q) returned an empty plan", input)
		}
	}
}

func TestClassifyFitnessOnly(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("I want a workout plan")
	if len(got) != 1 {
		t.Fatalf("expected 1 delegation, got %d: %+v", len(got), got)
	}
	if got[0].Worker != models.WorkerFitness {
		t.Errorf("expected fitness, got %s", got[0].Worker)
	}
	if got[0].Task != "I want a workout plan" {
		t.Errorf("task should be the raw text: %q", got[0].Task)
	}
}

func TestClassifyNutritionOnly(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("How many calories are in rice?")
	if len(got) != 1 || got[0].Worker != models.WorkerNutrition {
		t.Fatalf("expected single nutrition delegation: %+v", got)
	}
}

func TestClassifyIdentityQueries(t *testing.T) {
	c := newTestClassifier(t)

	queries := []string{
		"Who am I?",
		"whoami",
		"Show my profile",
		"What are my goals?",
		"my goals?",
		"What is my daily calorie target?",
	}
	for _, q := range queries {
		got := c.Classify(q)
		if len(got) != 1 {
			t.Errorf("Classify(%q) = %d delegations, want 1", q, len(got))
			continue
		}
		if got[0].Worker != models.WorkerFitness {
			t.Errorf("Classify(%q) routed to %s, want fitness", q, got[0].Worker)
		}
		if got[0].Task != identityTask {
			t.Errorf("Classify(%q) task = %q, want the fixed identity task", q, got[0].Task)
		}
	}
}

func TestClassifyIdentityBeatsKeywords(t *testing.T) {
	c := newTestClassifier(t)

	// Contains both "calorie" (nutrition) and "target" identity phrasing.
	got := c.Classify("what is my daily calorie target after my workout?")
	if len(got) != 1 {
		t.Fatalf("identity rule should win outright, got %+v", got)
	}
	if got[0].Worker != models.WorkerFitness || got[0].Task != identityTask {
		t.Errorf("identity query misrouted: %+v", got[0])
	}
}

func TestClassifyChainedMealThenExercise(t *testing.T) {
	c := newTestClassifier(t)

	input := "I just ate a 800 calorie lunch. What exercise should I do?"
	got := c.Classify(input)

	if len(got) != 2 {
		t.Fatalf("expected 2 delegations, got %d: %+v", len(got), got)
	}
	if got[0].Worker != models.WorkerNutrition || got[0].Task != input {
		t.Errorf("step 1 should be nutrition with the verbatim input: %+v", got[0])
	}
	if got[1].Worker != models.WorkerFitness || got[1].Task != chainFollowUpTask {
		t.Errorf("step 2 should be fitness with the fixed follow-up: %+v", got[1])
	}
}

func TestClassifyTransitionRequiresWholeWord(t *testing.T) {
	c := newTestClassifier(t)

	// "update" and "plate" contain "ate" but are not consumption
	// transitions; these must stay two independent delegations.
	inputs := []string{
		"Update my meal plan and my workout plan",
		"What protein goes on my plate before a gym session?",
	}
	for _, input := range inputs {
		got := c.Classify(input)
		if len(got) != 2 {
			t.Fatalf("Classify(%q) = %d delegations, want 2: %+v", input, len(got), got)
		}
		if got[1].Task != input {
			t.Errorf("Classify(%q) chained the fitness step: %+v", input, got[1])
		}
	}

	// A real consumption transition still chains.
	got := c.Classify("I ate pasta for dinner, what workout balances it?")
	if len(got) != 2 || got[1].Task != chainFollowUpTask {
		t.Errorf("whole-word transition should chain: %+v", got)
	}
}

func TestClassifyDualCategoryWithoutTransition(t *testing.T) {
	c := newTestClassifier(t)

	input := "Give me a high protein meal and a gym routine"
	got := c.Classify(input)

	if len(got) != 2 {
		t.Fatalf("expected 2 delegations, got %d: %+v", len(got), got)
	}
	if got[0].Worker != models.WorkerNutrition || got[1].Worker != models.WorkerFitness {
		t.Errorf("expected nutrition then fitness: %+v", got)
	}
	// Without a consumption transition both steps get the raw text.
	if got[0].Task != input || got[1].Task != input {
		t.Errorf("both steps should receive the raw text: %+v", got)
	}
}

func TestClassifyDefaultsToNutrition(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("tell me something interesting")
	if len(got) != 1 || got[0].Worker != models.WorkerNutrition {
		t.Fatalf("expected default nutrition delegation: %+v", got)
	}
}

func TestNewClassifierRejectsBadPattern(t *testing.T) {
	vocab := DefaultVocabulary()
	vocab.IdentityPatterns = []string{`([unclosed`}

	if _, err := NewClassifier(vocab); err == nil {
		t.Error("expected error for invalid identity pattern")
	}
}
