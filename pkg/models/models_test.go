package models

import "testing"

func TestMessageKindValid(t *testing.T) {
	valid := []MessageKind{KindTask, KindResult, KindStatus}
	for _, k := range valid {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if MessageKind("query").Valid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestContextEntryConstructors(t *testing.T) {
	m := MediaEntry("/tmp/meal.jpg")
	if m.Kind != ContextMedia || m.Ref != "/tmp/meal.jpg" {
		t.Errorf("unexpected media entry: %+v", m)
	}

	s := SideEntry(map[string]string{"goal": "lose weight"})
	if s.Kind != ContextSide || s.Payload["goal"] != "lose weight" {
		t.Errorf("unexpected side entry: %+v", s)
	}

	p := PreviousResultEntry(WorkerNutrition, "~800 kcal")
	if p.Kind != ContextPreviousResult || p.Origin != WorkerNutrition || p.Content != "~800 kcal" {
		t.Errorf("unexpected previous-result entry: %+v", p)
	}
}

func TestExecutionResultSucceeded(t *testing.T) {
	r := &ExecutionResult{
		WorkerOutputs: []WorkerOutput{
			{Worker: WorkerNutrition, Result: "ok", Failed: false},
			{Worker: WorkerFitness, Result: "boom", Failed: true},
			{Worker: WorkerFitness, Result: "also ok", Failed: false},
		},
	}

	got := r.Succeeded()
	if len(got) != 2 {
		t.Fatalf("expected 2 successful outputs, got %d", len(got))
	}
	if got[0].Result != "ok" || got[1].Result != "also ok" {
		t.Errorf("successful outputs out of order: %+v", got)
	}
}
