package worker

import (
	"context"
	"strings"
	"testing"

	"github.com/healthbutler/swarm/pkg/models"
)

// stub satisfies Worker for registry tests.
type stub struct {
	id models.WorkerID
}

func (s stub) ID() models.WorkerID { return s.id }
func (s stub) MediaCapable() bool  { return false }
func (s stub) Execute(ctx context.Context, task string, entries []models.ContextEntry) (string, error) {
	return "", nil
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(stub{id: "nutrition"}, stub{id: "fitness"})

	w, err := r.Lookup("nutrition")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if w.ID() != "nutrition" {
		t.Errorf("wrong worker: %s", w.ID())
	}

	if _, err := r.Lookup("astrology"); err == nil {
		t.Error("expected error for unknown worker")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	r := NewRegistry(stub{id: "nutrition"}, stub{id: "fitness"}, stub{id: "aerobics"})

	ids := r.IDs()
	want := []models.WorkerID{"aerobics", "fitness", "nutrition"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	r := NewRegistry(stub{id: "fitness"})
	r.Register(stub{id: "fitness"})

	if len(r.IDs()) != 1 {
		t.Errorf("re-registering should not duplicate: %v", r.IDs())
	}
}

func TestRenderContextOrderAndContent(t *testing.T) {
	entries := []models.ContextEntry{
		models.MediaEntry("/tmp/meal.jpg"),
		models.SideEntry(map[string]string{"goal": "lose weight", "age": "34"}),
		models.PreviousResultEntry(models.WorkerNutrition, "Roughly 800 kcal."),
	}

	rendered := renderContext(entries)

	mediaIdx := strings.Index(rendered, "/tmp/meal.jpg")
	sideIdx := strings.Index(rendered, "goal: lose weight")
	prevIdx := strings.Index(rendered, "Roughly 800 kcal.")
	if mediaIdx == -1 || sideIdx == -1 || prevIdx == -1 {
		t.Fatalf("missing entries in rendered context:\n%s", rendered)
	}
	if !(mediaIdx < sideIdx && sideIdx < prevIdx) {
		t.Errorf("entries rendered out of order:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Nutrition analysis") {
		t.Errorf("previous result should be labeled with its origin:\n%s", rendered)
	}
	// Side-context keys are sorted.
	if !(strings.Index(rendered, "age: 34") < sideIdx) {
		t.Errorf("side-context keys not sorted:\n%s", rendered)
	}
}

func TestComposePromptWithoutContext(t *testing.T) {
	if got := composePrompt("just the task", nil); got != "just the task" {
		t.Errorf("composePrompt without context = %q", got)
	}
}
