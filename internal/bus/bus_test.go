package bus

import (
	"testing"
	"time"

	"github.com/healthbutler/swarm/pkg/models"
)

func TestSendAppendsOneMessage(t *testing.T) {
	b := New()

	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, "hello")

	msgs := b.AllMessages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	last := msgs[0]
	if last.From != models.ParticipantUser || last.To != models.ParticipantSystem {
		t.Errorf("unexpected participants: %+v", last)
	}
	if last.Kind != models.KindTask || last.Content != "hello" {
		t.Errorf("unexpected kind/content: %+v", last)
	}
	if last.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestMessagesKeepInsertionOrder(t *testing.T) {
	b := New()
	// Freeze the clock so identical timestamps can't mask reordering.
	b.now = func() time.Time { return time.Unix(100, 0) }

	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, "first")
	b.Send(models.ParticipantSystem, "nutrition", models.KindTask, "second")
	b.Send("nutrition", models.ParticipantSystem, models.KindResult, "third")

	msgs := b.AllMessages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Content != want {
			t.Errorf("message %d: got %q, want %q", i, msgs[i].Content, want)
		}
	}
}

func TestAllMessagesIsDefensiveCopy(t *testing.T) {
	b := New()
	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, "original")

	first := b.AllMessages()
	first[0].Content = "mutated"
	first = append(first, models.Message{Content: "extra"})
	_ = first

	second := b.AllMessages()
	if len(second) != 1 {
		t.Fatalf("expected 1 message after external mutation, got %d", len(second))
	}
	if second[0].Content != "original" {
		t.Errorf("internal state was mutated: %q", second[0].Content)
	}
}

func TestContextForFiltersByParticipant(t *testing.T) {
	b := New()
	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, "req")
	b.Send(models.ParticipantSystem, "nutrition", models.KindTask, "analyze")
	b.Send("nutrition", models.ParticipantSystem, models.KindResult, "done")
	b.Send(models.ParticipantSystem, "fitness", models.KindTask, "suggest")

	got := b.ContextFor("nutrition")
	if len(got) != 2 {
		t.Fatalf("expected 2 messages for nutrition, got %d", len(got))
	}
	if got[0].Content != "analyze" || got[1].Content != "done" {
		t.Errorf("wrong messages: %+v", got)
	}
}

func TestStatusUpdates(t *testing.T) {
	b := New()
	b.Send(models.ParticipantCoordinator, models.ParticipantSystem, models.KindStatus, "planning")
	b.Send(models.ParticipantSystem, "fitness", models.KindTask, "suggest")
	b.Send(models.ParticipantCoordinator, models.ParticipantSystem, models.KindStatus, "synthesizing")

	got := b.StatusUpdates()
	if len(got) != 2 {
		t.Fatalf("expected 2 status updates, got %d", len(got))
	}
	if got[0].Content != "planning" || got[1].Content != "synthesizing" {
		t.Errorf("wrong status updates: %+v", got)
	}
}

func TestClear(t *testing.T) {
	b := New()
	b.Send(models.ParticipantUser, models.ParticipantSystem, models.KindTask, "req")
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty bus after Clear, got %d messages", b.Len())
	}
}
