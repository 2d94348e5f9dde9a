package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/healthbutler/swarm/pkg/models"
)

func sizedChatApp() *ChatApp {
	app := NewChatApp()
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app
}

func TestChatSubmitLocksInputAndInvokesHandler(t *testing.T) {
	app := sizedChatApp()

	var submitted string
	app.SetSubmitHandler(func(text string) { submitted = text })

	app.Update(QuerySubmittedMsg{Text: "I ate lunch"})

	if submitted != "I ate lunch" {
		t.Errorf("handler received %q", submitted)
	}
	if !app.waiting {
		t.Error("app should be waiting after submission")
	}
	if !transcriptContains(app, "I ate lunch") {
		t.Error("user's query should appear in the transcript")
	}
}

func TestChatStatusUpdatesWhileWaiting(t *testing.T) {
	app := sizedChatApp()
	app.SetSubmitHandler(func(string) {})

	app.Update(QuerySubmittedMsg{Text: "hello"})
	app.Update(StatusMsg{Text: "Routing to nutrition (step 1/1)..."})

	if app.status != "Routing to nutrition (step 1/1)..." {
		t.Errorf("status = %q", app.status)
	}

	// Status messages after the response must not resurrect the spinner line.
	app.Update(ResponseMsg{Result: &models.ExecutionResult{Response: "done"}})
	app.Update(StatusMsg{Text: "stale"})
	if app.status != "" {
		t.Errorf("stale status applied: %q", app.status)
	}
}

func TestChatResponseUnlocksAndAppends(t *testing.T) {
	app := sizedChatApp()
	app.SetSubmitHandler(func(string) {})

	app.Update(QuerySubmittedMsg{Text: "hello"})
	app.Update(ResponseMsg{Result: &models.ExecutionResult{Response: "Try a brisk walk."}})

	if app.waiting {
		t.Error("app should accept input again after the response")
	}
	if !transcriptContains(app, "Try a brisk walk.") {
		t.Error("response should appear in the transcript")
	}
}

func TestChatResponseError(t *testing.T) {
	app := sizedChatApp()
	app.SetSubmitHandler(func(string) {})

	app.Update(QuerySubmittedMsg{Text: "hello"})
	app.Update(ResponseMsg{Err: errors.New("context canceled")})

	if app.waiting {
		t.Error("errors should still unlock the input")
	}
	if !transcriptContains(app, "context canceled") {
		t.Error("error should appear in the transcript")
	}
}

func TestChatKeysIgnoredWhileWaiting(t *testing.T) {
	app := sizedChatApp()
	app.SetSubmitHandler(func(string) {})
	app.Update(QuerySubmittedMsg{Text: "hello"})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if got := app.inputField.input.Value(); got != "" {
		t.Errorf("input accepted text while waiting: %q", got)
	}
}

func TestChatQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		app := sizedChatApp()
		_, cmd := app.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Errorf("key %v should quit", key)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %v produced %T, want tea.QuitMsg", key, cmd())
		}
	}
}

func TestInputFieldSubmit(t *testing.T) {
	f := NewInputField()
	f.input.SetValue("  what should I eat?  ")

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with text should emit a submission")
	}

	msg, ok := cmd().(QuerySubmittedMsg)
	if !ok {
		t.Fatalf("got %T, want QuerySubmittedMsg", cmd())
	}
	if msg.Text != "what should I eat?" {
		t.Errorf("submitted text = %q", msg.Text)
	}
	if f.input.Value() != "" {
		t.Error("input should be cleared after submit")
	}
}

func TestInputFieldIgnoresEmptySubmit(t *testing.T) {
	f := NewInputField()
	f.input.SetValue("   ")

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		if _, ok := cmd().(QuerySubmittedMsg); ok {
			t.Error("blank input must not be submitted")
		}
	}
}

func transcriptContains(app *ChatApp, s string) bool {
	for _, line := range app.transcript {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
