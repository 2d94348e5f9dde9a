package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ChatApp is the main model for chat mode. It shows the conversation
// transcript in a viewport with an input field below; while a request is in
// flight the input is replaced by a spinner and the latest status line.
type ChatApp struct {
	viewport   viewport.Model
	inputField *InputField
	spinner    spinner.Model

	transcript []string
	waiting    bool
	status     string
	width      int
	height     int
	ready      bool
	quitting   bool

	// Callback for when a query is submitted
	onSubmit func(text string)
}

// NewChatApp creates a new ChatApp.
func NewChatApp() *ChatApp {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle

	return &ChatApp{
		inputField: NewInputField(),
		spinner:    sp,
		transcript: []string{butlerLabelStyle.Render("Butler: ") + "Hi! Ask me about meals, workouts, or your profile."},
	}
}

// SetSubmitHandler sets the callback for query submissions. The handler must
// not block: run the request in a goroutine and deliver the outcome with
// program.Send(ResponseMsg{...}).
func (a *ChatApp) SetSubmitHandler(handler func(text string)) {
	a.onSubmit = handler
}

// Init implements tea.Model.
func (a *ChatApp) Init() tea.Cmd {
	return a.inputField.Focus()
}

// Update implements tea.Model.
func (a *ChatApp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			a.quitting = true
			return a, tea.Quit

		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd

		default:
			if a.waiting {
				// Input is locked until the response arrives.
				return a, nil
			}
			var cmd tea.Cmd
			a.inputField, cmd = a.inputField.Update(msg)
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case QuerySubmittedMsg:
		a.appendLine(userLabelStyle.Render("You: ") + msg.Text)
		a.waiting = true
		a.status = "Thinking..."
		a.inputField.Blur()
		if a.onSubmit != nil {
			a.onSubmit(msg.Text)
		}
		return a, a.spinner.Tick

	case StatusMsg:
		if a.waiting {
			a.status = msg.Text
		}
		return a, nil

	case ResponseMsg:
		a.waiting = false
		a.status = ""
		if msg.Err != nil {
			a.appendLine(errorStyle.Render("Error: " + msg.Err.Error()))
		} else if msg.Result != nil {
			a.appendLine(butlerLabelStyle.Render("Butler: ") + msg.Result.Response)
		}
		return a, a.inputField.Focus()

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	return a, nil
}

// appendLine adds a transcript line and keeps the viewport pinned to the end.
func (a *ChatApp) appendLine(line string) {
	a.transcript = append(a.transcript, line)
	if a.ready {
		a.viewport.SetContent(strings.Join(a.transcript, "\n\n"))
		a.viewport.GotoBottom()
	}
}

// updateSizes updates the sizes of child components based on terminal size.
func (a *ChatApp) updateSizes() {
	inputHeight := 3
	viewportHeight := a.height - inputHeight - 1

	if !a.ready {
		a.viewport = viewport.New(a.width, viewportHeight)
		a.ready = true
	} else {
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
	}
	a.viewport.SetContent(strings.Join(a.transcript, "\n\n"))
	a.viewport.GotoBottom()

	a.inputField.SetWidth(a.width)
}

// View implements tea.Model.
func (a *ChatApp) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}
	if !a.ready {
		return "Loading..."
	}

	var bottom string
	if a.waiting {
		bottom = inputBoxStyle.Width(a.width - 2).Render(
			a.spinner.View() + " " + statusStyle.Render(a.status))
	} else {
		bottom = a.inputField.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.viewport.View(), bottom)
}

// NewChatProgram creates a new Bubbletea program for chat mode.
func NewChatProgram() (*tea.Program, *ChatApp) {
	app := NewChatApp()
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}
