package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/cli/formatter"
	"github.com/localmate/localmate/internal/domain"
)

// transcriptLoadedMsg carries the cached transcript at startup.
type transcriptLoadedMsg struct {
	messages []*domain.Message
	err      error
}

// chatReplyMsg carries the assistant's answer to one turn.
type chatReplyMsg struct {
	result *api.ChatResult
	err    error
}

// placeAddedMsg signals the outcome of adding a suggested place.
type placeAddedMsg struct {
	name string
	err  error
}

// chatView is the conversational discovery screen: a transcript viewport,
// an input line, and number shortcuts to push suggested places into the plan.
type chatView struct {
	app       *App
	sessionID string

	input       textinput.Model
	vp          viewport.Model
	messages    []*domain.Message
	suggestions []domain.Place

	waiting bool
	status  string
	err     error
	width   int
	height  int
	ready   bool
}

func newChatView(app *App, sessionID string) *chatView {
	ti := textinput.New()
	ti.Placeholder = "Ask about places to visit..."
	ti.Focus()
	ti.CharLimit = 500

	return &chatView{
		app:       app,
		sessionID: sessionID,
		input:     ti,
	}
}

func (v *chatView) Init() tea.Cmd {
	app := v.app
	sessionID := v.sessionID
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg {
			msgs, err := app.Chat.Transcript(context.Background(), sessionID)
			return transcriptLoadedMsg{messages: msgs, err: err}
		},
	)
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		vpHeight := msg.Height - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !v.ready {
			v.vp = viewport.New(msg.Width, vpHeight)
			v.ready = true
		} else {
			v.vp.Width = msg.Width
			v.vp.Height = vpHeight
		}
		v.input.Width = msg.Width - 4
		v.renderTranscript()
		return v, nil

	case transcriptLoadedMsg:
		v.err = msg.err
		v.messages = msg.messages
		v.renderTranscript()
		return v, nil

	case chatReplyMsg:
		v.waiting = false
		v.err = msg.err
		if msg.err == nil {
			v.suggestions = msg.result.Places
		}
		return v, v.reloadTranscript()

	case placeAddedMsg:
		v.err = msg.err
		if msg.err == nil {
			v.status = fmt.Sprintf("Added %s to the plan", msg.name)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return v, tea.Quit

	case "enter":
		text := strings.TrimSpace(v.input.Value())
		if text == "" || v.waiting {
			return v, nil
		}
		v.input.Reset()
		v.waiting = true
		v.status = ""
		v.suggestions = nil
		app := v.app
		sessionID := v.sessionID
		return v, func() tea.Msg {
			res, err := app.Chat.Send(context.Background(), sessionID, text)
			return chatReplyMsg{result: res, err: err}
		}

	case "pgup", "pgdown":
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}

	// Number shortcuts add suggested places while the input is empty.
	if v.input.Value() == "" && len(v.suggestions) > 0 {
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(v.suggestions) {
			return v, v.addSuggestion(v.suggestions[n-1])
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) addSuggestion(place domain.Place) tea.Cmd {
	app := v.app
	if app.Plan.IsInPlan(place.ID) {
		v.status = fmt.Sprintf("%s is already in the plan", place.Name)
		return nil
	}
	return func() tea.Msg {
		_, err := app.Plan.AddItem(context.Background(), place)
		return placeAddedMsg{name: place.Name, err: err}
	}
}

func (v *chatView) reloadTranscript() tea.Cmd {
	app := v.app
	sessionID := v.sessionID
	return func() tea.Msg {
		msgs, err := app.Chat.Transcript(context.Background(), sessionID)
		return transcriptLoadedMsg{messages: msgs, err: err}
	}
}

func (v *chatView) renderTranscript() {
	if !v.ready {
		return
	}
	var b strings.Builder
	for _, m := range v.messages {
		switch m.Role {
		case domain.RoleUser:
			b.WriteString(formatter.StyleBlue.Render("You: "))
		default:
			b.WriteString(formatter.StyleGreen.Render("Mate: "))
		}
		b.WriteString(formatter.StyleFg.Render(m.Content))
		b.WriteString("\n\n")
	}
	v.vp.SetContent(b.String())
	v.vp.GotoBottom()
}

func (v *chatView) View() string {
	if !v.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(v.vp.View())
	b.WriteString("\n")

	if len(v.suggestions) > 0 {
		names := make([]string, len(v.suggestions))
		for i, p := range v.suggestions {
			mark := ""
			if v.app.Plan.IsInPlan(p.ID) {
				mark = formatter.StyleGreen.Render("✓")
			}
			names[i] = fmt.Sprintf("[%d] %s%s", i+1, p.Name, mark)
		}
		b.WriteString(formatter.StylePurple.Render(strings.Join(names, "  ")))
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(formatter.StyleDim.Render("thinking..."))
	} else if v.err != nil {
		b.WriteString(formatter.StyleYellow.Render("warning: " + v.err.Error()))
	} else if v.status != "" {
		b.WriteString(formatter.StyleGreen.Render(v.status))
	}
	b.WriteString("\n")

	b.WriteString(v.input.View())
	b.WriteString("\n")
	b.WriteString(formatter.StyleDim.Render("enter send · 1-9 add suggestion · esc quit"))
	return b.String()
}
