package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/localmate/localmate/internal/cli/formatter"
	"github.com/localmate/localmate/internal/domain"
)

// planSyncedMsg signals that a store mutation finished its backend round
// trip and the authoritative state can be re-read.
type planSyncedMsg struct {
	err error
}

// optimizeDoneMsg carries the distance saved by a successful optimize call.
type optimizeDoneMsg struct {
	savedKm float64
	err     error
}

// planView is the interactive itinerary editor. Reorder and remove update
// the rendered list immediately; the backend round trip runs behind the
// gesture and the view re-reads the store once it settles.
type planView struct {
	app *App

	items  []domain.PlanItem
	cursor int

	confirmClear bool
	status       string
	err          error
	width        int
	height       int
}

func newPlanView(app *App) *planView {
	return &planView{
		app:   app,
		items: app.Plan.Items(),
	}
}

func (v *planView) Init() tea.Cmd {
	return v.refreshCmd()
}

func (v *planView) refreshCmd() tea.Cmd {
	app := v.app
	return func() tea.Msg {
		return planSyncedMsg{err: app.Plan.Refresh(context.Background())}
	}
}

func (v *planView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case planSyncedMsg:
		v.err = msg.err
		v.items = v.app.Plan.Items()
		v.clampCursor()
		return v, nil

	case optimizeDoneMsg:
		v.err = msg.err
		v.items = v.app.Plan.Items()
		v.clampCursor()
		if msg.err == nil {
			v.status = fmt.Sprintf("Optimized! Saved %.1f km", msg.savedKm)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *planView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.confirmClear {
		v.confirmClear = false
		if msg.String() == "y" {
			v.status = "Clearing plan..."
			app := v.app
			return v, func() tea.Msg {
				return planSyncedMsg{err: app.Plan.ClearPlan(context.Background())}
			}
		}
		v.status = "Kept the plan."
		return v, nil
	}

	v.status = ""

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return v, tea.Quit

	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}

	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}

	case "shift+up", "K":
		return v.moveCursorItem(-1)

	case "shift+down", "J":
		return v.moveCursorItem(1)

	case "d", "x":
		return v.removeCursorItem()

	case "o":
		if len(v.items) < 2 {
			v.status = "Need at least two stops to optimize."
			return v, nil
		}
		app := v.app
		return v, func() tea.Msg {
			saved, err := app.Plan.Optimize(context.Background())
			return optimizeDoneMsg{savedKm: saved, err: err}
		}

	case "r":
		return v, v.refreshCmd()

	case "c":
		if len(v.items) == 0 {
			return v, nil
		}
		v.confirmClear = true
	}
	return v, nil
}

// moveCursorItem swaps the cursor item with its neighbor. The swap is
// rendered right away; the backend sync runs behind it and the server's
// snapshot wins when it lands.
func (v *planView) moveCursorItem(delta int) (tea.Model, tea.Cmd) {
	target := v.cursor + delta
	if target < 0 || target >= len(v.items) {
		return v, nil
	}
	v.items[v.cursor], v.items[target] = v.items[target], v.items[v.cursor]
	v.cursor = target

	ids := make([]string, len(v.items))
	for i, it := range v.items {
		ids[i] = it.ID
	}
	app := v.app
	return v, func() tea.Msg {
		return planSyncedMsg{err: app.Plan.Reorder(context.Background(), ids)}
	}
}

// removeCursorItem drops the cursor item from the rendered list right away.
// The delete is fire-and-forget: a failed call leaves the item gone locally.
func (v *planView) removeCursorItem() (tea.Model, tea.Cmd) {
	if v.cursor >= len(v.items) {
		return v, nil
	}
	itemID := v.items[v.cursor].ID
	v.items = append(v.items[:v.cursor], v.items[v.cursor+1:]...)
	v.clampCursor()

	app := v.app
	return v, func() tea.Msg {
		return planSyncedMsg{err: app.Plan.RemoveItem(context.Background(), itemID)}
	}
}

func (v *planView) clampCursor() {
	if v.cursor >= len(v.items) {
		v.cursor = len(v.items) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *planView) View() string {
	var b strings.Builder

	b.WriteString(formatter.Header("Trip Plan"))
	b.WriteString("\n\n")

	if len(v.items) == 0 {
		b.WriteString(formatter.StyleDim.Render("Plan is empty. Use 'localmate search' to find places."))
		b.WriteString("\n")
	}

	for i, it := range v.items {
		prefix := "  "
		line := fmt.Sprintf("%d. %s  %s  %s",
			i+1,
			formatter.StyleFg.Render(it.Name),
			formatter.Category(it.Category),
			formatter.Distance(it.DistanceFromPrevKm),
		)
		if i == v.cursor {
			prefix = formatter.StyleHeader.Render("> ")
			line = formatter.StyleBold.Render(fmt.Sprintf("%d. %s", i+1, it.Name)) +
				"  " + formatter.Category(it.Category) +
				"  " + formatter.Distance(it.DistanceFromPrevKm)
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.PlanSummary(
		len(v.items),
		v.app.Plan.TotalDistanceKm(),
		v.app.Plan.EstimatedDurationMin(),
	))
	b.WriteString("\n\n")

	if v.confirmClear {
		b.WriteString(formatter.StyleRed.Render("Delete the whole plan? (y/N) "))
		b.WriteString("\n")
	} else if v.err != nil {
		b.WriteString(formatter.StyleYellow.Render("warning: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.status != "" {
		b.WriteString(formatter.StyleGreen.Render(v.status))
		b.WriteString("\n")
	}

	help := "↑/↓ move cursor · shift+↑/↓ reorder · d remove · o optimize · c clear · r refresh · q quit"
	if len(v.items) < 2 {
		help = strings.Replace(help, "o optimize · ", "", 1)
	}
	b.WriteString(formatter.StyleDim.Render(help))
	b.WriteString("\n")

	return b.String()
}
