package cli

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/domain"
	"github.com/localmate/localmate/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPlanner is a minimal in-memory PlannerAPI for view tests.
type stubPlanner struct {
	nextItem int
	items    []domain.PlanItem

	optimizeCalls int
}

func (s *stubPlanner) CreatePlan(ctx context.Context, name string) (string, error) {
	return "plan-1", nil
}

func (s *stubPlanner) AddItem(ctx context.Context, planID string, place domain.Place) (*domain.PlanItem, error) {
	s.nextItem++
	item := domain.PlanItem{
		ID:       fmt.Sprintf("item-%d", s.nextItem),
		PlaceID:  place.ID,
		Name:     place.Name,
		Category: place.Category,
	}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *stubPlanner) RemoveItem(ctx context.Context, planID, itemID string) error {
	for i, it := range s.items {
		if it.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubPlanner) Reorder(ctx context.Context, planID string, orderedItemIDs []string) error {
	byID := map[string]domain.PlanItem{}
	for _, it := range s.items {
		byID[it.ID] = it
	}
	out := make([]domain.PlanItem, 0, len(orderedItemIDs))
	for _, id := range orderedItemIDs {
		out = append(out, byID[id])
	}
	s.items = out
	return nil
}

func (s *stubPlanner) FetchPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	items := make([]domain.PlanItem, len(s.items))
	copy(items, s.items)
	for i := range items {
		if i > 0 {
			d := 1.0
			items[i].DistanceFromPrevKm = &d
		}
	}
	return &domain.Plan{ID: planID, Items: items}, nil
}

func (s *stubPlanner) Optimize(ctx context.Context, planID string) (*api.OptimizeResult, error) {
	s.optimizeCalls++
	out := make([]domain.PlanItem, len(s.items))
	copy(out, s.items)
	return &api.OptimizeResult{Items: out, DistanceSavedKm: 0.5}, nil
}

func (s *stubPlanner) DestroyPlan(ctx context.Context, planID string) error {
	s.items = nil
	return nil
}

func testApp(t *testing.T, stops ...string) (*App, *stubPlanner) {
	t.Helper()
	stub := &stubPlanner{}
	store := plan.NewStore(stub, plan.DefaultConfig())
	for i, name := range stops {
		_, err := store.AddItem(context.Background(), domain.Place{
			ID: fmt.Sprintf("p-%d", i), Name: name, Category: "museum",
		})
		require.NoError(t, err)
	}
	return &App{Plan: store}, stub
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "shift+down":
		return tea.KeyMsg{Type: tea.KeyShiftDown}
	case "shift+up":
		return tea.KeyMsg{Type: tea.KeyShiftUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlanView_CursorNavigation(t *testing.T) {
	app, _ := testApp(t, "Aquarium", "Botanic Garden", "Cathedral")
	v := newPlanView(app)

	assert.Equal(t, 0, v.cursor)
	v.Update(keyMsg("j"))
	v.Update(keyMsg("j"))
	assert.Equal(t, 2, v.cursor)

	// Clamped at the end.
	v.Update(keyMsg("j"))
	assert.Equal(t, 2, v.cursor)

	v.Update(keyMsg("k"))
	assert.Equal(t, 1, v.cursor)
}

func TestPlanView_MoveIsOptimisticThenSynced(t *testing.T) {
	app, _ := testApp(t, "Aquarium", "Botanic Garden")
	v := newPlanView(app)

	_, cmd := v.Update(keyMsg("shift+down"))

	// The swap is already visible before the backend round trip.
	assert.Equal(t, "Botanic Garden", v.items[0].Name)
	assert.Equal(t, "Aquarium", v.items[1].Name)
	assert.Equal(t, 1, v.cursor)
	require.NotNil(t, cmd)

	// Running the command performs the sync; feeding its message back in
	// re-reads the authoritative snapshot with recomputed distances.
	msg := cmd()
	synced, ok := msg.(planSyncedMsg)
	require.True(t, ok)
	assert.NoError(t, synced.err)

	v.Update(msg)
	assert.Equal(t, "Botanic Garden", v.items[0].Name)
	require.NotNil(t, v.items[1].DistanceFromPrevKm)
	assert.InDelta(t, 1.0, *v.items[1].DistanceFromPrevKm, 0.001)
}

func TestPlanView_RemoveIsImmediate(t *testing.T) {
	app, _ := testApp(t, "Aquarium", "Botanic Garden")
	v := newPlanView(app)

	_, cmd := v.Update(keyMsg("d"))
	require.Len(t, v.items, 1)
	assert.Equal(t, "Botanic Garden", v.items[0].Name)
	require.NotNil(t, cmd)

	v.Update(cmd())
	assert.Len(t, v.items, 1)
}

func TestPlanView_OptimizeDisabledBelowTwoStops(t *testing.T) {
	app, stub := testApp(t, "Aquarium")
	v := newPlanView(app)

	_, cmd := v.Update(keyMsg("o"))
	assert.Nil(t, cmd)
	assert.Contains(t, v.status, "at least two")
	assert.Equal(t, 0, stub.optimizeCalls)
}

func TestPlanView_OptimizeShowsSavings(t *testing.T) {
	app, stub := testApp(t, "Aquarium", "Botanic Garden")
	v := newPlanView(app)

	_, cmd := v.Update(keyMsg("o"))
	require.NotNil(t, cmd)

	v.Update(cmd())
	assert.Equal(t, 1, stub.optimizeCalls)
	assert.Contains(t, v.status, "0.5 km")
}

func TestPlanView_ClearNeedsConfirmation(t *testing.T) {
	app, _ := testApp(t, "Aquarium")
	v := newPlanView(app)

	v.Update(keyMsg("c"))
	assert.True(t, v.confirmClear)

	// Anything but "y" keeps the plan.
	_, cmd := v.Update(keyMsg("n"))
	assert.Nil(t, cmd)
	assert.False(t, v.confirmClear)
	assert.Equal(t, 1, app.Plan.ItemCount())
}

func TestPlanView_ClearConfirmed(t *testing.T) {
	app, _ := testApp(t, "Aquarium")
	v := newPlanView(app)

	v.Update(keyMsg("c"))
	_, cmd := v.Update(keyMsg("y"))
	require.NotNil(t, cmd)

	v.Update(cmd())
	assert.Empty(t, v.items)
	assert.Zero(t, app.Plan.ItemCount())
	// A fresh plan is ready for continued use.
	assert.NotEmpty(t, app.Plan.PlanID())
}
