package plan

import (
	"context"
	"fmt"
	"sync"

	"github.com/localmate/localmate/internal/api"
	"github.com/localmate/localmate/internal/domain"
)

// Store is the sole owner of client-side plan state: the current plan ID
// and the ordered item list. Mutations are optimistic where the product
// calls for it (remove, reorder) and reconciled against the backend's
// authoritative snapshot where one is fetched; the backend is always the
// last writer.
//
// Plan state is never persisted locally. A Store starts empty and lazily
// creates a server-side plan on first use.
type Store struct {
	api api.PlannerAPI
	cfg Config

	mu     sync.Mutex
	planID string
	items  []domain.PlanItem

	// gen counts mutations. A snapshot fetched under an older generation
	// is stale and must not overwrite newer local state.
	gen uint64
}

// NewStore creates an empty Store backed by the given planner API.
func NewStore(planner api.PlannerAPI, cfg Config) *Store {
	return &Store{api: planner, cfg: cfg}
}

// EnsurePlan creates a server-side plan if none exists yet. It is a no-op
// when a plan is already active. On failure the store stays planless; the
// caller may simply try again on the next action.
func (s *Store) EnsurePlan(ctx context.Context) error {
	s.mu.Lock()
	if s.planID != "" {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	id, err := s.api.CreatePlan(ctx, s.cfg.DefaultPlanName)
	if err != nil {
		return fmt.Errorf("creating plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.planID == "" {
		s.planID = id
	}
	return nil
}

// AddItem sends the place to the backend and appends the resulting item to
// the end of the plan. Nothing changes locally if the call fails.
//
// Duplicate membership is the caller's concern: check IsInPlan first. The
// store does not reject a second add of the same place.
func (s *Store) AddItem(ctx context.Context, place domain.Place) (*domain.PlanItem, error) {
	if err := s.EnsurePlan(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	planID := s.planID
	s.mu.Unlock()

	item, err := s.api.AddItem(ctx, planID, place)
	if err != nil {
		return nil, fmt.Errorf("adding %q: %w", place.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.items = append(s.items, *item)
	return item, nil
}

// RemoveItem drops the item locally and then issues the server-side delete.
// The local removal stands even when the delete fails; until the next
// successful refresh local and server state may diverge. The error is still
// returned so the caller can surface it.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	if s.planID == "" {
		s.mu.Unlock()
		return ErrNoPlan
	}
	found := false
	for i, it := range s.items {
		if it.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.gen++
	}
	planID := s.planID
	s.mu.Unlock()

	if !found {
		return ErrItemNotFound
	}

	if err := s.api.RemoveItem(ctx, planID, itemID); err != nil {
		return fmt.Errorf("deleting item server-side: %w", err)
	}
	return nil
}

// Reorder applies the new order locally right away, then tells the backend
// and refetches the authoritative snapshot (which carries recomputed leg
// distances). If the round trip fails the optimistic order is kept with
// stale distances until the next successful sync. orderedItemIDs must be a
// permutation of the current item IDs.
func (s *Store) Reorder(ctx context.Context, orderedItemIDs []string) error {
	s.mu.Lock()
	if s.planID == "" {
		s.mu.Unlock()
		return ErrNoPlan
	}
	reordered, err := applyOrder(s.items, orderedItemIDs)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.items = reordered
	s.gen++
	gen := s.gen
	planID := s.planID
	s.mu.Unlock()

	if err := s.api.Reorder(ctx, planID, orderedItemIDs); err != nil {
		return fmt.Errorf("sending new order: %w", err)
	}

	snap, err := s.api.FetchPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("refetching plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// A newer mutation landed while this round trip was in flight;
		// the snapshot is stale.
		return nil
	}
	s.items = snap.Items
	return nil
}

// Optimize asks the backend for a distance-minimizing order and replaces
// the items wholesale on success. It returns the kilometers saved for
// transient display. With fewer than two items there is nothing to
// optimize and no network call is made.
func (s *Store) Optimize(ctx context.Context) (float64, error) {
	s.mu.Lock()
	if len(s.items) < 2 {
		s.mu.Unlock()
		return 0, nil
	}
	planID := s.planID
	gen := s.gen
	s.mu.Unlock()

	res, err := s.api.Optimize(ctx, planID)
	if err != nil {
		return 0, fmt.Errorf("optimizing plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return res.DistanceSavedKm, nil
	}
	s.gen++
	s.items = res.Items
	return res.DistanceSavedKm, nil
}

// ClearPlan destroys the plan server-side, resets local state and
// immediately creates a fresh plan for continued use.
func (s *Store) ClearPlan(ctx context.Context) error {
	s.mu.Lock()
	planID := s.planID
	s.mu.Unlock()

	if planID != "" {
		if err := s.api.DestroyPlan(ctx, planID); err != nil {
			return fmt.Errorf("destroying plan: %w", err)
		}
	}

	s.mu.Lock()
	s.planID = ""
	s.items = nil
	s.gen++
	s.mu.Unlock()

	return s.EnsurePlan(ctx)
}

// Refresh replaces local items with the backend's authoritative snapshot.
// This is the divergence-resolution path after a failed remove or reorder.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.planID == "" {
		s.mu.Unlock()
		return nil
	}
	planID := s.planID
	gen := s.gen
	s.mu.Unlock()

	snap, err := s.api.FetchPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("fetching plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return nil
	}
	s.items = snap.Items
	return nil
}

// PlanID returns the current plan identifier, or "" before the first
// successful create.
func (s *Store) PlanID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planID
}

// Items returns a copy of the plan items in visit order.
func (s *Store) Items() []domain.PlanItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.PlanItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount returns the number of items in the plan.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IsInPlan reports whether the given place is already in the plan. The UI
// uses this to disable re-adding.
func (s *Store) IsInPlan(placeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.PlaceID == placeID {
			return true
		}
	}
	return false
}

// TotalDistanceKm sums all server-computed leg distances. It is recomputed
// on every read, never cached.
func (s *Store) TotalDistanceKm() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		if it.DistanceFromPrevKm != nil {
			total += *it.DistanceFromPrevKm
		}
	}
	return total
}

// EstimatedDurationMin converts the total distance into minutes at the
// configured average speed. A display heuristic only.
func (s *Store) EstimatedDurationMin() int {
	if s.cfg.AvgSpeedKmh <= 0 {
		return 0
	}
	return int(s.TotalDistanceKm() / s.cfg.AvgSpeedKmh * 60)
}

// applyOrder returns items rearranged to match orderedIDs, or
// ErrNotPermutation when the IDs do not cover the items exactly once each.
func applyOrder(items []domain.PlanItem, orderedIDs []string) ([]domain.PlanItem, error) {
	if len(orderedIDs) != len(items) {
		return nil, ErrNotPermutation
	}
	byID := make(map[string]domain.PlanItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]domain.PlanItem, 0, len(items))
	for _, id := range orderedIDs {
		it, ok := byID[id]
		if !ok {
			return nil, ErrNotPermutation
		}
		delete(byID, id)
		out = append(out, it)
	}
	return out, nil
}
