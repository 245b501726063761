package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/localmate/localmate/internal/domain"
)

// OptimizeResult is the backend's answer to an optimize call: the full
// reordered item list plus the distance saved relative to the old order.
type OptimizeResult struct {
	Items           []domain.PlanItem
	DistanceSavedKm float64
}

// PlannerAPI is the plan-scoped backend surface. All calls are asynchronous
// suspend points that may fail independently of local state; the caller
// decides per operation whether optimistic state is rolled back.
type PlannerAPI interface {
	// CreatePlan creates an empty plan and returns its server-issued ID.
	CreatePlan(ctx context.Context, name string) (string, error)

	// AddItem appends a place to the plan and returns the created item.
	AddItem(ctx context.Context, planID string, place domain.Place) (*domain.PlanItem, error)

	// RemoveItem deletes one item from the plan.
	RemoveItem(ctx context.Context, planID, itemID string) error

	// Reorder replaces the plan's visit order with orderedItemIDs.
	Reorder(ctx context.Context, planID string, orderedItemIDs []string) error

	// FetchPlan returns the authoritative plan snapshot, including
	// server-recomputed leg distances.
	FetchPlan(ctx context.Context, planID string) (*domain.Plan, error)

	// Optimize asks the backend to reorder the plan for distance. The
	// algorithm behind it is opaque to the client.
	Optimize(ctx context.Context, planID string) (*OptimizeResult, error)

	// DestroyPlan deletes the whole plan server-side.
	DestroyPlan(ctx context.Context, planID string) error
}

var _ PlannerAPI = (*Client)(nil)

type createPlanRequest struct {
	Name string `json:"name"`
}

type createPlanResponse struct {
	PlanID string `json:"plan_id"`
}

type addItemRequest struct {
	Place domain.Place `json:"place"`
}

type reorderRequest struct {
	NewOrder []string `json:"new_order"`
}

type fetchPlanResponse struct {
	Plan domain.Plan `json:"plan"`
}

type optimizeResponse struct {
	Items           []domain.PlanItem `json:"items"`
	DistanceSavedKm float64           `json:"distance_saved_km"`
}

func (c *Client) CreatePlan(ctx context.Context, name string) (string, error) {
	var resp createPlanResponse
	err := c.do(ctx, "create_plan", http.MethodPost, "/planner/create",
		createPlanRequest{Name: name}, &resp)
	if err != nil {
		return "", err
	}
	return resp.PlanID, nil
}

func (c *Client) AddItem(ctx context.Context, planID string, place domain.Place) (*domain.PlanItem, error) {
	var item domain.PlanItem
	err := c.do(ctx, "add_item", http.MethodPost, "/planner/"+url.PathEscape(planID)+"/add",
		addItemRequest{Place: place}, &item)
	if err != nil {
		return nil, err
	}
	// The backend may omit the place ID in its response; the caller's
	// descriptor is authoritative for it.
	if item.PlaceID == "" {
		item.PlaceID = place.ID
	}
	return &item, nil
}

func (c *Client) RemoveItem(ctx context.Context, planID, itemID string) error {
	path := "/planner/" + url.PathEscape(planID) + "/remove/" + url.PathEscape(itemID)
	return c.do(ctx, "remove_item", http.MethodDelete, path, nil, nil)
}

func (c *Client) Reorder(ctx context.Context, planID string, orderedItemIDs []string) error {
	return c.do(ctx, "reorder", http.MethodPut, "/planner/"+url.PathEscape(planID)+"/reorder",
		reorderRequest{NewOrder: orderedItemIDs}, nil)
}

func (c *Client) FetchPlan(ctx context.Context, planID string) (*domain.Plan, error) {
	var resp fetchPlanResponse
	err := c.do(ctx, "fetch_plan", http.MethodGet, "/planner/"+url.PathEscape(planID), nil, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Plan.ID == "" {
		resp.Plan.ID = planID
	}
	return &resp.Plan, nil
}

func (c *Client) Optimize(ctx context.Context, planID string) (*OptimizeResult, error) {
	var resp optimizeResponse
	err := c.do(ctx, "optimize", http.MethodPost, "/planner/"+url.PathEscape(planID)+"/optimize",
		nil, &resp)
	if err != nil {
		return nil, err
	}
	return &OptimizeResult{Items: resp.Items, DistanceSavedKm: resp.DistanceSavedKm}, nil
}

func (c *Client) DestroyPlan(ctx context.Context, planID string) error {
	return c.do(ctx, "destroy_plan", http.MethodDelete, "/planner/"+url.PathEscape(planID), nil, nil)
}
