package plan

import "errors"

var (
	// ErrNoPlan indicates a mutation was attempted before a plan exists.
	ErrNoPlan = errors.New("no active plan")

	// ErrItemNotFound indicates the referenced item is not in the plan.
	ErrItemNotFound = errors.New("item not in plan")

	// ErrNotPermutation indicates a reorder request whose IDs do not match
	// the current plan contents exactly.
	ErrNotPermutation = errors.New("new order is not a permutation of the plan")
)
