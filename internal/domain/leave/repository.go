package leave

import (
	"context"
	"time"
)

// ListFilter narrows List results. Zero values mean "no constraint".
// OverlapStart/OverlapEnd select requests whose period intersects the
// inclusive range.
type ListFilter struct {
	UserID       string
	Statuses     []Status
	OverlapStart *time.Time
	OverlapEnd   *time.Time
}

// UpdateParams carries the mutable non-status fields; nil keeps current value.
type UpdateParams struct {
	ID        string
	StartDate *time.Time
	EndDate   *time.Time
	LeaveType *string
	Reason    *string
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
	Update(ctx context.Context, params UpdateParams) (Request, error)
	// ApplyDecision atomically reads the request and writes the decision in a
	// single transaction, returning the pre-decision snapshot alongside the
	// updated row. With requirePending it fails with ErrAlreadyProcessed when
	// the request has left the pending state.
	ApplyDecision(ctx context.Context, id string, d Decision, requirePending bool) (prev Request, updated Request, err error)
	// ClearDecision returns a decided request to pending, erasing the decision
	// fields. Fails with ErrAlreadyPending when the request is still pending.
	ClearDecision(ctx context.Context, id string) (Request, error)
	Delete(ctx context.Context, id string) error
}
