package leave

import (
	"context"

	"github.com/attendly/leave-backend-go/internal/domain/user"
)

// QuickActionView is what the token-gated confirmation form renders.
type QuickActionView struct {
	Request Response
	Action  string
}

// LeaveService defines leave request lifecycle operations
type LeaveService interface {
	Submit(ctx context.Context, caller user.CallerContext, req SubmitRequest) (Response, error)
	Get(ctx context.Context, caller user.CallerContext, id string) (Response, error)
	List(ctx context.Context, caller user.CallerContext, req ListRequest) ([]Response, error)
	Decide(ctx context.Context, caller user.CallerContext, req DecideRequest) (Response, error)
	Withdraw(ctx context.Context, caller user.CallerContext, id string) (Response, error)
	Update(ctx context.Context, caller user.CallerContext, req UpdateRequest) (Response, error)
	Delete(ctx context.Context, caller user.CallerContext, id string) error

	// Token-gated surface for the email quick links. Neither method requires
	// an authenticated caller; the token itself scopes access to one request.
	GetForQuickAction(ctx context.Context, id, token, action string) (QuickActionView, error)
	DecideViaToken(ctx context.Context, req QuickActionDecision) (Response, error)
}
