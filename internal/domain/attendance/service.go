package attendance

import (
	"context"

	"github.com/attendly/leave-backend-go/internal/domain/user"
)

// AttendanceService defines attendance tracking operations
type AttendanceService interface {
	// Mark records attendance for the caller on a given date (upsert).
	Mark(ctx context.Context, caller user.CallerContext, req MarkRequest) (Response, error)
	// ClockIn records today's login time for the caller.
	ClockIn(ctx context.Context, caller user.CallerContext) (Response, error)
	// ClockOut records today's logout time; fails without a prior login.
	ClockOut(ctx context.Context, caller user.CallerContext) (Response, error)
	List(ctx context.Context, caller user.CallerContext, req ListRequest) ([]Response, error)
	Update(ctx context.Context, caller user.CallerContext, req UpdateRequest) (Response, error)
	Delete(ctx context.Context, caller user.CallerContext, id string) error
}
