package dashboard

import (
	"context"

	"github.com/attendly/leave-backend-go/internal/domain/user"
)

// DashboardService defines dashboard aggregation operations
type DashboardService interface {
	AdminStats(ctx context.Context, caller user.CallerContext) (AdminStats, error)
	// UserSummary returns the caller's own summary unless the caller is an
	// approver asking about another user.
	UserSummary(ctx context.Context, caller user.CallerContext, userID string, year int) (UserSummary, error)
	UserLeaveStats(ctx context.Context, caller user.CallerContext, year int) ([]UserLeaveStat, error)
	MonthlyLeaveTrends(ctx context.Context, caller user.CallerContext, year int) ([]MonthlyLeaveTrend, error)
	StatusDistribution(ctx context.Context, caller user.CallerContext, year int) (StatusDistribution, error)
	AttendanceOverview(ctx context.Context, caller user.CallerContext, days int) ([]AttendanceOverview, error)
}
