package dashboard

import "context"

// DashboardRepository - SQL aggregation queries behind the dashboard endpoints
type DashboardRepository interface {
	GetAdminStats(ctx context.Context) (AdminStats, error)
	GetUserSummary(ctx context.Context, userID string, year int) (UserSummary, error)
	GetUserLeaveStats(ctx context.Context, year int) ([]UserLeaveStat, error)
	GetMonthlyLeaveTrends(ctx context.Context, year int) ([]MonthlyLeaveTrend, error)
	GetStatusDistribution(ctx context.Context, year int) (StatusDistribution, error)
	GetAttendanceOverview(ctx context.Context, days int) ([]AttendanceOverview, error)
}
