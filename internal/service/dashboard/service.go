package dashboard

import (
	"context"

	"github.com/attendly/leave-backend-go/internal/domain/dashboard"
	"github.com/attendly/leave-backend-go/internal/domain/user"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{DashboardRepository: repo}
}

// AdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AdminStats(ctx context.Context, caller user.CallerContext) (dashboard.AdminStats, error) {
	if !caller.IsApprover() {
		return dashboard.AdminStats{}, user.ErrApproverAccessRequired
	}
	return s.DashboardRepository.GetAdminStats(ctx)
}

// UserSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) UserSummary(ctx context.Context, caller user.CallerContext, userID string, year int) (dashboard.UserSummary, error) {
	if userID == "" {
		userID = caller.ID
	}
	if userID != caller.ID && !caller.IsApprover() {
		return dashboard.UserSummary{}, user.ErrApproverAccessRequired
	}
	return s.DashboardRepository.GetUserSummary(ctx, userID, year)
}

// UserLeaveStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) UserLeaveStats(ctx context.Context, caller user.CallerContext, year int) ([]dashboard.UserLeaveStat, error) {
	if !caller.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}
	return s.DashboardRepository.GetUserLeaveStats(ctx, year)
}

// MonthlyLeaveTrends implements dashboard.DashboardService.
func (s *DashboardServiceImpl) MonthlyLeaveTrends(ctx context.Context, caller user.CallerContext, year int) ([]dashboard.MonthlyLeaveTrend, error) {
	if !caller.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}
	return s.DashboardRepository.GetMonthlyLeaveTrends(ctx, year)
}

// StatusDistribution implements dashboard.DashboardService.
func (s *DashboardServiceImpl) StatusDistribution(ctx context.Context, caller user.CallerContext, year int) (dashboard.StatusDistribution, error) {
	if !caller.IsApprover() {
		return dashboard.StatusDistribution{}, user.ErrApproverAccessRequired
	}
	return s.DashboardRepository.GetStatusDistribution(ctx, year)
}

// AttendanceOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) AttendanceOverview(ctx context.Context, caller user.CallerContext, days int) ([]dashboard.AttendanceOverview, error) {
	if !caller.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}
	if days <= 0 || days > 90 {
		days = 30
	}
	return s.DashboardRepository.GetAttendanceOverview(ctx, days)
}
