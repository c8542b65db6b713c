package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/dashboard"
	"github.com/attendly/leave-backend-go/internal/handler/http/response"
)

type DashboardHandler struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func yearParam(r *http.Request) int {
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && y > 0 {
		return y
	}
	return time.Now().Year()
}

// AdminStats handles GET /api/v1/dashboard/admin
func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.dashboardService.AdminStats(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// UserSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) UserSummary(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.dashboardService.UserSummary(r.Context(), caller, r.URL.Query().Get("user_id"), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// UserLeaveStats handles GET /api/v1/dashboard/leave-stats
func (h *DashboardHandler) UserLeaveStats(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.dashboardService.UserLeaveStats(r.Context(), caller, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// MonthlyLeaveTrends handles GET /api/v1/dashboard/leave-trends
func (h *DashboardHandler) MonthlyLeaveTrends(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	trends, err := h.dashboardService.MonthlyLeaveTrends(r.Context(), caller, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trends)
}

// StatusDistribution handles GET /api/v1/dashboard/status-distribution
func (h *DashboardHandler) StatusDistribution(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	dist, err := h.dashboardService.StatusDistribution(r.Context(), caller, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dist)
}

// AttendanceOverview handles GET /api/v1/dashboard/attendance-overview
func (h *DashboardHandler) AttendanceOverview(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	overview, err := h.dashboardService.AttendanceOverview(r.Context(), caller, days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}
