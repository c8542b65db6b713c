package dashboard

// AdminStats is the headline card row of the admin dashboard.
type AdminStats struct {
	ActiveUsers     int `json:"active_users"`
	PendingRequests int `json:"pending_requests"`
	PresentToday    int `json:"present_today"`
	LeavesThisMonth int `json:"leaves_this_month"`
}

// UserSummary aggregates one user's current-year leave and attendance.
type UserSummary struct {
	UserID            string `json:"user_id"`
	Year              int    `json:"year"`
	ApprovedRequests  int    `json:"approved_requests"`
	ApprovedLeaveDays int    `json:"approved_leave_days"`
	PendingRequests   int    `json:"pending_requests"`
	PendingLeaveDays  int    `json:"pending_leave_days"`
	PresentDays       int    `json:"present_days"`
	AbsentDays        int    `json:"absent_days"`
}

// UserLeaveStat is one row of the user-wise leave breakdown.
type UserLeaveStat struct {
	UserID            string `json:"user_id"`
	FullName          string `json:"full_name"`
	ApprovedRequests  int    `json:"approved_requests"`
	ApprovedLeaveDays int    `json:"approved_leave_days"`
	PendingRequests   int    `json:"pending_requests"`
	RejectedRequests  int    `json:"rejected_requests"`
}

// MonthlyLeaveTrend is one month's bucket of the trend chart.
type MonthlyLeaveTrend struct {
	Month     string `json:"month"` // YYYY-MM
	Requests  int    `json:"requests"`
	LeaveDays int    `json:"leave_days"`
}

// StatusDistribution counts requests per lifecycle status.
type StatusDistribution struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// AttendanceOverview is one day's bucket of the attendance chart.
type AttendanceOverview struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	HalfDay int    `json:"half_day"`
	OnLeave int    `json:"on_leave"`
}
