package postgresql

import (
	"context"

	"github.com/attendly/leave-backend-go/internal/domain/dashboard"
	"github.com/attendly/leave-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) GetAdminStats(ctx context.Context) (dashboard.AdminStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM attendance WHERE date = CURRENT_DATE AND status = 'present'),
			(SELECT COUNT(*) FROM leave_requests
			 WHERE status = 'approved'
			   AND start_date <= (date_trunc('month', CURRENT_DATE) + INTERVAL '1 month - 1 day')::date
			   AND end_date >= date_trunc('month', CURRENT_DATE)::date)
	`

	var stats dashboard.AdminStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.ActiveUsers,
		&stats.PendingRequests,
		&stats.PresentToday,
		&stats.LeavesThisMonth,
	)
	return stats, err
}

func (r *dashboardRepositoryImpl) GetUserSummary(ctx context.Context, userID string, year int) (dashboard.UserSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN (end_date - start_date + 1) ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN (end_date - start_date + 1) ELSE 0 END), 0)
		FROM leave_requests
		WHERE user_id = $1 AND EXTRACT(YEAR FROM start_date) = $2
	`

	summary := dashboard.UserSummary{UserID: userID, Year: year}
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&summary.ApprovedRequests,
		&summary.ApprovedLeaveDays,
		&summary.PendingRequests,
		&summary.PendingLeaveDays,
	)
	if err != nil {
		return dashboard.UserSummary{}, err
	}

	attQuery := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0)
		FROM attendance
		WHERE user_id = $1 AND EXTRACT(YEAR FROM date) = $2
	`
	err = q.QueryRow(ctx, attQuery, userID, year).Scan(&summary.PresentDays, &summary.AbsentDays)
	if err != nil {
		return dashboard.UserSummary{}, err
	}

	return summary, nil
}

func (r *dashboardRepositoryImpl) GetUserLeaveStats(ctx context.Context, year int) ([]dashboard.UserLeaveStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.full_name,
			COALESCE(SUM(CASE WHEN lr.status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN lr.status = 'approved' THEN (lr.end_date - lr.start_date + 1) ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN lr.status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN lr.status = 'rejected' THEN 1 ELSE 0 END), 0)
		FROM users u
		LEFT JOIN leave_requests lr
			ON lr.user_id = u.id AND EXTRACT(YEAR FROM lr.start_date) = $1
		WHERE u.is_active = TRUE
		GROUP BY u.id, u.full_name
		ORDER BY u.full_name ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []dashboard.UserLeaveStat
	for rows.Next() {
		var s dashboard.UserLeaveStat
		err := rows.Scan(
			&s.UserID,
			&s.FullName,
			&s.ApprovedRequests,
			&s.ApprovedLeaveDays,
			&s.PendingRequests,
			&s.RejectedRequests,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *dashboardRepositoryImpl) GetMonthlyLeaveTrends(ctx context.Context, year int) ([]dashboard.MonthlyLeaveTrend, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(date_trunc('month', start_date), 'YYYY-MM') AS month,
			COUNT(*),
			COALESCE(SUM(end_date - start_date + 1), 0)
		FROM leave_requests
		WHERE status = 'approved' AND EXTRACT(YEAR FROM start_date) = $1
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []dashboard.MonthlyLeaveTrend
	for rows.Next() {
		var t dashboard.MonthlyLeaveTrend
		if err := rows.Scan(&t.Month, &t.Requests, &t.LeaveDays); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

func (r *dashboardRepositoryImpl) GetStatusDistribution(ctx context.Context, year int) (dashboard.StatusDistribution, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0)
		FROM leave_requests
		WHERE EXTRACT(YEAR FROM start_date) = $1
	`

	var dist dashboard.StatusDistribution
	err := q.QueryRow(ctx, query, year).Scan(&dist.Pending, &dist.Approved, &dist.Rejected)
	return dist, err
}

func (r *dashboardRepositoryImpl) GetAttendanceOverview(ctx context.Context, days int) ([]dashboard.AttendanceOverview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT to_char(date, 'YYYY-MM-DD'),
			COALESCE(SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'absent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'half_day' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'on_leave' THEN 1 ELSE 0 END), 0)
		FROM attendance
		WHERE date >= CURRENT_DATE - $1::int
		GROUP BY date
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overview []dashboard.AttendanceOverview
	for rows.Next() {
		var o dashboard.AttendanceOverview
		if err := rows.Scan(&o.Date, &o.Present, &o.Absent, &o.HalfDay, &o.OnLeave); err != nil {
			return nil, err
		}
		overview = append(overview, o)
	}
	return overview, rows.Err()
}
