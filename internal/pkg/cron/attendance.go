package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/attendance"
)

// AttendanceJobs backfills attendance for users who never clocked in.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{attendanceRepo: attendanceRepo}
}

// MarkAbsentees marks every active user without a record for yesterday as
// absent. Safe to run repeatedly; existing records are left alone.
func (j *AttendanceJobs) MarkAbsentees(ctx context.Context) error {
	y, m, d := time.Now().UTC().AddDate(0, 0, -1).Date()
	yesterday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	marked, err := j.attendanceRepo.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return err
	}
	if marked > 0 {
		slog.Info("Marked absentees", "date", yesterday.Format("2006-01-02"), "count", marked)
	}
	return nil
}
