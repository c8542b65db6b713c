package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/attendance"
	"github.com/attendly/leave-backend-go/internal/domain/user"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

func NewAttendanceService(repo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		now:                  time.Now,
	}
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, caller user.CallerContext, req attendance.MarkRequest) (attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	date, err := attendance.ParseDate(req.Date)
	if err != nil {
		return attendance.Response{}, err
	}

	rec, err := s.AttendanceRepository.Upsert(ctx, attendance.Record{
		UserID: caller.ID,
		Date:   date,
		Status: attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to mark attendance: %w", err)
	}
	return attendance.ToResponse(rec), nil
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, caller user.CallerContext) (attendance.Response, error) {
	now := s.now()
	rec, err := s.AttendanceRepository.Upsert(ctx, attendance.Record{
		UserID:    caller.ID,
		Date:      today(now),
		Status:    attendance.StatusPresent,
		LoginTime: &now,
	})
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to clock in: %w", err)
	}
	return attendance.ToResponse(rec), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, caller user.CallerContext) (attendance.Response, error) {
	now := s.now()

	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, caller.ID, today(now))
	if err != nil {
		if errors.Is(err, attendance.ErrNotFound) {
			return attendance.Response{}, attendance.ErrNoLoginToday
		}
		return attendance.Response{}, err
	}
	if rec.LoginTime == nil {
		return attendance.Response{}, attendance.ErrNoLoginToday
	}

	updated, err := s.AttendanceRepository.Update(ctx, attendance.UpdateParams{
		ID:         rec.ID,
		LogoutTime: &now,
	})
	if err != nil {
		return attendance.Response{}, fmt.Errorf("failed to clock out: %w", err)
	}
	return attendance.ToResponse(updated), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, caller user.CallerContext, req attendance.ListRequest) ([]attendance.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := attendance.ListFilter{UserID: req.UserID}

	// Regular users only ever see their own history.
	if !caller.IsApprover() {
		filter.UserID = caller.ID
	}

	if req.FromDate != "" {
		from, err := attendance.ParseDate(req.FromDate)
		if err != nil {
			return nil, err
		}
		filter.FromDate = &from
	}
	if req.ToDate != "" {
		to, err := attendance.ParseDate(req.ToDate)
		if err != nil {
			return nil, err
		}
		filter.ToDate = &to
	}

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.Response, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, caller user.CallerContext, req attendance.UpdateRequest) (attendance.Response, error) {
	if !caller.IsSysadmin() {
		return attendance.Response{}, user.ErrSysadminAccessRequired
	}
	if err := req.Validate(); err != nil {
		return attendance.Response{}, err
	}

	params := attendance.UpdateParams{
		ID:         req.ID,
		LoginTime:  req.LoginTime,
		LogoutTime: req.LogoutTime,
	}
	if req.Status != nil {
		status := attendance.Status(*req.Status)
		params.Status = &status
	}

	rec, err := s.AttendanceRepository.Update(ctx, params)
	if err != nil {
		return attendance.Response{}, err
	}
	return attendance.ToResponse(rec), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, caller user.CallerContext, id string) error {
	if !caller.IsSysadmin() {
		return user.ErrSysadminAccessRequired
	}
	return s.AttendanceRepository.Delete(ctx, id)
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
