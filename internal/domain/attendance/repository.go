package attendance

import (
	"context"
	"time"
)

type ListFilter struct {
	UserID   string
	FromDate *time.Time
	ToDate   *time.Time
}

type UpdateParams struct {
	ID         string
	Status     *Status
	LoginTime  *time.Time
	LogoutTime *time.Time
}

// AttendanceRepository - interface for attendance table
type AttendanceRepository interface {
	// Upsert inserts or overwrites the record for (user_id, date).
	Upsert(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// GetByUserAndDate returns the record for one user on one date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (Record, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	Update(ctx context.Context, params UpdateParams) (Record, error)
	Delete(ctx context.Context, id string) error
	// MarkAbsentees inserts absent records for active users with no record on
	// the date, returning how many were created.
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}
