package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/attendance"
	"github.com/attendly/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.user_id, a.date, a.status, a.login_time, a.logout_time,
		   a.created_at, a.updated_at, u.full_name
	FROM attendance a
	INNER JOIN users u ON a.user_id = u.id
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Date,
		&rec.Status,
		&rec.LoginTime,
		&rec.LogoutTime,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.UserName,
	)
	return rec, err
}

func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (
			id, user_id, date, status, login_time, logout_time, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
		ON CONFLICT (user_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			login_time = COALESCE(EXCLUDED.login_time, attendance.login_time),
			logout_time = COALESCE(EXCLUDED.logout_time, attendance.logout_time),
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		uuid.Must(uuid.NewV7()).String(), rec.UserID, rec.Date, rec.Status, rec.LoginTime, rec.LogoutTime,
	).Scan(&id)
	if err != nil {
		return attendance.Record{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.id = $1`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, err
}

func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.user_id = $1 AND a.date = $2`

	rec, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrNotFound
	}
	return rec, err
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.FromDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.ToDate)
		argIdx++
	}

	query := attendanceSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date DESC, a.login_time DESC NULLS LAST"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, params attendance.UpdateParams) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance SET
			status = COALESCE($2, status),
			login_time = COALESCE($3, login_time),
			logout_time = COALESCE($4, logout_time),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, params.ID, params.Status, params.LoginTime, params.LogoutTime).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrNotFound
	}
	if err != nil {
		return attendance.Record{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *attendanceRepositoryImpl) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (id, user_id, date, status, created_at, updated_at)
		SELECT gen_random_uuid(), u.id, $1, 'absent', NOW(), NOW()
		FROM users u
		WHERE u.is_active = TRUE
		  AND NOT EXISTS (
			SELECT 1 FROM attendance a WHERE a.user_id = u.id AND a.date = $1
		  )
		ON CONFLICT (user_id, date) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, err
	}
	return int(commandTag.RowsAffected()), nil
}

func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrNotFound
	}
	return nil
}
