package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/attendly/leave-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveSelect = `
	SELECT lr.id, lr.user_id, lr.start_date, lr.end_date, lr.leave_type, lr.reason,
		   lr.status, lr.approved_by, lr.approved_at, lr.remarks,
		   lr.created_at, lr.updated_at,
		   u.full_name, u.email, a.full_name
	FROM leave_requests lr
	INNER JOIN users u ON lr.user_id = u.id
	LEFT JOIN users a ON lr.approved_by = a.id
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.LeaveType,
		&lr.Reason,
		&lr.Status,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.Remarks,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.UserName,
		&lr.UserEmail,
		&lr.ApproverName,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, start_date, end_date, leave_type, reason, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	request.ID = uuid.Must(uuid.NewV7()).String()
	err := q.QueryRow(ctx, query,
		request.ID, request.UserID, request.StartDate, request.EndDate,
		request.LeaveType, request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return r.GetByID(ctx, request.ID)
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + ` WHERE lr.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return lr, err
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("lr.status = ANY($%d)", argIdx))
		args = append(args, statuses)
		argIdx++
	}
	// Inclusive period overlap: [start_date, end_date] intersects [from, to].
	if filter.OverlapStart != nil && filter.OverlapEnd != nil {
		conditions = append(conditions, fmt.Sprintf("lr.start_date <= $%d AND lr.end_date >= $%d", argIdx, argIdx+1))
		args = append(args, *filter.OverlapEnd, *filter.OverlapStart)
		argIdx += 2
	}

	query := leaveSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY lr.created_at DESC, lr.id DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, params leave.UpdateParams) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			start_date = COALESCE($2, start_date),
			end_date = COALESCE($3, end_date),
			leave_type = COALESCE($4, leave_type),
			reason = COALESCE($5, reason),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		params.ID, params.StartDate, params.EndDate, params.LeaveType, params.Reason,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if err != nil {
		return leave.Request{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *leaveRequestRepositoryImpl) ApplyDecision(ctx context.Context, id string, d leave.Decision, requirePending bool) (prev leave.Request, updated leave.Request, err error) {
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		lockQuery := `
			SELECT id, user_id, start_date, end_date, leave_type, reason,
				   status, approved_by, approved_at, remarks, created_at, updated_at
			FROM leave_requests
			WHERE id = $1
			FOR UPDATE
		`
		scanErr := tx.QueryRow(txCtx, lockQuery, id).Scan(
			&prev.ID, &prev.UserID, &prev.StartDate, &prev.EndDate, &prev.LeaveType, &prev.Reason,
			&prev.Status, &prev.ApprovedBy, &prev.ApprovedAt, &prev.Remarks, &prev.CreatedAt, &prev.UpdatedAt,
		)
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		if scanErr != nil {
			return scanErr
		}

		if requirePending && prev.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		updateQuery := `
			UPDATE leave_requests SET
				status = $2,
				approved_by = $3,
				approved_at = $4,
				remarks = $5,
				start_date = COALESCE($6, start_date),
				end_date = COALESCE($7, end_date),
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(txCtx, updateQuery,
			id, d.Outcome, d.ApproverID, d.DecidedAt, d.Remarks, d.StartDate, d.EndDate,
		); err != nil {
			return err
		}

		var getErr error
		updated, getErr = r.GetByID(txCtx, id)
		if getErr != nil {
			return getErr
		}
		if updated.EndDate.Before(updated.StartDate) {
			return leave.ErrInvalidDateRange
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, leave.Request{}, err
	}

	// The requester identity is the same row before and after.
	prev.UserName = updated.UserName
	prev.UserEmail = updated.UserEmail
	return prev, updated, nil
}

func (r *leaveRequestRepositoryImpl) ClearDecision(ctx context.Context, id string) (updated leave.Request, err error) {
	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var status leave.Status
		scanErr := tx.QueryRow(txCtx, `SELECT status FROM leave_requests WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return leave.ErrRequestNotFound
		}
		if scanErr != nil {
			return scanErr
		}

		if status == leave.StatusPending {
			return leave.ErrAlreadyPending
		}

		updateQuery := `
			UPDATE leave_requests SET
				status = $2,
				approved_by = NULL,
				approved_at = NULL,
				remarks = NULL,
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := tx.Exec(txCtx, updateQuery, id, leave.StatusPending); err != nil {
			return err
		}

		var getErr error
		updated, getErr = r.GetByID(txCtx, id)
		return getErr
	})
	if err != nil {
		return leave.Request{}, err
	}
	return updated, nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}
