package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/pkg/email"
	"github.com/attendly/leave-backend-go/internal/pkg/jwt"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	jwtService   jwt.Service
	emailService email.Service
	adminEmail   string
	backendURL   string
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	jwtService jwt.Service,
	emailService email.Service,
	adminEmail string,
	backendURL string,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		UserRepository:         userRepo,
		jwtService:             jwtService,
		emailService:           emailService,
		adminEmail:             adminEmail,
		backendURL:             backendURL,
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, caller user.CallerContext, req leave.SubmitRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		return leave.Response{}, leave.ErrInvalidDateRange
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		return leave.Response{}, leave.ErrInvalidDateRange
	}
	if endDate.Before(startDate) {
		return leave.Response{}, leave.ErrInvalidDateRange
	}

	created, err := l.LeaveRequestRepository.Create(ctx, leave.Request{
		UserID:    caller.ID,
		StartDate: startDate,
		EndDate:   endDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	l.notifyApprover(ctx, created)

	return leave.ToResponse(created), nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, caller user.CallerContext, id string) (leave.Response, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Response{}, err
	}

	if !caller.IsApprover() && request.UserID != caller.ID {
		return leave.Response{}, leave.ErrUnauthorizedAccess
	}

	return leave.ToResponse(request), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, caller user.CallerContext, req leave.ListRequest) ([]leave.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	filter := leave.ListFilter{UserID: req.UserID}

	// Regular users only ever see their own requests, whatever they ask for.
	if !caller.IsApprover() {
		filter.UserID = caller.ID
	}

	for _, s := range req.Statuses {
		filter.Statuses = append(filter.Statuses, leave.Status(s))
	}
	if req.FromDate != "" && req.ToDate != "" {
		from, err := leave.ParseDate(req.FromDate)
		if err != nil {
			return nil, leave.ErrInvalidDateRange
		}
		to, err := leave.ParseDate(req.ToDate)
		if err != nil {
			return nil, leave.ErrInvalidDateRange
		}
		filter.OverlapStart = &from
		filter.OverlapEnd = &to
	}

	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.Response, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}
	return responses, nil
}

// Decide implements leave.LeaveService.
func (l *LeaveServiceImpl) Decide(ctx context.Context, caller user.CallerContext, req leave.DecideRequest) (leave.Response, error) {
	if !caller.IsApprover() {
		return leave.Response{}, leave.ErrUnauthorizedAccess
	}
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	outcome := leave.Status(req.Action)
	if outcome == leave.StatusRejected && (req.Remarks == nil || *req.Remarks == "") {
		return leave.Response{}, leave.ErrRemarksRequired
	}

	decision := leave.Decision{
		Outcome:    outcome,
		ApproverID: caller.ID,
		Remarks:    req.Remarks,
		DecidedAt:  time.Now(),
	}
	if req.StartDate != nil {
		start, err := leave.ParseDate(*req.StartDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		decision.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := leave.ParseDate(*req.EndDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		decision.EndDate = &end
	}

	prev, updated, err := l.LeaveRequestRepository.ApplyDecision(ctx, req.ID, decision, true)
	if err != nil {
		return leave.Response{}, err
	}

	l.notifyRequester(ctx, prev, updated)

	return leave.ToResponse(updated), nil
}

// Withdraw implements leave.LeaveService.
func (l *LeaveServiceImpl) Withdraw(ctx context.Context, caller user.CallerContext, id string) (leave.Response, error) {
	if !caller.IsApprover() {
		return leave.Response{}, leave.ErrUnauthorizedAccess
	}

	updated, err := l.LeaveRequestRepository.ClearDecision(ctx, id)
	if err != nil {
		return leave.Response{}, err
	}

	return leave.ToResponse(updated), nil
}

// Update implements leave.LeaveService.
func (l *LeaveServiceImpl) Update(ctx context.Context, caller user.CallerContext, req leave.UpdateRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.Response{}, err
	}

	if !caller.IsApprover() {
		if request.UserID != caller.ID {
			return leave.Response{}, leave.ErrUnauthorizedAccess
		}
		if !request.IsPending() {
			return leave.Response{}, leave.ErrAlreadyProcessed
		}
	}

	params := leave.UpdateParams{ID: req.ID, LeaveType: req.LeaveType, Reason: req.Reason}

	// Effective dates after the update must still form a valid period.
	effectiveStart, effectiveEnd := request.StartDate, request.EndDate
	if req.StartDate != nil {
		start, err := leave.ParseDate(*req.StartDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		params.StartDate = &start
		effectiveStart = start
	}
	if req.EndDate != nil {
		end, err := leave.ParseDate(*req.EndDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		params.EndDate = &end
		effectiveEnd = end
	}
	if effectiveEnd.Before(effectiveStart) {
		return leave.Response{}, leave.ErrInvalidDateRange
	}

	updated, err := l.LeaveRequestRepository.Update(ctx, params)
	if err != nil {
		return leave.Response{}, err
	}

	return leave.ToResponse(updated), nil
}

// Delete implements leave.LeaveService.
func (l *LeaveServiceImpl) Delete(ctx context.Context, caller user.CallerContext, id string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !caller.IsSysadmin() {
		if request.UserID != caller.ID {
			return leave.ErrUnauthorizedAccess
		}
		if !request.IsPending() {
			return leave.ErrAlreadyProcessed
		}
	}

	return l.LeaveRequestRepository.Delete(ctx, id)
}

// GetForQuickAction implements leave.LeaveService.
func (l *LeaveServiceImpl) GetForQuickAction(ctx context.Context, id, token, action string) (leave.QuickActionView, error) {
	tokenID, err := l.jwtService.ValidateQuickActionToken(token)
	if err != nil {
		return leave.QuickActionView{}, mapTokenError(err)
	}
	if tokenID != id {
		return leave.QuickActionView{}, auth.ErrInvalidToken
	}
	if action != string(leave.StatusApproved) && action != string(leave.StatusRejected) {
		return leave.QuickActionView{}, leave.ErrInvalidStatus
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.QuickActionView{}, err
	}

	return leave.QuickActionView{
		Request: leave.ToResponse(request),
		Action:  action,
	}, nil
}

// DecideViaToken implements leave.LeaveService.
func (l *LeaveServiceImpl) DecideViaToken(ctx context.Context, req leave.QuickActionDecision) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	tokenID, err := l.jwtService.ValidateQuickActionToken(req.Token)
	if err != nil {
		return leave.Response{}, mapTokenError(err)
	}
	if tokenID != req.ID {
		return leave.Response{}, auth.ErrInvalidToken
	}

	outcome := leave.Status(req.Action)
	if outcome == leave.StatusRejected && req.Remarks == "" {
		return leave.Response{}, leave.ErrRemarksRequired
	}

	// Email links carry no session, so the decision is attributed to the
	// first sysadmin account.
	approver, err := l.UserRepository.GetFirstByRole(ctx, user.RoleSysadmin)
	if err != nil {
		return leave.Response{}, fmt.Errorf("failed to resolve default approver: %w", err)
	}

	decision := leave.Decision{
		Outcome:    outcome,
		ApproverID: approver.ID,
		DecidedAt:  time.Now(),
	}
	if req.Remarks != "" {
		remarks := req.Remarks
		decision.Remarks = &remarks
	}
	if req.StartDate != "" {
		start, err := leave.ParseDate(req.StartDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		decision.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := leave.ParseDate(req.EndDate)
		if err != nil {
			return leave.Response{}, leave.ErrInvalidDateRange
		}
		decision.EndDate = &end
	}

	// Replays of the same link re-apply the decision; last write wins.
	prev, updated, err := l.LeaveRequestRepository.ApplyDecision(ctx, req.ID, decision, false)
	if err != nil {
		return leave.Response{}, err
	}

	l.notifyRequester(ctx, prev, updated)

	return leave.ToResponse(updated), nil
}

func mapTokenError(err error) error {
	if err == jwt.ErrTokenExpired {
		return auth.ErrTokenExpired
	}
	return auth.ErrInvalidToken
}

// notifyApprover emails the configured admin about a new request with
// quick-action links. Failures are logged, never returned: the request is
// already committed.
func (l *LeaveServiceImpl) notifyApprover(ctx context.Context, request leave.Request) {
	to := l.adminEmail
	if to == "" {
		admin, err := l.UserRepository.GetFirstByRole(ctx, user.RoleSysadmin)
		if err != nil {
			slog.Warn("No admin email configured and no sysadmin found, skipping notification",
				"leave_request_id", request.ID, "error", err)
			return
		}
		to = admin.Email
	}

	token, err := l.jwtService.GenerateQuickActionToken(request.ID)
	if err != nil {
		slog.Error("Failed to generate quick action token", "leave_request_id", request.ID, "error", err)
		return
	}

	linkBase := fmt.Sprintf("%s/api/v1/leaves/%s/quick-action", l.backendURL, request.ID)
	data := email.LeaveRequestData{
		RequesterName:  request.UserName,
		RequesterEmail: request.UserEmail,
		LeaveType:      request.LeaveType,
		Reason:         request.Reason,
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		Days:           request.Days(),
		ApproveLink:    fmt.Sprintf("%s?action=approved&token=%s", linkBase, token),
		RejectLink:     fmt.Sprintf("%s?action=rejected&token=%s", linkBase, token),
	}

	if err := l.emailService.SendLeaveRequestNotification(to, data); err != nil {
		slog.Error("Failed to send leave request notification", "leave_request_id", request.ID, "error", err)
	}
}

// notifyRequester emails the requester about the decision, including the
// originally requested dates when the approver changed them.
func (l *LeaveServiceImpl) notifyRequester(ctx context.Context, prev, updated leave.Request) {
	approverName := ""
	if updated.ApproverName != nil {
		approverName = *updated.ApproverName
	}
	remarks := ""
	if updated.Remarks != nil {
		remarks = *updated.Remarks
	}

	data := email.LeaveStatusData{
		RequesterName:     updated.UserName,
		Status:            string(updated.Status),
		ApproverName:      approverName,
		Remarks:           remarks,
		LeaveType:         updated.LeaveType,
		Reason:            updated.Reason,
		StartDate:         updated.StartDate,
		EndDate:           updated.EndDate,
		Days:              updated.Days(),
		OriginalStartDate: prev.StartDate,
		OriginalEndDate:   prev.EndDate,
		OriginalDays:      prev.Days(),
		DatesModified:     !prev.StartDate.Equal(updated.StartDate) || !prev.EndDate.Equal(updated.EndDate),
	}

	if err := l.emailService.SendLeaveStatusUpdate(updated.UserEmail, data); err != nil {
		slog.Error("Failed to send leave status update", "leave_request_id", updated.ID, "error", err)
	}
}
