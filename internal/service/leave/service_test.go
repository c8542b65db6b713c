package leave

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/pkg/email"
	"github.com/attendly/leave-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	requests map[string]leave.Request
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.Request)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, r leave.Request) (leave.Request, error) {
	f.nextID++
	r.ID = string(rune('a' + f.nextID - 1))
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if r.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		if filter.OverlapStart != nil && filter.OverlapEnd != nil {
			if r.StartDate.After(*filter.OverlapEnd) || r.EndDate.Before(*filter.OverlapStart) {
				continue
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, params leave.UpdateParams) (leave.Request, error) {
	r, ok := f.requests[params.ID]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if params.StartDate != nil {
		r.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		r.EndDate = *params.EndDate
	}
	if params.LeaveType != nil {
		r.LeaveType = *params.LeaveType
	}
	if params.Reason != nil {
		r.Reason = *params.Reason
	}
	r.UpdatedAt = time.Now()
	f.requests[params.ID] = r
	return r, nil
}

func (f *fakeLeaveRepo) ApplyDecision(ctx context.Context, id string, d leave.Decision, requirePending bool) (leave.Request, leave.Request, error) {
	prev, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.Request{}, leave.ErrRequestNotFound
	}
	if requirePending && prev.Status != leave.StatusPending {
		return leave.Request{}, leave.Request{}, leave.ErrAlreadyProcessed
	}

	updated := prev
	updated.Status = d.Outcome
	updated.ApprovedBy = &d.ApproverID
	updated.ApprovedAt = &d.DecidedAt
	updated.Remarks = d.Remarks
	if d.StartDate != nil {
		updated.StartDate = *d.StartDate
	}
	if d.EndDate != nil {
		updated.EndDate = *d.EndDate
	}
	if updated.EndDate.Before(updated.StartDate) {
		return leave.Request{}, leave.Request{}, leave.ErrInvalidDateRange
	}
	updated.UpdatedAt = time.Now()
	f.requests[id] = updated
	return prev, updated, nil
}

func (f *fakeLeaveRepo) ClearDecision(ctx context.Context, id string) (leave.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	if r.Status == leave.StatusPending {
		return leave.Request{}, leave.ErrAlreadyPending
	}
	r.Status = leave.StatusPending
	r.ApprovedBy = nil
	r.ApprovedAt = nil
	r.Remarks = nil
	r.UpdatedAt = time.Now()
	f.requests[id] = r
	return r, nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetFirstByRole(ctx context.Context, role user.Role) (user.User, error) {
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, params user.UpdateUserParams) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return user.ErrUserNotFound
}

type fakeEmailService struct {
	statusUpdates []email.LeaveStatusData
	notifications []email.LeaveRequestData
	welcomes      []string
}

func (f *fakeEmailService) SendWelcome(to, fullName, username, password string) error {
	f.welcomes = append(f.welcomes, to)
	return nil
}

func (f *fakeEmailService) SendLeaveRequestNotification(to string, data email.LeaveRequestData) error {
	f.notifications = append(f.notifications, data)
	return nil
}

func (f *fakeEmailService) SendLeaveStatusUpdate(to string, data email.LeaveStatusData) error {
	f.statusUpdates = append(f.statusUpdates, data)
	return nil
}

func newTestService(t *testing.T) (leave.LeaveService, *fakeLeaveRepo, *fakeUserRepo, *fakeEmailService, jwt.Service) {
	t.Helper()
	leaveRepo := newFakeLeaveRepo()
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: "sys-1", Email: "sysadmin@example.com", FullName: "System Admin", Role: user.RoleSysadmin, IsActive: true},
	}}
	emailSvc := &fakeEmailService{}
	jwtSvc := jwt.NewJWTService("test-secret", "1h", "168h")
	svc := NewLeaveService(leaveRepo, userRepo, jwtSvc, emailSvc, "admin@example.com", "http://localhost:8080")
	return svc, leaveRepo, userRepo, emailSvc, jwtSvc
}

var (
	approverCaller = user.CallerContext{ID: "adm-1", Role: user.RoleAdmin}
	ownerCaller    = user.CallerContext{ID: "usr-1", Role: user.RoleUser}
	otherCaller    = user.CallerContext{ID: "usr-2", Role: user.RoleUser}
)

func submit(t *testing.T, svc leave.LeaveService, caller user.CallerContext, start, end string) leave.Response {
	t.Helper()
	resp, err := svc.Submit(context.Background(), caller, leave.SubmitRequest{
		StartDate: start,
		EndDate:   end,
		LeaveType: "annual",
		Reason:    "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	svc, _, _, emailSvc, _ := newTestService(t)

	resp := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 5, resp.Days)
	assert.Nil(t, resp.ApprovedBy)
	assert.Nil(t, resp.Remarks)

	require.Len(t, emailSvc.notifications, 1)
	notif := emailSvc.notifications[0]
	assert.Equal(t, 5, notif.Days)
	assert.Contains(t, notif.ApproveLink, "action=approved")
	assert.Contains(t, notif.RejectLink, "action=rejected")
}

func TestSubmitRejectsInvalidDateRange(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), ownerCaller, leave.SubmitRequest{
		StartDate: "2025-06-06",
		EndDate:   "2025-06-02",
		LeaveType: "annual",
		Reason:    "family trip",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestDecideApprove(t *testing.T) {
	svc, _, _, emailSvc, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	resp, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{
		ID:     created.ID,
		Action: "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, approverCaller.ID, *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)

	require.Len(t, emailSvc.statusUpdates, 1)
	assert.Equal(t, "approved", emailSvc.statusUpdates[0].Status)
	assert.False(t, emailSvc.statusUpdates[0].DatesModified)
}

func TestDecideRejectRequiresRemarks(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{
		ID:     created.ID,
		Action: "rejected",
	})
	assert.ErrorIs(t, err, leave.ErrRemarksRequired)

	remarks := "insufficient coverage that week"
	resp, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{
		ID:      created.ID,
		Action:  "rejected",
		Remarks: &remarks,
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	require.NotNil(t, resp.Remarks)
	assert.Equal(t, remarks, *resp.Remarks)
}

func TestDecideTwiceFails(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestDecideRequiresApproverRole(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.Decide(context.Background(), ownerCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)
}

func TestDecideWithModifiedDates(t *testing.T) {
	svc, _, _, emailSvc, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	newStart, newEnd := "2025-06-03", "2025-06-05"
	resp, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{
		ID:        created.ID,
		Action:    "approved",
		StartDate: &newStart,
		EndDate:   &newEnd,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-03", resp.StartDate)
	assert.Equal(t, "2025-06-05", resp.EndDate)
	assert.Equal(t, 3, resp.Days)

	require.Len(t, emailSvc.statusUpdates, 1)
	update := emailSvc.statusUpdates[0]
	assert.True(t, update.DatesModified)
	assert.Equal(t, 5, update.OriginalDays)
	assert.Equal(t, 3, update.Days)
}

func TestWithdrawReturnsRequestToPending(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	require.NoError(t, err)

	resp, err := svc.Withdraw(context.Background(), approverCaller, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.ApprovedBy)
	assert.Nil(t, resp.ApprovedAt)
	assert.Nil(t, resp.Remarks)

	// The cycle is repeatable: the request can be decided again.
	_, err = svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	require.NoError(t, err)
}

func TestWithdrawPendingFails(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.Withdraw(context.Background(), approverCaller, created.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyPending)
}

func TestListScopesRegularUsersToThemselves(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")
	submit(t, svc, otherCaller, "2025-07-01", "2025-07-03")

	// Asking for someone else's requests still returns only your own.
	responses, err := svc.List(context.Background(), ownerCaller, leave.ListRequest{UserID: otherCaller.ID})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, ownerCaller.ID, responses[0].UserID)

	responses, err = svc.List(context.Background(), approverCaller, leave.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
}

func TestListFiltersByStatusAndOverlap(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	first := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")
	submit(t, svc, ownerCaller, "2025-08-01", "2025-08-05")

	_, err := svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: first.ID, Action: "approved"})
	require.NoError(t, err)

	responses, err := svc.List(context.Background(), approverCaller, leave.ListRequest{Statuses: []string{"approved"}})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, first.ID, responses[0].ID)

	// Range touching only the June request's last day still matches.
	responses, err = svc.List(context.Background(), approverCaller, leave.ListRequest{
		FromDate: "2025-06-06",
		ToDate:   "2025-06-30",
	})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, first.ID, responses[0].ID)
}

func TestUpdateOwnerOnlyWhilePending(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	newReason := "updated reason"
	_, err := svc.Update(context.Background(), otherCaller, leave.UpdateRequest{ID: created.ID, Reason: &newReason})
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	resp, err := svc.Update(context.Background(), ownerCaller, leave.UpdateRequest{ID: created.ID, Reason: &newReason})
	require.NoError(t, err)
	assert.Equal(t, newReason, resp.Reason)

	_, err = svc.Decide(context.Background(), approverCaller, leave.DecideRequest{ID: created.ID, Action: "approved"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), ownerCaller, leave.UpdateRequest{ID: created.ID, Reason: &newReason})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestDeletePermissions(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	err := svc.Delete(context.Background(), otherCaller, created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	// Admins may decide but not delete other users' requests.
	err = svc.Delete(context.Background(), approverCaller, created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)

	err = svc.Delete(context.Background(), user.CallerContext{ID: "sys-1", Role: user.RoleSysadmin}, created.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), ownerCaller, created.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotFound)
}

func TestQuickActionDecide(t *testing.T) {
	svc, _, _, emailSvc, jwtSvc := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	token, err := jwtSvc.GenerateQuickActionToken(created.ID)
	require.NoError(t, err)

	resp, err := svc.DecideViaToken(context.Background(), leave.QuickActionDecision{
		ID:     created.ID,
		Token:  token,
		Action: "approved",
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	// Attributed to the first sysadmin since the link carries no session.
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "sys-1", *resp.ApprovedBy)

	require.Len(t, emailSvc.statusUpdates, 1)
}

func TestQuickActionReplayConverges(t *testing.T) {
	svc, _, _, _, jwtSvc := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	token, err := jwtSvc.GenerateQuickActionToken(created.ID)
	require.NoError(t, err)

	decision := leave.QuickActionDecision{ID: created.ID, Token: token, Action: "approved"}

	first, err := svc.DecideViaToken(context.Background(), decision)
	require.NoError(t, err)

	second, err := svc.DecideViaToken(context.Background(), decision)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.StartDate, second.StartDate)
	assert.Equal(t, first.EndDate, second.EndDate)
}

func TestQuickActionTokenScopedToRequest(t *testing.T) {
	svc, _, _, _, jwtSvc := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")
	other := submit(t, svc, otherCaller, "2025-07-01", "2025-07-03")

	token, err := jwtSvc.GenerateQuickActionToken(other.ID)
	require.NoError(t, err)

	_, err = svc.DecideViaToken(context.Background(), leave.QuickActionDecision{
		ID:     created.ID,
		Token:  token,
		Action: "approved",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestQuickActionRejectRequiresRemarks(t *testing.T) {
	svc, _, _, _, jwtSvc := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	token, err := jwtSvc.GenerateQuickActionToken(created.ID)
	require.NoError(t, err)

	_, err = svc.DecideViaToken(context.Background(), leave.QuickActionDecision{
		ID:     created.ID,
		Token:  token,
		Action: "rejected",
	})
	assert.ErrorIs(t, err, leave.ErrRemarksRequired)
}

func TestQuickActionExpiredTokenRejected(t *testing.T) {
	svc, _, _, emailSvc, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	// Same signing key, but the token's validity window ended months ago.
	staleJWT := jwt.NewJWTService("test-secret", "1h", "-4800h")
	token, err := staleJWT.GenerateQuickActionToken(created.ID)
	require.NoError(t, err)

	_, err = svc.GetForQuickAction(context.Background(), created.ID, token, "approved")
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	_, err = svc.DecideViaToken(context.Background(), leave.QuickActionDecision{
		ID:     created.ID,
		Token:  token,
		Action: "approved",
	})
	assert.ErrorIs(t, err, auth.ErrTokenExpired)

	got, err := svc.Get(context.Background(), ownerCaller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
	assert.Len(t, emailSvc.statusUpdates, 0)
}

func TestQuickActionGarbageTokenInvalid(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	_, err := svc.GetForQuickAction(context.Background(), created.ID, "not-a-token", "approved")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestQuickActionForm(t *testing.T) {
	svc, _, _, _, jwtSvc := newTestService(t)
	created := submit(t, svc, ownerCaller, "2025-06-02", "2025-06-06")

	token, err := jwtSvc.GenerateQuickActionToken(created.ID)
	require.NoError(t, err)

	view, err := svc.GetForQuickAction(context.Background(), created.ID, token, "rejected")
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.Request.ID)
	assert.Equal(t, "rejected", view.Action)
	// Looking at the form never mutates the request.
	got, err := svc.Get(context.Background(), ownerCaller, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}
