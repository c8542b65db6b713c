package http

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLeaveService scripts the two token-gated operations; the JSON surface
// is not under test here.
type stubLeaveService struct {
	view      leave.QuickActionView
	viewErr   error
	decided   leave.Response
	decideErr error

	gotDecision leave.QuickActionDecision
}

func (s *stubLeaveService) Submit(ctx context.Context, caller user.CallerContext, req leave.SubmitRequest) (leave.Response, error) {
	return leave.Response{}, nil
}

func (s *stubLeaveService) Get(ctx context.Context, caller user.CallerContext, id string) (leave.Response, error) {
	return leave.Response{}, nil
}

func (s *stubLeaveService) List(ctx context.Context, caller user.CallerContext, req leave.ListRequest) ([]leave.Response, error) {
	return nil, nil
}

func (s *stubLeaveService) Decide(ctx context.Context, caller user.CallerContext, req leave.DecideRequest) (leave.Response, error) {
	return leave.Response{}, nil
}

func (s *stubLeaveService) Withdraw(ctx context.Context, caller user.CallerContext, id string) (leave.Response, error) {
	return leave.Response{}, nil
}

func (s *stubLeaveService) Update(ctx context.Context, caller user.CallerContext, req leave.UpdateRequest) (leave.Response, error) {
	return leave.Response{}, nil
}

func (s *stubLeaveService) Delete(ctx context.Context, caller user.CallerContext, id string) error {
	return nil
}

func (s *stubLeaveService) GetForQuickAction(ctx context.Context, id, token, action string) (leave.QuickActionView, error) {
	return s.view, s.viewErr
}

func (s *stubLeaveService) DecideViaToken(ctx context.Context, req leave.QuickActionDecision) (leave.Response, error) {
	s.gotDecision = req
	return s.decided, s.decideErr
}

func newQuickActionRouter(t *testing.T, svc leave.LeaveService) *chi.Mux {
	t.Helper()
	handler, err := NewQuickActionHandler(svc)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/leaves/{id}/quick-action", handler.ShowForm)
	r.Post("/leaves/{id}/quick-action", handler.Decide)
	return r
}

func TestQuickActionFormRendered(t *testing.T) {
	svc := &stubLeaveService{
		view: leave.QuickActionView{
			Request: leave.Response{
				ID:        "req-1",
				UserName:  "Jane Doe",
				StartDate: "2025-06-02",
				EndDate:   "2025-06-06",
				Days:      5,
				LeaveType: "annual",
				Reason:    "family trip",
				Status:    "pending",
			},
			Action: "approved",
		},
	}
	router := newQuickActionRouter(t, svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/leaves/req-1/quick-action?action=approved&token=tok", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "2025-06-02")
	assert.Contains(t, body, "Confirm Approval")
}

func TestQuickActionExpiredTokenPage(t *testing.T) {
	svc := &stubLeaveService{viewErr: auth.ErrTokenExpired}
	router := newQuickActionRouter(t, svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/leaves/req-1/quick-action?action=approved&token=old", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, 401, rec.Code)
	assert.Contains(t, rec.Body.String(), "Link Expired")
}

func TestQuickActionInvalidTokenPage(t *testing.T) {
	svc := &stubLeaveService{viewErr: auth.ErrInvalidToken}
	router := newQuickActionRouter(t, svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/leaves/req-1/quick-action?action=approved&token=bad", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid Link")
	assert.NotContains(t, body, "Link Expired")
}

func TestQuickActionDecidePostsForm(t *testing.T) {
	svc := &stubLeaveService{
		decided: leave.Response{
			ID:        "req-1",
			UserName:  "Jane Doe",
			StartDate: "2025-06-03",
			EndDate:   "2025-06-05",
			Days:      3,
			Status:    "approved",
		},
	}
	router := newQuickActionRouter(t, svc)

	form := url.Values{
		"token":      {"tok"},
		"action":     {"approved"},
		"start_date": {"2025-06-03"},
		"end_date":   {"2025-06-05"},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/leaves/req-1/quick-action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "approved")

	assert.Equal(t, "req-1", svc.gotDecision.ID)
	assert.Equal(t, "tok", svc.gotDecision.Token)
	assert.Equal(t, "2025-06-03", svc.gotDecision.StartDate)
}
