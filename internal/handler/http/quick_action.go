package http

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var quickActionFS embed.FS

// QuickActionHandler serves the token-gated approve/reject pages linked from
// notification emails. Everything here renders HTML, never JSON: the audience
// is an approver clicking a link in their mail client.
type QuickActionHandler struct {
	leaveService leave.LeaveService
	templates    *template.Template
}

func NewQuickActionHandler(leaveService leave.LeaveService) (*QuickActionHandler, error) {
	tmpl, err := template.ParseFS(quickActionFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &QuickActionHandler{
		leaveService: leaveService,
		templates:    tmpl,
	}, nil
}

// ShowForm handles GET /api/v1/leaves/{id}/quick-action. It only renders the
// confirmation form; the decision happens on POST.
func (h *QuickActionHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query := r.URL.Query()

	view, err := h.leaveService.GetForQuickAction(r.Context(), id, query.Get("token"), query.Get("action"))
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, http.StatusOK, "quick_action_form.html", map[string]interface{}{
		"Request": view.Request,
		"Action":  view.Action,
		"Token":   query.Get("token"),
	})
}

// Decide handles POST /api/v1/leaves/{id}/quick-action with the submitted form.
func (h *QuickActionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, auth.ErrInvalidToken)
		return
	}

	req := leave.QuickActionDecision{
		ID:        chi.URLParam(r, "id"),
		Token:     r.PostFormValue("token"),
		Action:    r.PostFormValue("action"),
		Remarks:   r.PostFormValue("remarks"),
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}

	decided, err := h.leaveService.DecideViaToken(r.Context(), req)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.render(w, http.StatusOK, "quick_action_result.html", map[string]interface{}{
		"Request": decided,
	})
}

func (h *QuickActionHandler) renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		h.render(w, http.StatusUnauthorized, "quick_action_error.html", map[string]interface{}{
			"Title":   "Link Expired",
			"Message": "This approval link has expired. Please sign in to the dashboard to process the request.",
		})
	case errors.Is(err, leave.ErrRemarksRequired):
		h.render(w, http.StatusBadRequest, "quick_action_error.html", map[string]interface{}{
			"Title":   "Remarks Required",
			"Message": "A rejection needs remarks. Go back and fill in the remarks field.",
		})
	default:
		// Invalid, tampered and not-found all collapse into one page.
		h.render(w, http.StatusBadRequest, "quick_action_error.html", map[string]interface{}{
			"Title":   "Invalid Link",
			"Message": "This approval link is invalid. Please sign in to the dashboard to process the request.",
		})
	}
}

func (h *QuickActionHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Failed to render quick action page", "template", name, "error", err)
	}
}
