package http

import (
	"log/slog"
	"os"

	"github.com/attendly/leave-backend-go/internal/config"
	"github.com/attendly/leave-backend-go/internal/handler/http/middleware"
	"github.com/attendly/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Leave       *LeaveHandler
	Attendance  *AttendanceHandler
	Dashboard   *DashboardHandler
	QuickAction *QuickActionHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Get("/google", h.Auth.GoogleLogin)
			r.Get("/google/callback", h.Auth.GoogleCallback)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/me", h.Auth.Me)
			})
		})

		// Token-gated email links: HTML in, HTML out, no session.
		r.Route("/leaves/{id}/quick-action", func(r chi.Router) {
			r.Get("/", h.QuickAction.ShowForm)
			r.Post("/", h.QuickAction.Decide)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Post("/", h.Leave.Submit)
				r.Get("/{id}", h.Leave.Get)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/{id}/decision", h.Leave.Decide)
					r.Post("/{id}/withdraw", h.Leave.Withdraw)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/", h.Attendance.Mark)
				r.Post("/login", h.Attendance.ClockIn)
				r.Post("/logout", h.Attendance.ClockOut)

				// Sysadmin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSysadmin)
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireApprover)
				r.Get("/", h.User.List)
				r.Post("/", h.User.Create)
				r.Put("/{id}", h.User.Update)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSysadmin)
					r.Delete("/{id}", h.User.Delete)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/summary", h.Dashboard.UserSummary)

				// Approver only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/admin", h.Dashboard.AdminStats)
					r.Get("/leave-stats", h.Dashboard.UserLeaveStats)
					r.Get("/leave-trends", h.Dashboard.MonthlyLeaveTrends)
					r.Get("/status-distribution", h.Dashboard.StatusDistribution)
					r.Get("/attendance-overview", h.Dashboard.AttendanceOverview)
				})
			})
		})
	})
	return r
}
