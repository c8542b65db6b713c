package main

import (
	"fmt"
	"log"
	"net/http"

	"time"

	"github.com/attendly/leave-backend-go/internal/config"
	appHTTP "github.com/attendly/leave-backend-go/internal/handler/http"
	"github.com/attendly/leave-backend-go/internal/pkg/cron"
	"github.com/attendly/leave-backend-go/internal/pkg/database"
	"github.com/attendly/leave-backend-go/internal/pkg/email"
	"github.com/attendly/leave-backend-go/internal/pkg/jwt"
	"github.com/attendly/leave-backend-go/internal/pkg/oauth"
	"github.com/attendly/leave-backend-go/internal/repository/postgresql"
	attendanceService "github.com/attendly/leave-backend-go/internal/service/attendance"
	authService "github.com/attendly/leave-backend-go/internal/service/auth"
	dashboardService "github.com/attendly/leave-backend-go/internal/service/dashboard"
	leaveService "github.com/attendly/leave-backend-go/internal/service/leave"
	userService "github.com/attendly/leave-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.QuickActionExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	authSvc := authService.NewAuthService(userRepo, jwtService, googleService)
	userSvc := userService.NewUserService(userRepo, emailService)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, userRepo, jwtService, emailService, cfg.Notification.AdminEmail, cfg.App.BackendURL)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	attendanceJobs := cron.NewAttendanceJobs(attendanceRepo)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("mark-absentees", time.Hour, attendanceJobs.MarkAbsentees)
	scheduler.Start()
	defer scheduler.Stop()

	quickActionHandler, err := appHTTP.NewQuickActionHandler(leaveSvc)
	if err != nil {
		log.Fatal("Failed to initialize quick action handler: ", err)
	}

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(authSvc, cfg.App.FrontendURL),
		User:        appHTTP.NewUserHandler(userSvc),
		Leave:       appHTTP.NewLeaveHandler(leaveSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
		QuickAction: quickActionHandler,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
