package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/attendly/leave-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Service defines the interface for sending notification emails
type Service interface {
	SendWelcome(to, fullName, username, password string) error
	SendLeaveRequestNotification(to string, data LeaveRequestData) error
	SendLeaveStatusUpdate(to string, data LeaveStatusData) error
}

// LeaveRequestData feeds the new-request notification sent to the approver.
type LeaveRequestData struct {
	RequesterName  string
	RequesterEmail string
	LeaveType      string
	Reason         string
	StartDate      time.Time
	EndDate        time.Time
	Days           int
	ApproveLink    string
	RejectLink     string
}

// LeaveStatusData feeds the decision notification sent back to the requester.
// Original* hold the dates as submitted; Start/End hold the decided dates.
type LeaveStatusData struct {
	RequesterName     string
	Status            string
	ApproverName      string
	Remarks           string
	LeaveType         string
	Reason            string
	StartDate         time.Time
	EndDate           time.Time
	Days              int
	OriginalStartDate time.Time
	OriginalEndDate   time.Time
	OriginalDays      int
	DatesModified     bool
}

type serviceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewService creates a new email service instance
func NewService(cfg config.SMTPConfig) (Service, error) {
	tmpl, err := template.New("email").Funcs(template.FuncMap{
		"formatDate": formatDate,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &serviceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// formatDate renders dates the way the rest of the product displays them.
func formatDate(t time.Time) string {
	return t.UTC().Format("02/01/2006")
}

type welcomeEmailData struct {
	FullName string
	Username string
	Password string
}

// SendWelcome sends the account credentials to a newly created user
func (s *serviceImpl) SendWelcome(to, fullName, username, password string) error {
	data := welcomeEmailData{
		FullName: fullName,
		Username: username,
		Password: password,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "welcome.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Welcome - Your Account Details", body.String())
}

// SendLeaveRequestNotification notifies the approver about a new leave request
func (s *serviceImpl) SendLeaveRequestNotification(to string, data LeaveRequestData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("New Leave Request from %s", data.RequesterName)
	return s.sendHTML(to, subject, body.String())
}

// SendLeaveStatusUpdate notifies the requester that their request was decided
func (s *serviceImpl) SendLeaveStatusUpdate(to string, data LeaveStatusData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_status.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Your Leave Request Has Been %s", capitalize(data.Status))
	return s.sendHTML(to, subject, body.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func (s *serviceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
