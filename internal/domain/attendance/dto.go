package attendance

import (
	"time"

	"github.com/attendly/leave-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

var validStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusOnLeave),
}

type MarkRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (r *MarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidDate(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date in YYYY-MM-DD format",
		})
	}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, half_day, on_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRequest struct {
	ID         string     `json:"-"`
	Status     *string    `json:"status,omitempty"`
	LoginTime  *time.Time `json:"login_time,omitempty"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, half_day, on_leave",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRequest struct {
	UserID   string
	FromDate string
	ToDate   string
}

func (r *ListRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FromDate != "" && !validator.IsValidDate(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a valid date in YYYY-MM-DD format",
		})
	}
	if r.ToDate != "" && !validator.IsValidDate(r.ToDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name,omitempty"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	LoginTime  *time.Time `json:"login_time,omitempty"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToResponse converts a Record entity into its API representation.
func ToResponse(r Record) Response {
	return Response{
		ID:         r.ID,
		UserID:     r.UserID,
		UserName:   r.UserName,
		Date:       r.Date.UTC().Format(dateLayout),
		Status:     string(r.Status),
		LoginTime:  r.LoginTime,
		LogoutTime: r.LogoutTime,
		CreatedAt:  r.CreatedAt,
	}
}

// ParseDate parses the wire date format used on attendance endpoints.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
