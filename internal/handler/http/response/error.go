package response

import (
	"errors"
	"net/http"

	"github.com/attendly/leave-backend-go/internal/domain/attendance"
	"github.com/attendly/leave-backend-go/internal/domain/auth"
	"github.com/attendly/leave-backend-go/internal/domain/leave"
	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/attendly/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrInvalidState):
		Unauthorized(w, "Invalid OAuth state")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Username or email already registered")
	case errors.Is(err, user.ErrCannotCreateSysadmin):
		Forbidden(w, "Admins cannot create sysadmin users")
	case errors.Is(err, user.ErrApproverAccessRequired),
		errors.Is(err, user.ErrSysadminAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrAlreadyPending):
		Conflict(w, "Leave request is already pending")
	case errors.Is(err, leave.ErrRemarksRequired):
		BadRequest(w, "Remarks are required when rejecting", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrInvalidStatus):
		BadRequest(w, "Invalid leave request status", nil)
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, "Unauthorized access to leave request")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoLoginToday):
		BadRequest(w, "No login recorded for today", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
