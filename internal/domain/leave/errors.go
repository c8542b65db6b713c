package leave

import "errors"

var (
	ErrRequestNotFound    = errors.New("leave request not found")
	ErrAlreadyProcessed   = errors.New("leave request has already been processed")
	ErrRemarksRequired    = errors.New("remarks are required when rejecting a leave request")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidStatus      = errors.New("invalid leave request status")
	ErrUnauthorizedAccess = errors.New("unauthorized access to leave request")
	ErrAlreadyPending     = errors.New("leave request is already pending")
)
