package leave

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Decision is the outcome an approver applies to a pending request.
// Nil dates keep the dates stored on the request.
type Decision struct {
	Outcome    Status // StatusApproved or StatusRejected
	ApproverID string
	Remarks    *string
	StartDate  *time.Time
	EndDate    *time.Time
	DecidedAt  time.Time
}

// Request is a leave request. Invariant: Status == pending exactly when
// ApprovedBy, ApprovedAt and Remarks are all nil.
type Request struct {
	ID         string
	UserID     string
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Reason     string
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	Remarks    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for display, not stored on the row.
	UserName     string
	UserEmail    string
	ApproverName *string
}

// IsPending reports whether the request still awaits a decision.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}

// Days returns the inclusive calendar length of the requested period.
func (r *Request) Days() int {
	return DayCount(r.StartDate, r.EndDate)
}

// DayCount counts inclusive calendar days between two dates. Both endpoints
// are normalized to UTC civil dates first, so the result does not depend on
// the time-of-day or zone the values were parsed in. DayCount(d, d) == 1.
func DayCount(start, end time.Time) int {
	s := civil(start)
	e := civil(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func civil(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
