package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

// Record is one user's attendance for one calendar date. (user_id, date) is
// unique; marking the same date again overwrites the row.
type Record struct {
	ID         string
	UserID     string
	Date       time.Time
	Status     Status
	LoginTime  *time.Time
	LogoutTime *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	UserName string
}
