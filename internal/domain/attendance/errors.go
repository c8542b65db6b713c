package attendance

import "errors"

var (
	ErrNotFound     = errors.New("attendance record not found")
	ErrNoLoginToday = errors.New("no login recorded for today")
)
