package usecase

import (
	"context"
	"time"
)

// SystemClock returns the current UTC date.
type SystemClock struct{}

// NewSystemClock creates a new SystemClock.
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Today returns the current date truncated to midnight UTC.
func (SystemClock) Today(context.Context) time.Time {
	return truncateDate(time.Now().UTC())
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
