package store

import "time"

// FocusSession is one run of the countdown timer.
type FocusSession struct {
	ID          int64
	Minutes     int
	Status      string // running, completed, cancelled
	StartedAt   time.Time
	CompletedAt *time.Time
}

type Setting struct {
	Key   string
	Value string
}

// DailyFocus aggregates completed focus minutes per day.
type DailyFocus struct {
	Date         string
	TotalMinutes int64
	SessionCount int
}
