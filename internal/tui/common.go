package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/focusbox/internal/library"
	"github.com/sadopc/focusbox/internal/playback"
)

// viewState represents the currently active view.
type viewState int

const (
	viewPlayer viewState = iota
	viewTimer
	viewTasks
	viewStats
	viewSettings
)

var viewNames = []string{"Player", "Timer", "Tasks", "Stats", "Settings"}

// --- Messages ---

type tickMsg time.Time

// libraryMsg delivers the track collection loaded at startup.
type libraryMsg struct {
	tracks []library.Track
	err    error
}

// playResultMsg is the outcome of an asynchronous play request.
type playResultMsg struct {
	err error
}

// trackLoadedMsg reports that the engine finished loading a track.
type trackLoadedMsg struct {
	index int
	err   error
}

// progressMsg carries polled engine position/duration, in seconds.
type progressMsg struct {
	pos float64
	dur float64
}

// engineEventMsg wraps an asynchronous playback engine event.
type engineEventMsg struct {
	event playback.Event
}

// timerAutoResetMsg fires the delayed reset after timer completion. seq
// guards against a reset that the user already superseded.
type timerAutoResetMsg struct {
	seq int
}

// settingsSavedMsg announces that persisted settings changed so live views
// reload them without a restart.
type settingsSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatTrackTime renders seconds as "m:ss": minutes unpadded, seconds
// zero-padded, floor truncation.
func formatTrackTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// formatClock renders a countdown as "MM:SS".
func formatClock(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func formatMinutes(mins int64) string {
	h := mins / 60
	m := mins % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}
