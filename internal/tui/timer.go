package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/focusbox/internal/notify"
	"github.com/sadopc/focusbox/internal/store"
)

// autoResetDelay is how long the completion message stays on screen before
// the timer resets itself.
const autoResetDelay = 4 * time.Second

type timerModel struct {
	store    *store.Store
	notifier notify.Notifier
	width    int
	height   int

	cd      countdown
	presets []int

	presetCursor  int
	appliedPreset int // index into presets, -1 when none is highlighted

	sessionID int64
	resetSeq  int // invalidates a pending auto-reset
}

func newTimerModel(s *store.Store, n notify.Notifier) timerModel {
	m := timerModel{
		store:         s,
		notifier:      n,
		appliedPreset: -1,
	}
	m.loadSettings()
	m.cd = newCountdown(s.GetSettingInt("timer_default", 60))
	return m
}

func (t *timerModel) loadSettings() {
	t.presets = []int{
		t.store.GetSettingInt("timer_preset_1", 60),
		t.store.GetSettingInt("timer_preset_2", 30),
		t.store.GetSettingInt("timer_preset_3", 15),
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if t.cd.tick() {
			return t.complete()
		}
		return t, nil

	case timerAutoResetMsg:
		// Ignore when the user already reset or retargeted meanwhile.
		if msg.seq == t.resetSeq && t.cd.done() {
			return t.resetTimer()
		}
		return t, nil

	case settingsSavedMsg:
		t.loadSettings()
		t.cd.setDefault(t.store.GetSettingInt("timer_default", 60))
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			return t.startTimer()
		case key.Matches(msg, keys.Stop):
			t.cd.pause()
			return t, nil
		case key.Matches(msg, keys.Reset):
			return t.resetTimer()
		case key.Matches(msg, keys.Left):
			if t.presetCursor > 0 {
				t.presetCursor--
			}
			return t, nil
		case key.Matches(msg, keys.Right):
			if t.presetCursor < len(t.presets)-1 {
				t.presetCursor++
			}
			return t, nil
		case key.Matches(msg, keys.Enter):
			return t.applyPreset(t.presetCursor)
		}
	}
	return t, nil
}

func (t timerModel) startTimer() (timerModel, tea.Cmd) {
	minutes, seconds := t.cd.remaining()
	if !t.cd.start() {
		return t, nil
	}

	// A paused countdown resumes its existing session; only a fresh start
	// opens a new row.
	if t.sessionID > 0 {
		return t, nil
	}

	// Round up partial minutes for the session record.
	sessionMinutes := minutes
	if seconds > 0 {
		sessionMinutes++
	}
	session, err := t.store.StartSession(sessionMinutes)
	if err != nil {
		logrus.Warnf("record session: %v", err)
	} else {
		t.sessionID = session.ID
	}
	return t, nil
}

// cancelSession closes out the live session row, if any. Pausing keeps the
// session open, so this must fire for paused countdowns too.
func (t *timerModel) cancelSession() {
	if t.sessionID == 0 {
		return
	}
	if err := t.store.CancelSession(t.sessionID); err != nil {
		logrus.Warnf("cancel session: %v", err)
	}
	t.sessionID = 0
}

func (t timerModel) resetTimer() (timerModel, tea.Cmd) {
	t.cancelSession()
	t.cd.reset()
	t.appliedPreset = -1
	t.resetSeq++
	return t, nil
}

// applyPreset retargets the countdown and moves the single preset highlight.
func (t timerModel) applyPreset(i int) (timerModel, tea.Cmd) {
	if i < 0 || i >= len(t.presets) {
		return t, nil
	}
	t.cancelSession()
	t.cd.setPreset(t.presets[i])
	t.appliedPreset = i
	t.resetSeq++
	return t, nil
}

// complete runs the completion sequence: record the session, fire the
// optional notification and chime, and schedule the delayed auto-reset.
// Notification failures are logged and swallowed.
func (t timerModel) complete() (timerModel, tea.Cmd) {
	if t.sessionID > 0 {
		if err := t.store.CompleteSession(t.sessionID); err != nil {
			logrus.Warnf("complete session: %v", err)
		}
		t.sessionID = 0
	}

	seq := t.resetSeq
	notifier := t.notifier
	notifyCmd := func() tea.Msg {
		notifier.Chime()
		if err := notifier.Notify("focusbox", "Focus session complete"); err != nil {
			logrus.Debugf("notify: %v", err)
		}
		return statusMsg{text: "Focus session complete!"}
	}
	resetCmd := tea.Tick(autoResetDelay, func(time.Time) tea.Msg {
		return timerAutoResetMsg{seq: seq}
	})
	return t, tea.Batch(notifyCmd, resetCmd)
}

func (t timerModel) running() bool { return t.cd.running() }

func (t timerModel) clock() string {
	m, s := t.cd.remaining()
	return formatClock(m, s)
}

func (t timerModel) view() string {
	w := t.width - 4

	title := titleStyle.Render("Focus Timer")

	var display, label string
	switch {
	case t.cd.done():
		display = clockDoneStyle.Width(w - 6).Render("Time's up!")
		label = successStyle.Bold(true).Render("SESSION COMPLETE")
	case t.cd.running():
		display = clockRunningStyle.Width(w - 6).Render(t.clock())
		label = successStyle.Render("●  FOCUSING")
	default:
		display = clockStyle.Width(w - 6).Render(t.clock())
		label = mutedStyle.Render("Ready")
	}

	presetRow := t.renderPresets()

	var controls string
	switch {
	case t.cd.done():
		controls = mutedStyle.Render("resetting…")
	case t.cd.running():
		controls = mutedStyle.Render("x: pause  r: reset")
	default:
		controls = mutedStyle.Render("s: start  r: reset  ←/→ + enter: preset")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		display,
		label,
		"",
		presetRow,
		"",
		controls,
	)

	style := panelStyle
	if t.cd.running() {
		style = activePanelStyle
	}
	return style.Width(w).Render(content)
}

// renderPresets draws the preset shortcuts. At most one carries the applied
// highlight; the cursor is shown separately.
func (t timerModel) renderPresets() string {
	var parts []string
	for i, m := range t.presets {
		label := fmt.Sprintf("%d min", m)
		style := toggleOffStyle
		if i == t.appliedPreset {
			style = toggleOnStyle
		}
		rendered := style.Render(label)
		if i == t.presetCursor {
			rendered = selectedItemStyle.Render("[") + rendered + selectedItemStyle.Render("]")
		} else {
			rendered = " " + rendered + " "
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, "  ")
}
