package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/focusbox/internal/library"
	"github.com/sadopc/focusbox/internal/notify"
	"github.com/sadopc/focusbox/internal/playback"
	"github.com/sadopc/focusbox/internal/store"
)

var errTest = errors.New("engine rejected the request")

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testTracks(n int) []library.Track {
	tracks := make([]library.Track, n)
	for i := range tracks {
		tracks[i] = library.Track{
			Path:  string(rune('a'+i)) + ".mp3",
			Title: "Track " + string(rune('A'+i)),
		}
	}
	return tracks
}

// ============================================================
// Countdown state machine
// ============================================================

func TestCountdownDefaults(t *testing.T) {
	cd := newCountdown(60)
	m, s := cd.remaining()
	if m != 60 || s != 0 {
		t.Fatalf("expected 60:00, got %d:%02d", m, s)
	}
	if cd.running() || cd.done() {
		t.Fatal("new countdown should be idle")
	}
}

func TestCountdownTickBorrowsMinute(t *testing.T) {
	cd := newCountdown(60)
	if !cd.start() {
		t.Fatal("start should succeed")
	}
	if cd.tick() {
		t.Fatal("tick should not complete")
	}
	m, s := cd.remaining()
	if m != 59 || s != 59 {
		t.Fatalf("expected 59:59 after one tick, got %d:%02d", m, s)
	}
}

func TestCountdownCompletion(t *testing.T) {
	cd := newCountdown(60)
	cd.minutes, cd.seconds = 0, 1
	cd.start()

	if cd.tick() {
		t.Fatal("0:01 tick should not complete yet")
	}
	if m, s := cd.remaining(); m != 0 || s != 0 {
		t.Fatalf("expected 0:00, got %d:%02d", m, s)
	}
	if !cd.tick() {
		t.Fatal("0:00 tick should complete")
	}
	if !cd.done() {
		t.Fatal("countdown should be done")
	}
	if cd.running() {
		t.Fatal("done countdown is not running")
	}
}

func TestCountdownStartAtZeroIsNoop(t *testing.T) {
	cd := newCountdown(60)
	cd.minutes, cd.seconds = 0, 0
	if cd.start() {
		t.Fatal("start at 0:00 should be rejected")
	}
	if cd.running() {
		t.Fatal("countdown should stay idle")
	}
}

func TestCountdownStartWhileRunningIsNoop(t *testing.T) {
	cd := newCountdown(60)
	cd.start()
	if cd.start() {
		t.Fatal("second start should be rejected")
	}
}

func TestCountdownPausePreservesRemaining(t *testing.T) {
	cd := newCountdown(60)
	cd.start()
	cd.tick()
	cd.pause()

	if cd.running() {
		t.Fatal("paused countdown should not run")
	}
	if cd.tick() {
		t.Fatal("tick while paused should do nothing")
	}
	m, s := cd.remaining()
	if m != 59 || s != 59 {
		t.Fatalf("pause should preserve time, got %d:%02d", m, s)
	}
}

func TestCountdownResetRestoresDefault(t *testing.T) {
	cd := newCountdown(60)
	cd.setPreset(30)
	cd.start()
	cd.tick()
	cd.reset()

	if cd.running() {
		t.Fatal("reset should stop ticking")
	}
	m, s := cd.remaining()
	if m != 60 || s != 0 {
		t.Fatalf("reset should restore default, got %d:%02d", m, s)
	}
}

func TestCountdownSetPreset(t *testing.T) {
	cd := newCountdown(60)
	cd.start()
	cd.setPreset(15)

	if cd.running() {
		t.Fatal("preset should cancel a running countdown")
	}
	m, s := cd.remaining()
	if formatClock(m, s) != "15:00" {
		t.Fatalf("expected 15:00, got %s", formatClock(m, s))
	}

	cd.start()
	cd.tick()
	m, s = cd.remaining()
	if formatClock(m, s) != "14:59" {
		t.Fatalf("expected 14:59 one tick after start, got %s", formatClock(m, s))
	}
}

// ============================================================
// Formatting
// ============================================================

func TestFormatTrackTime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{65.9, "1:05"},
		{3599, "59:59"},
		{-3, "0:00"},
	}
	for _, c := range cases {
		if got := formatTrackTime(c.seconds); got != c.want {
			t.Errorf("formatTrackTime(%v) = %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		m, s int
		want string
	}{
		{60, 0, "60:00"},
		{15, 0, "15:00"},
		{14, 59, "14:59"},
		{0, 5, "00:05"},
	}
	for _, c := range cases {
		if got := formatClock(c.m, c.s); got != c.want {
			t.Errorf("formatClock(%d, %d) = %q, want %q", c.m, c.s, got, c.want)
		}
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := formatMinutes(45); got != "45m" {
		t.Errorf("formatMinutes(45) = %q", got)
	}
	if got := formatMinutes(125); got != "2h 05m" {
		t.Errorf("formatMinutes(125) = %q", got)
	}
}

// ============================================================
// Player model
// ============================================================

func newTestPlayer(n int) playerModel {
	p := newPlayerModel(playback.NewNull(), "", "")
	p.tracks = testTracks(n)
	return p
}

func TestPlayerLoadTrackBounds(t *testing.T) {
	p := newTestPlayer(3)
	p.current = 1

	p, cmd := p.loadTrack(-1)
	if cmd != nil || p.current != 1 {
		t.Fatal("negative index should be ignored")
	}
	p, cmd = p.loadTrack(3)
	if cmd != nil || p.current != 1 {
		t.Fatal("out-of-range index should be ignored")
	}
}

func TestPlayerLoadTrackResetsProgress(t *testing.T) {
	p := newTestPlayer(3)
	p.pos, p.dur = 30, 120

	p, cmd := p.loadTrack(2)
	if p.current != 2 {
		t.Fatalf("current = %d, want 2", p.current)
	}
	if p.pos != 0 || p.dur != 0 {
		t.Fatal("loading a track should reset progress")
	}
	if cmd == nil {
		t.Fatal("loadTrack should issue an engine command")
	}
	if msg, ok := cmd().(trackLoadedMsg); !ok || msg.err != nil {
		t.Fatalf("unexpected load result: %#v", msg)
	}
}

func TestPlayerNextCyclesInOrder(t *testing.T) {
	p := newTestPlayer(3)

	want := []int{1, 2, 0}
	for _, w := range want {
		p, _ = p.playNext()
		if p.current != w {
			t.Fatalf("current = %d, want %d", p.current, w)
		}
	}
}

func TestPlayerPreviousWrapsAround(t *testing.T) {
	p := newTestPlayer(3)

	p, _ = p.playPrevious()
	if p.current != 2 {
		t.Fatalf("previous from 0 should wrap to 2, got %d", p.current)
	}
	p, _ = p.playPrevious()
	if p.current != 1 {
		t.Fatalf("current = %d, want 1", p.current)
	}
}

func TestPlayerShuffleStaysInBounds(t *testing.T) {
	p := newTestPlayer(5)
	p.shuffled = true

	for i := 0; i < 50; i++ {
		p, _ = p.playNext()
		if p.current < 0 || p.current >= 5 {
			t.Fatalf("shuffle picked out-of-range index %d", p.current)
		}
	}
}

func TestPlayerNextOnEmptyLibrary(t *testing.T) {
	p := newTestPlayer(0)
	p, cmd := p.playNext()
	if cmd != nil || p.current != 0 {
		t.Fatal("next on empty library should be a no-op")
	}
}

func TestPlayerToggleFlags(t *testing.T) {
	p := newTestPlayer(3)

	p, _ = p.update(runeKey('s'))
	if !p.shuffled {
		t.Fatal("s should enable shuffle")
	}
	p, _ = p.update(runeKey('s'))
	if p.shuffled {
		t.Fatal("s should disable shuffle again")
	}

	p, _ = p.update(runeKey('r'))
	if !p.repeating {
		t.Fatal("r should enable repeat")
	}
	p, _ = p.update(runeKey('r'))
	if p.repeating {
		t.Fatal("r should disable repeat again")
	}
}

func TestPlayerPlayIsAsync(t *testing.T) {
	p := newTestPlayer(3)

	p, cmd := p.togglePlayPause()
	if !p.loading {
		t.Fatal("play request should mark loading")
	}
	if p.playing {
		t.Fatal("playing must not flip before the engine confirms")
	}
	if cmd == nil {
		t.Fatal("expected a play command")
	}

	msg, ok := cmd().(playResultMsg)
	if !ok {
		t.Fatalf("expected playResultMsg, got %#v", msg)
	}
	p, _ = p.update(msg)
	if p.loading {
		t.Fatal("loading should clear on result")
	}
	if !p.playing {
		t.Fatal("successful play should set playing")
	}
}

func TestPlayerPlayFailureIsSilent(t *testing.T) {
	p := newTestPlayer(3)
	p.loading = true

	p, _ = p.update(playResultMsg{err: errTest})
	if p.loading {
		t.Fatal("loading should clear on failure")
	}
	if p.playing {
		t.Fatal("failed play must leave the player paused")
	}
}

func TestPlayerPauseIsImmediate(t *testing.T) {
	p := newTestPlayer(3)
	p.playing = true

	p, cmd := p.togglePlayPause()
	if p.playing {
		t.Fatal("pause should flip state immediately")
	}
	if cmd == nil {
		t.Fatal("pause still notifies the engine")
	}
}

func TestPlayerToggleWhileLoadingIsNoop(t *testing.T) {
	p := newTestPlayer(3)
	p.loading = true

	p, cmd := p.togglePlayPause()
	if cmd != nil {
		t.Fatal("toggle while loading should be ignored")
	}
}

func TestPlayerSeekUnknownDurationIsNoop(t *testing.T) {
	p := newTestPlayer(3)
	p.pos, p.dur = 10, 0

	p, cmd := p.seekBy(seekStepPercent)
	if cmd != nil || p.pos != 10 {
		t.Fatal("seek with unknown duration should be a no-op")
	}
}

func TestPlayerSeekClamps(t *testing.T) {
	p := newTestPlayer(3)
	p.pos, p.dur = 118, 120

	p, _ = p.seekBy(seekStepPercent)
	if p.pos != 120 {
		t.Fatalf("seek should clamp to duration, got %v", p.pos)
	}

	p.pos = 2
	p, _ = p.seekBy(-seekStepPercent)
	if p.pos != 0 {
		t.Fatalf("seek should clamp to zero, got %v", p.pos)
	}
}

func TestPlayerTrackEndAdvances(t *testing.T) {
	p := newTestPlayer(3)
	p.current = 1

	p, _ = p.handleTrackEnd()
	if p.current != 2 {
		t.Fatalf("track end should advance, got %d", p.current)
	}
}

func TestPlayerTrackEndRepeats(t *testing.T) {
	p := newTestPlayer(3)
	p.current = 1
	p.repeating = true
	p.pos = 180

	p, cmd := p.handleTrackEnd()
	if p.current != 1 {
		t.Fatal("repeat should stay on the same track")
	}
	if p.pos != 0 {
		t.Fatal("repeat should rewind")
	}
	if cmd == nil {
		t.Fatal("repeat should re-issue play")
	}
	if msg, ok := cmd().(playResultMsg); !ok || msg.err != nil {
		t.Fatalf("unexpected repeat result: %#v", msg)
	}
}

func TestPlayerExactlyOneActiveTrack(t *testing.T) {
	p := newTestPlayer(4)

	for i := 0; i < 10; i++ {
		p, _ = p.playNext()
		active := 0
		for j := range p.tracks {
			if j == p.current {
				active++
			}
		}
		if active != 1 {
			t.Fatalf("expected exactly one active track, got %d", active)
		}
	}
}

func TestPlayerProgressPercent(t *testing.T) {
	p := newTestPlayer(1)
	if p.progressPercent() != 0 {
		t.Fatal("unknown duration should report 0")
	}
	p.pos, p.dur = 30, 120
	if got := p.progressPercent(); got != 0.25 {
		t.Fatalf("progressPercent = %v, want 0.25", got)
	}
}

// ============================================================
// Task list
// ============================================================

func TestTaskListAdd(t *testing.T) {
	l := newTaskList()
	if !l.add("write report") {
		t.Fatal("add should accept non-blank text")
	}
	if l.len() != 1 {
		t.Fatalf("len = %d, want 1", l.len())
	}
	if l.items[0].text != "write report" {
		t.Fatalf("text = %q", l.items[0].text)
	}
	if l.items[0].done {
		t.Fatal("new tasks start open")
	}
}

func TestTaskListRejectsBlank(t *testing.T) {
	l := newTaskList()
	if l.add("") || l.add("   ") || l.add("\t\n") {
		t.Fatal("blank input must be rejected")
	}
	if l.len() != 0 {
		t.Fatal("nothing should have been added")
	}
}

func TestTaskListTrimsWhitespace(t *testing.T) {
	l := newTaskList()
	l.add("  tidy desk  ")
	if l.items[0].text != "tidy desk" {
		t.Fatalf("text = %q, want trimmed", l.items[0].text)
	}
}

func TestTaskListToggle(t *testing.T) {
	l := newTaskList()
	l.add("a")
	id := l.items[0].id

	if !l.toggle(id) {
		t.Fatal("toggle should find the task")
	}
	if !l.items[0].done {
		t.Fatal("task should be done")
	}
	l.toggle(id)
	if l.items[0].done {
		t.Fatal("second toggle should reopen")
	}
	if l.toggle(999) {
		t.Fatal("unknown id should report false")
	}
}

func TestTaskListRemove(t *testing.T) {
	l := newTaskList()
	l.add("a")
	l.add("b")
	l.add("c")

	if !l.remove(l.items[1].id) {
		t.Fatal("remove should find the task")
	}
	if l.len() != 2 {
		t.Fatalf("len = %d, want 2", l.len())
	}
	if l.items[0].text != "a" || l.items[1].text != "c" {
		t.Fatal("remaining order should be preserved")
	}
	if l.remove(999) {
		t.Fatal("unknown id should report false")
	}
}

func TestTaskListIDsNeverReused(t *testing.T) {
	l := newTaskList()
	l.add("a")
	first := l.items[0].id
	l.remove(first)
	l.add("b")
	if l.items[0].id <= first {
		t.Fatalf("id %d was reused after %d", l.items[0].id, first)
	}
}

func TestTaskListRemaining(t *testing.T) {
	l := newTaskList()
	l.add("a")
	l.add("b")
	l.add("c")
	l.toggle(l.items[1].id)

	if got := l.remaining(); got != 2 {
		t.Fatalf("remaining = %d, want 2", got)
	}
}

func TestTasksModelCursorAndDelete(t *testing.T) {
	m := newTasksModel()
	m.list.add("a")
	m.list.add("b")
	m.cursor = 1

	m, _ = m.update(runeKey('d'))
	if m.list.len() != 1 {
		t.Fatal("d should delete the task under the cursor")
	}
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp, got %d", m.cursor)
	}
}

func TestTasksModelToggleAtCursor(t *testing.T) {
	m := newTasksModel()
	m.list.add("a")

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.list.items[0].done {
		t.Fatal("enter should toggle the task under the cursor")
	}
}

// ============================================================
// Timer model
// ============================================================

func TestTimerLoadsPresetsFromSettings(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	want := []int{60, 30, 15}
	for i, w := range want {
		if tm.presets[i] != w {
			t.Fatalf("preset %d = %d, want %d", i, tm.presets[i], w)
		}
	}
	if tm.clock() != "60:00" {
		t.Fatalf("clock = %q, want 60:00", tm.clock())
	}
	if tm.appliedPreset != -1 {
		t.Fatal("no preset should be highlighted initially")
	}
}

func TestTimerStartRecordsSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	if !tm.running() {
		t.Fatal("timer should be running")
	}
	if tm.sessionID == 0 {
		t.Fatal("a session should be recorded")
	}

	session, err := s.GetSession(tm.sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if session.Minutes != 60 || session.Status != "running" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestTimerResetCancelsSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	id := tm.sessionID
	tm, _ = tm.update(runeKey('r'))

	if tm.running() {
		t.Fatal("reset should stop the timer")
	}
	if tm.clock() != "60:00" {
		t.Fatalf("clock = %q, want 60:00", tm.clock())
	}
	session, _ := s.GetSession(id)
	if session.Status != "cancelled" {
		t.Fatalf("status = %q, want cancelled", session.Status)
	}
}

func TestTimerPauseResumeKeepsOneSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	id := tm.sessionID
	tm, _ = tm.update(runeKey('x'))
	tm, _ = tm.update(runeKey('s'))

	if tm.sessionID != id {
		t.Fatalf("resume opened a new session: %d then %d", id, tm.sessionID)
	}
	sessions, err := s.ListSessions(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected a single session row, got %d", len(sessions))
	}
	if sessions[0].Status != "running" {
		t.Fatalf("status = %q, want running", sessions[0].Status)
	}
}

func TestTimerResetWhilePausedCancelsSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	id := tm.sessionID
	tm, _ = tm.update(runeKey('x'))
	tm, _ = tm.update(runeKey('r'))

	if tm.sessionID != 0 {
		t.Fatal("reset should drop the session reference")
	}
	session, _ := s.GetSession(id)
	if session.Status != "cancelled" {
		t.Fatalf("status = %q, want cancelled", session.Status)
	}
}

func TestTimerReloadsSavedSettings(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	s.SetSetting("timer_default", "25")
	s.SetSetting("timer_preset_1", "50")
	tm, _ = tm.update(settingsSavedMsg{})

	if tm.presets[0] != 50 {
		t.Fatalf("preset 1 = %d, want 50", tm.presets[0])
	}
	if tm.clock() != "60:00" {
		t.Fatalf("remaining time should be untouched, clock = %q", tm.clock())
	}

	tm, _ = tm.update(runeKey('r'))
	if tm.clock() != "25:00" {
		t.Fatalf("reset should pick up the new default, clock = %q", tm.clock())
	}
}

func TestTimerApplyPreset(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm.presetCursor = 1
	tm, _ = tm.update(tea.KeyMsg{Type: tea.KeyEnter})
	if tm.clock() != "30:00" {
		t.Fatalf("clock = %q, want 30:00", tm.clock())
	}
	if tm.appliedPreset != 1 {
		t.Fatalf("appliedPreset = %d, want 1", tm.appliedPreset)
	}
}

func TestTimerPresetCancelsRunningSession(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	id := tm.sessionID
	tm.presetCursor = 2
	tm, _ = tm.update(tea.KeyMsg{Type: tea.KeyEnter})

	if tm.running() {
		t.Fatal("preset should stop the timer")
	}
	session, _ := s.GetSession(id)
	if session.Status != "cancelled" {
		t.Fatalf("status = %q, want cancelled", session.Status)
	}
}

func TestTimerCompletion(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	id := tm.sessionID

	tm.cd.minutes, tm.cd.seconds = 0, 1
	tm, _ = tm.update(tickMsg(time.Now()))
	if tm.cd.done() {
		t.Fatal("0:01 tick should not complete")
	}
	tm, cmd := tm.update(tickMsg(time.Now()))
	if !tm.cd.done() {
		t.Fatal("0:00 tick should complete")
	}
	if cmd == nil {
		t.Fatal("completion should schedule notification and auto-reset")
	}

	session, _ := s.GetSession(id)
	if session.Status != "completed" {
		t.Fatalf("status = %q, want completed", session.Status)
	}
	if session.CompletedAt == nil {
		t.Fatal("completed_at should be set")
	}
}

func TestTimerAutoReset(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm, _ = tm.update(runeKey('s'))
	tm.cd.minutes, tm.cd.seconds = 0, 1
	tm, _ = tm.update(tickMsg(time.Now()))
	tm, _ = tm.update(tickMsg(time.Now()))

	tm, _ = tm.update(timerAutoResetMsg{seq: tm.resetSeq})
	if tm.cd.done() {
		t.Fatal("auto-reset should leave done state")
	}
	if tm.clock() != "60:00" {
		t.Fatalf("clock = %q, want 60:00 after auto-reset", tm.clock())
	}
}

func TestTimerStaleAutoResetIgnored(t *testing.T) {
	s := newTestStore(t)
	tm := newTimerModel(s, notify.Noop{})

	tm.presetCursor = 1
	tm, _ = tm.update(tea.KeyMsg{Type: tea.KeyEnter})

	// A reset scheduled before the preset change must not fire.
	tm, _ = tm.update(timerAutoResetMsg{seq: tm.resetSeq - 1})
	if tm.clock() != "30:00" {
		t.Fatalf("stale auto-reset should be ignored, clock = %q", tm.clock())
	}
}

// ============================================================
// App model
// ============================================================

func newTestApp(t *testing.T) App {
	t.Helper()
	s := newTestStore(t)
	return NewApp(s, playback.NewNull(), notify.Noop{}, "", "")
}

func TestAppDefaults(t *testing.T) {
	a := newTestApp(t)
	if a.view != viewPlayer {
		t.Fatal("app should open on the player view")
	}
	if a.isFormActive() {
		t.Fatal("no form should be active initially")
	}
}

func TestAppViewSwitching(t *testing.T) {
	a := newTestApp(t)
	a.width, a.height = 100, 40

	model, _ := a.Update(runeKey('2'))
	a = model.(App)
	if a.view != viewTimer {
		t.Fatalf("view = %d, want timer", a.view)
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.view != viewTasks {
		t.Fatalf("tab should advance to tasks, got %d", a.view)
	}
}

func TestAppTabWrapsAround(t *testing.T) {
	a := newTestApp(t)
	a.view = viewSettings

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = model.(App)
	if a.view != viewPlayer {
		t.Fatal("tab from the last view should wrap to the first")
	}
}

func TestAppGlobalPlayPause(t *testing.T) {
	a := newTestApp(t)
	a.player.tracks = testTracks(2)
	a.view = viewTimer

	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeySpace})
	a = model.(App)
	if !a.player.loading {
		t.Fatal("space should reach the player from any view")
	}
	if cmd == nil {
		t.Fatal("expected a play command")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit, got %#v", msg)
	}
}

func TestAppViewSmoke(t *testing.T) {
	a := newTestApp(t)

	if got := a.View(); got != "Loading..." {
		t.Fatalf("zero-size view = %q", got)
	}

	model, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = model.(App)
	for v := viewPlayer; v <= viewSettings; v++ {
		a.view = v
		if a.View() == "" {
			t.Fatalf("view %s rendered empty", viewNames[v])
		}
	}
}

func TestAppRoutesSettingsSave(t *testing.T) {
	s := newTestStore(t)
	a := NewApp(s, playback.NewNull(), notify.Noop{}, "", "")

	s.SetSetting("timer_preset_1", "50")
	model, _ := a.Update(settingsSavedMsg{})
	a = model.(App)

	if a.timer.presets[0] != 50 {
		t.Fatalf("timer preset 1 = %d, want 50 after settings save", a.timer.presets[0])
	}
}

func TestAppStatusExpiry(t *testing.T) {
	a := newTestApp(t)
	a.setStatus("hello", false)
	seq := a.statusSeq

	model, _ := a.Update(statusExpireMsg{seq: seq - 1})
	a = model.(App)
	if a.status == "" {
		t.Fatal("stale expiry must not clear a newer status")
	}

	model, _ = a.Update(statusExpireMsg{seq: seq})
	a = model.(App)
	if a.status != "" {
		t.Fatal("matching expiry should clear the status")
	}
}

func TestAppExportPicker(t *testing.T) {
	a := newTestApp(t)
	a.view = viewStats
	a.width, a.height = 100, 40

	model, _ := a.Update(runeKey('e'))
	a = model.(App)
	if !a.exportPicking {
		t.Fatal("e on the stats view should open the export picker")
	}

	model, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = model.(App)
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Settings / misc
// ============================================================

func TestFormatSettingValue(t *testing.T) {
	if got := formatSettingValue("timer_default", "60"); got != "60 min" {
		t.Errorf("timer_default = %q", got)
	}
	if got := formatSettingValue("library_dir", ""); got != "(not set)" {
		t.Errorf("empty library_dir = %q", got)
	}
	if got := formatSettingValue("notifications", "on"); got != "on" {
		t.Errorf("notifications = %q", got)
	}
}

func TestKeymapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should not be empty")
	}
	if len(keys.FullHelp()) == 0 {
		t.Fatal("full help should not be empty")
	}
}
