package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/focusbox/internal/library"
	"github.com/sadopc/focusbox/internal/playback"
)

// seekStepPercent is how far one ←/→ press moves through the track.
const seekStepPercent = 5.0

type playerModel struct {
	engine playback.Engine
	width  int
	height int

	libraryDir   string
	playlistPath string
	libraryErr   string

	tracks  []library.Track
	current int // active marker; exactly one track is active
	cursor  int // track list selection

	playing   bool
	loading   bool
	shuffled  bool
	repeating bool

	pos float64 // seconds
	dur float64 // seconds, 0 while unknown

	bar progress.Model
}

func newPlayerModel(engine playback.Engine, libraryDir, playlistPath string) playerModel {
	bar := progress.New(progress.WithSolidFill(string(colorPrimary)))
	bar.ShowPercentage = false

	return playerModel{
		engine:       engine,
		libraryDir:   libraryDir,
		playlistPath: playlistPath,
		bar:          bar,
	}
}

func (p *playerModel) setSize(w, h int) {
	p.width = w
	p.height = h
	barWidth := w - 12
	if barWidth < 10 {
		barWidth = 10
	}
	p.bar.Width = barWidth
}

// loadLibrary builds the track collection once at startup.
func (p playerModel) loadLibrary() tea.Cmd {
	return func() tea.Msg {
		tracks, err := library.Load(p.playlistPath, p.libraryDir)
		return libraryMsg{tracks: tracks, err: err}
	}
}

func (p playerModel) update(msg tea.Msg) (playerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryMsg:
		if msg.err != nil {
			p.libraryErr = msg.err.Error()
			logrus.Warnf("load library: %v", msg.err)
			return p, nil
		}
		p.tracks = msg.tracks
		if len(p.tracks) > 0 {
			// Select the first track, in collection order.
			return p.loadTrack(0)
		}
		return p, nil

	case playResultMsg:
		p.loading = false
		if msg.err != nil {
			// Play request rejected: revert silently, state unchanged.
			logrus.Debugf("play request failed: %v", msg.err)
			return p, nil
		}
		p.playing = true
		return p, nil

	case trackLoadedMsg:
		if msg.err != nil {
			logrus.Warnf("load track %d: %v", msg.index, msg.err)
		}
		return p, nil

	case progressMsg:
		p.pos = msg.pos
		p.dur = msg.dur
		return p, nil

	case engineEventMsg:
		if msg.event.Type == playback.EventTrackEnded {
			return p.handleTrackEnd()
		}
		return p, nil

	case tickMsg:
		return p, p.pollProgress()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.PlayPause):
			return p.togglePlayPause()
		case key.Matches(msg, keys.Next):
			return p.playNext()
		case key.Matches(msg, keys.Prev):
			return p.playPrevious()
		case key.Matches(msg, keys.Shuffle):
			p.shuffled = !p.shuffled
			return p, nil
		case key.Matches(msg, keys.Repeat):
			p.repeating = !p.repeating
			return p, nil
		case key.Matches(msg, keys.Left):
			return p.seekBy(-seekStepPercent)
		case key.Matches(msg, keys.Right):
			return p.seekBy(seekStepPercent)
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.tracks)-1 {
				p.cursor++
			}
			return p, nil
		case key.Matches(msg, keys.Enter):
			return p.loadTrack(p.cursor)
		}
	}
	return p, nil
}

// togglePlayPause pauses immediately when playing; otherwise marks loading
// and requests playback asynchronously. A rejected request clears the
// loading marker and leaves state unchanged — no error reaches the user.
func (p playerModel) togglePlayPause() (playerModel, tea.Cmd) {
	if len(p.tracks) == 0 || p.loading {
		return p, nil
	}

	if p.playing {
		p.playing = false
		engine := p.engine
		return p, func() tea.Msg {
			if err := engine.Pause(); err != nil {
				logrus.Debugf("pause: %v", err)
			}
			return nil
		}
	}

	p.loading = true
	engine := p.engine
	return p, func() tea.Msg {
		return playResultMsg{err: engine.Play()}
	}
}

// playNext advances by one with wraparound, or picks a uniformly random
// track when shuffled. The random pick may repeat the current track.
func (p playerModel) playNext() (playerModel, tea.Cmd) {
	if len(p.tracks) == 0 {
		return p, nil
	}
	var next int
	if p.shuffled {
		next = rand.IntN(len(p.tracks))
	} else {
		next = (p.current + 1) % len(p.tracks)
	}
	return p.loadTrack(next)
}

// playPrevious steps back by one, wrapping to the last track at index 0.
func (p playerModel) playPrevious() (playerModel, tea.Cmd) {
	if len(p.tracks) == 0 {
		return p, nil
	}
	prev := (p.current - 1 + len(p.tracks)) % len(p.tracks)
	return p.loadTrack(prev)
}

// loadTrack makes index the active track and resets the progress display.
// Out-of-bounds indices are silently ignored. Playback resumes on the new
// track when the player was already playing.
func (p playerModel) loadTrack(index int) (playerModel, tea.Cmd) {
	if index < 0 || index >= len(p.tracks) {
		return p, nil
	}
	p.current = index
	p.cursor = index
	p.pos = 0
	p.dur = 0

	track := p.tracks[index]
	engine := p.engine
	resume := p.playing
	return p, func() tea.Msg {
		if err := engine.Load(track.Path, track.Title); err != nil {
			return trackLoadedMsg{index: index, err: err}
		}
		if resume {
			if err := engine.Play(); err != nil {
				return trackLoadedMsg{index: index, err: err}
			}
		}
		return trackLoadedMsg{index: index}
	}
}

// seekBy nudges the position by a percentage of the duration. While the
// duration is unknown this is a no-op.
func (p playerModel) seekBy(deltaPercent float64) (playerModel, tea.Cmd) {
	if p.dur <= 0 {
		return p, nil
	}
	percent := p.pos/p.dur*100 + deltaPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	target := percent / 100 * p.dur
	p.pos = target

	engine := p.engine
	return p, func() tea.Msg {
		if err := engine.Seek(target); err != nil {
			logrus.Debugf("seek: %v", err)
		}
		return nil
	}
}

// handleTrackEnd rewinds and resumes when repeating, otherwise moves on.
func (p playerModel) handleTrackEnd() (playerModel, tea.Cmd) {
	if p.repeating {
		p.pos = 0
		engine := p.engine
		return p, func() tea.Msg {
			if err := engine.Seek(0); err != nil {
				logrus.Debugf("rewind: %v", err)
			}
			return playResultMsg{err: engine.Play()}
		}
	}
	return p.playNext()
}

// pollProgress mirrors the engine's position onto the progress display.
// Runs once per tick while playing.
func (p playerModel) pollProgress() tea.Cmd {
	if !p.playing {
		return nil
	}
	engine := p.engine
	return func() tea.Msg {
		pos, err := engine.Position()
		if err != nil {
			logrus.Debugf("poll position: %v", err)
			return nil
		}
		dur, err := engine.Duration()
		if err != nil {
			logrus.Debugf("poll duration: %v", err)
			return nil
		}
		return progressMsg{pos: pos, dur: dur}
	}
}

// progressPercent is only meaningful when the duration is known.
func (p playerModel) progressPercent() float64 {
	if p.dur <= 0 {
		return 0
	}
	return p.pos / p.dur
}

func (p playerModel) currentTitle() string {
	if p.current < 0 || p.current >= len(p.tracks) {
		return ""
	}
	return p.tracks[p.current].Title
}

func (p playerModel) view() string {
	w := p.width - 4

	if p.libraryErr != "" {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Player"),
			"",
			errorStyle.Render(p.libraryErr),
			mutedStyle.Render("Set the library directory in Settings (5)."),
		)
		return panelStyle.Width(w).Render(content)
	}

	if len(p.tracks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Player"),
			"",
			mutedStyle.Render("No tracks found."),
		)
		return panelStyle.Width(w).Render(content)
	}

	nowPlaying := p.renderNowPlaying(w)
	trackList := p.renderTrackList(w)
	return lipgloss.JoinVertical(lipgloss.Left, nowPlaying, trackList)
}

func (p playerModel) renderNowPlaying(w int) string {
	var state string
	switch {
	case p.loading:
		state = warningStyle.Render("…  LOADING")
	case p.playing:
		state = successStyle.Render("▶  PLAYING")
	default:
		state = mutedStyle.Render("⏸  PAUSED")
	}

	title := highlightStyle.Bold(true).Render(p.currentTitle())

	var elapsed, total string
	elapsed = formatTrackTime(p.pos)
	if p.dur > 0 {
		total = formatTrackTime(p.dur)
	} else {
		total = "-:--"
	}
	timeLine := mutedStyle.Render(fmt.Sprintf("%s / %s", elapsed, total))

	barView := p.bar.ViewAs(p.progressPercent())

	shuffle := toggleOffStyle.Render("⤨ shuffle")
	if p.shuffled {
		shuffle = toggleOnStyle.Render("⤨ shuffle")
	}
	repeat := toggleOffStyle.Render("⟲ repeat")
	if p.repeating {
		repeat = toggleOnStyle.Render("⟲ repeat")
	}
	controls := shuffle + "   " + repeat

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		state,
		"",
		barView,
		timeLine,
		"",
		controls,
	)

	style := panelStyle
	if p.playing {
		style = activePanelStyle
	}
	return style.Width(w).Render(content)
}

func (p playerModel) renderTrackList(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Tracks"))
	rows = append(rows, "")

	for i, t := range p.tracks {
		marker := "  "
		if i == p.current {
			marker = "▶ "
		}
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if i == p.current {
			style = activeTrackStyle
		}
		rows = append(rows, style.Render(cursor+marker+t.Title))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: play/pause  n/b: next/prev  s: shuffle  r: repeat  ←/→: seek  enter: play selected"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
