package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/focusbox/internal/export"
	"github.com/sadopc/focusbox/internal/notify"
	"github.com/sadopc/focusbox/internal/playback"
	"github.com/sadopc/focusbox/internal/store"
)

// statusTimeout is how long a footer status message stays visible.
const statusTimeout = 4 * time.Second

type statusExpireMsg struct {
	seq int
}

// App is the root model. It owns the shared clock tick, routes messages to
// the per-view models, and renders the tab bar and footer around them.
type App struct {
	store  *store.Store
	engine playback.Engine

	width  int
	height int

	view viewState

	player   playerModel
	timer    timerModel
	tasks    tasksModel
	stats    statsModel
	settings settingsModel

	help     help.Model
	showHelp bool

	// Export format picker overlay
	exportPicking bool
	exportCursor  int

	status      string
	statusError bool
	statusSeq   int
}

func NewApp(s *store.Store, engine playback.Engine, notifier notify.Notifier, libraryDir, playlistPath string) App {
	if libraryDir == "" {
		libraryDir, _ = s.GetSetting("library_dir")
	}
	return App{
		store:    s,
		engine:   engine,
		player:   newPlayerModel(engine, libraryDir, playlistPath),
		timer:    newTimerModel(s, notifier),
		tasks:    newTasksModel(),
		stats:    newStatsModel(s),
		settings: newSettingsModel(s),
		help:     help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.player.loadLibrary(),
		tickCmd(),
		listenEngine(a.engine),
	)
}

// tickCmd emits the shared once-per-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// listenEngine blocks on the engine's event stream and re-arms itself after
// each delivery. A closed stream ends the loop.
func listenEngine(engine playback.Engine) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-engine.Events()
		if !ok {
			return nil
		}
		return engineEventMsg{event: ev}
	}
}

// isFormActive reports whether a text input currently owns the keyboard, in
// which case global shortcuts must not fire.
func (a App) isFormActive() bool {
	return a.tasks.formActive || a.settings.formActive || a.exportPicking
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentH := msg.Height - 4
		a.player.setSize(msg.Width, contentH)
		a.timer.setSize(msg.Width, contentH)
		a.tasks.setSize(msg.Width, contentH)
		a.stats.setSize(msg.Width, contentH)
		a.settings.setSize(msg.Width, contentH)
		return a, nil

	case tickMsg:
		// Fan the shared tick out to every time-driven view, then re-arm.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.player, cmd = a.player.update(msg)
		cmds = append(cmds, cmd)
		a.timer, cmd = a.timer.update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, tickCmd())
		return a, tea.Batch(cmds...)

	case engineEventMsg:
		if msg.event.Type == playback.EventEngineExited {
			a.setStatus("Audio engine exited", true)
			return a, a.statusExpiry()
		}
		var cmd tea.Cmd
		a.player, cmd = a.player.update(msg)
		return a, tea.Batch(cmd, listenEngine(a.engine))

	case libraryMsg, playResultMsg, trackLoadedMsg, progressMsg:
		var cmd tea.Cmd
		a.player, cmd = a.player.update(msg)
		return a, cmd

	case timerAutoResetMsg:
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd

	case settingsDataMsg:
		var cmd tea.Cmd
		a.settings, cmd = a.settings.update(msg)
		return a, cmd

	case settingsSavedMsg:
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, a.statusExpiry()

	case statusExpireMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		return a, a.statusExpiry()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.routeToView(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.exportPicking {
		return a.updateExportPicker(msg)
	}

	// While a form owns the keyboard only it sees keystrokes, except quit.
	if a.isFormActive() {
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.routeToView(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		return a, nil

	case key.Matches(msg, keys.Tab1):
		return a.switchView(viewPlayer)
	case key.Matches(msg, keys.Tab2):
		return a.switchView(viewTimer)
	case key.Matches(msg, keys.Tab3):
		return a.switchView(viewTasks)
	case key.Matches(msg, keys.Tab4):
		return a.switchView(viewStats)
	case key.Matches(msg, keys.Tab5):
		return a.switchView(viewSettings)
	case key.Matches(msg, keys.Tab):
		return a.switchView((a.view + 1) % viewState(len(viewNames)))

	// Play/pause works from any view so music control never requires
	// leaving the timer or tasks.
	case key.Matches(msg, keys.PlayPause):
		var cmd tea.Cmd
		a.player, cmd = a.player.togglePlayPause()
		return a, cmd

	case key.Matches(msg, keys.Export):
		if a.view == viewStats {
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		}
	}

	return a.routeToView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.view = v
	switch v {
	case viewStats:
		return a, a.stats.refresh()
	case viewSettings:
		return a, a.settings.refresh()
	}
	return a, nil
}

// routeToView delivers a message to the active view only.
func (a App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewPlayer:
		a.player, cmd = a.player.update(msg)
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
		return a, nil
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
		return a, nil
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
		return a, nil
	case key.Matches(msg, keys.Enter):
		format := "csv"
		if a.exportCursor == 1 {
			format = "json"
		}
		a.exportPicking = false
		return a, a.exportSessions(format)
	}
	return a, nil
}

func (a App) exportSessions(format string) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		sessions, err := s.ListSessions(0)
		if err != nil {
			logrus.Errorf("export: list sessions: %v", err)
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}

		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		name := fmt.Sprintf("focusbox-export-%s.%s", time.Now().Format("2006-01-02"), format)
		path := filepath.Join(home, name)

		if format == "json" {
			err = export.ToJSON(sessions, path)
		} else {
			err = export.ToCSV(sessions, path)
		}
		if err != nil {
			logrus.Errorf("export: %v", err)
			return statusMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusError = isError
	a.statusSeq++
}

func (a App) statusExpiry() tea.Cmd {
	seq := a.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()

	var content string
	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.showHelp:
		content = panelStyle.Width(a.width - 4).Render(a.help.FullHelpView(keys.FullHelp()))
	default:
		switch a.view {
		case viewPlayer:
			content = a.player.view()
		case viewTimer:
			content = a.timer.view()
		case viewTasks:
			content = a.tasks.view()
		case viewStats:
			content = a.stats.view()
		case viewSettings:
			content = a.settings.view()
		}
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.view {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
}

func (a App) renderFooter() string {
	var parts []string

	if a.status != "" {
		style := successStyle
		if a.statusError {
			style = errorStyle
		}
		parts = append(parts, style.Render(a.status))
	}

	if title := a.player.currentTitle(); title != "" && a.player.playing {
		parts = append(parts, highlightStyle.Render("♪ "+title))
	}
	if a.timer.running() {
		parts = append(parts, successStyle.Render("◷ "+a.timer.clock()))
	}

	parts = append(parts, a.help.ShortHelpView(keys.ShortHelp()))

	return footerStyle.Render(strings.Join(parts, "  │  "))
}

func (a App) renderExportPicker() string {
	options := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, titleStyle.Render("Export Sessions"))
	rows = append(rows, "")
	for i, opt := range options {
		if i == a.exportCursor {
			rows = append(rows, selectedItemStyle.Render("> "+opt))
		} else {
			rows = append(rows, normalItemStyle.Render("  "+opt))
		}
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: export  esc: cancel"))
	return panelStyle.Width(a.width - 4).Render(strings.Join(rows, "\n"))
}
