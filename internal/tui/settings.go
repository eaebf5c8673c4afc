package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusbox/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	timerDefault  *string
	preset1       *string
	preset2       *string
	preset3       *string
	libraryDir    *string
	notifications *string
}

func newSettingsModel(s *store.Store) settingsModel {
	td, p1, p2, p3 := "", "", "", ""
	lib, nf := "", ""
	return settingsModel{
		store:         s,
		timerDefault:  &td,
		preset1:       &p1,
		preset2:       &p2,
		preset3:       &p3,
		libraryDir:    &lib,
		notifications: &nf,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Export):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.timerDefault = s.settingValue("timer_default")
	*s.preset1 = s.settingValue("timer_preset_1")
	*s.preset2 = s.settingValue("timer_preset_2")
	*s.preset3 = s.settingValue("timer_preset_3")
	*s.libraryDir = s.settingValue("library_dir")
	*s.notifications = s.settingValue("notifications")

	validateMinutes := func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("must be a positive number of minutes")
		}
		return nil
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default timer (min)").Value(s.timerDefault).Validate(validateMinutes),
			huh.NewInput().Title("Preset 1 (min)").Value(s.preset1).Validate(validateMinutes),
			huh.NewInput().Title("Preset 2 (min)").Value(s.preset2).Validate(validateMinutes),
			huh.NewInput().Title("Preset 3 (min)").Value(s.preset3).Validate(validateMinutes),
			huh.NewInput().Title("Library directory").Value(s.libraryDir),
			huh.NewSelect[string]().Title("Notifications").
				Options(huh.NewOption("on", "on"), huh.NewOption("off", "off")).
				Value(s.notifications),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.store.SetSetting("timer_default", *s.timerDefault)
		s.store.SetSetting("timer_preset_1", *s.preset1)
		s.store.SetSetting("timer_preset_2", *s.preset2)
		s.store.SetSetting("timer_preset_3", *s.preset3)
		s.store.SetSetting("library_dir", *s.libraryDir)
		s.store.SetSetting("notifications", *s.notifications)
		saved := func() tea.Msg { return settingsSavedMsg{} }
		return s, tea.Batch(s.refresh(), saved)
	}

	return s, cmd
}

func (s settingsModel) settingValue(key string) string {
	for _, st := range s.settings {
		if st.Key == key {
			return st.Value
		}
	}
	return ""
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit Settings"),
			"",
			s.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for _, st := range s.settings {
		rows = append(rows, fmt.Sprintf("  %-18s %s",
			mutedStyle.Render(st.Key),
			normalItemStyle.Render(formatSettingValue(st.Key, st.Value)),
		))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  A running timer keeps its time; the new default applies on reset."))
	rows = append(rows, mutedStyle.Render("  Library changes apply on restart."))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func formatSettingValue(key, value string) string {
	switch key {
	case "timer_default", "timer_preset_1", "timer_preset_2", "timer_preset_3":
		if _, err := strconv.Atoi(value); err != nil {
			return value
		}
		return value + " min"
	case "library_dir":
		if value == "" {
			return "(not set)"
		}
		return value
	default:
		return value
	}
}
