package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusbox/internal/store"
)

type statsModel struct {
	store  *store.Store
	width  int
	height int

	days    []store.DailyFocus
	recent  []store.FocusSession
	today   int64
	offset  int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *statsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type statsDataMsg struct {
	days   []store.DailyFocus
	recent []store.FocusSession
	today  int64
}

func (r statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()
		days, _ := r.store.GetDailyFocus(from, to)
		recent, _ := r.store.ListSessions(5)
		today, _ := r.store.GetTodayFocus()
		return statsDataMsg{days: days, recent: recent, today: today}
	}
}

func (r statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*r.offset)
	return end.AddDate(0, 0, -7), end
}

func (r statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		r.days = msg.days
		r.recent = msg.recent
		r.today = msg.today
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *statsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 28 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		value := barchart.BarValue{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}
		for _, day := range r.days {
			if day.Date == dateStr {
				value = barchart.BarValue{
					Name:  "focus",
					Value: float64(day.TotalMinutes),
					Style: lipgloss.NewStyle().Foreground(colorPrimary),
				}
			}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{value},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r statsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))
	todayLabel := highlightStyle.Render("today " + formatMinutes(r.today))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Focus Stats"), "  ", dateLabel, "  ", todayLabel,
	)

	chartView := r.chart.View()
	recentView := r.renderRecent(w)
	nav := mutedStyle.Render("  ←/→: navigate weeks  e: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", recentView, "", nav,
		),
	)
}

func (r statsModel) renderRecent(w int) string {
	title := titleStyle.Render("Recent Sessions")
	if len(r.recent) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("  No sessions yet"),
		)
	}

	var rows []string
	rows = append(rows, title)
	for _, s := range r.recent {
		status := "✓"
		style := successStyle
		switch s.Status {
		case "cancelled":
			status = "✗"
			style = mutedStyle
		case "running":
			status = "●"
			style = warningStyle
		}
		startStr := s.StartedAt.Local().Format("Jan 02 15:04")
		rows = append(rows, fmt.Sprintf("  %s %s  %s",
			style.Render(status), startStr, formatMinutes(int64(s.Minutes)),
		))
	}
	return strings.Join(rows, "\n")
}
