package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// todo is one task list entry. Ids increase monotonically and are never
// reused; removal is by id, not position.
type todo struct {
	id        int64
	text      string
	done      bool
	createdAt time.Time
}

// taskList owns the ordered task collection (insertion order = display
// order). Tasks live for the session only.
type taskList struct {
	items  []todo
	nextID int64
}

func newTaskList() taskList {
	return taskList{nextID: 1}
}

// add appends a task. Whitespace-only text is rejected.
func (l *taskList) add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	l.items = append(l.items, todo{
		id:        l.nextID,
		text:      text,
		createdAt: time.Now(),
	})
	l.nextID++
	return true
}

// toggle flips the completion flag of the task with the given id.
func (l *taskList) toggle(id int64) bool {
	for i := range l.items {
		if l.items[i].id == id {
			l.items[i].done = !l.items[i].done
			return true
		}
	}
	return false
}

// remove deletes the task with the given id.
func (l *taskList) remove(id int64) bool {
	for i := range l.items {
		if l.items[i].id == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// remaining counts tasks still open.
func (l taskList) remaining() int {
	return lo.CountBy(l.items, func(t todo) bool { return !t.done })
}

func (l taskList) len() int { return len(l.items) }

type tasksModel struct {
	width  int
	height int

	list   taskList
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointer (survives value copies)
	formText *string
}

func newTasksModel() tasksModel {
	text := ""
	return tasksModel{
		list:     newTaskList(),
		formText: &text,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New):
			return m.showAddForm()
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < m.list.len()-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < m.list.len() {
				m.list.toggle(m.list.items[m.cursor].id)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < m.list.len() {
				m.list.remove(m.list.items[m.cursor].id)
				if m.cursor >= m.list.len() && m.cursor > 0 {
					m.cursor--
				}
			}
		}
	}
	return m, nil
}

func (m tasksModel) showAddForm() (tasksModel, tea.Cmd) {
	*m.formText = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		// Blank input is rejected without any error surfaced.
		m.list.add(*m.formText)
		*m.formText = ""
		return m, nil
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Task"),
			"",
			m.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	count := mutedStyle.Render(fmt.Sprintf("  %d remaining", m.list.remaining()))
	header := title + count

	if m.list.len() == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			mutedStyle.Render("Nothing yet. Press n to add a task."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, header)
	rows = append(rows, "")

	for i, t := range m.list.items {
		check := "○"
		textStyle := normalItemStyle
		if t.done {
			check = successStyle.Render("✓")
			textStyle = doneTaskStyle
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		row := cursor + check + " " + textStyle.Render(t.text)
		if i == m.cursor {
			row = selectedItemStyle.Render(cursor) + check + " " + textStyle.Render(t.text)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
