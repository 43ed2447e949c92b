package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"study-assistant/internal/model"
	"study-assistant/internal/service"
)

// taskFilterMode selects which slice of the task list is shown.
type taskFilterMode int

const (
	filterOpen taskFilterMode = iota
	filterAll
	filterToday
	filterUpcoming
	filterOverdue
)

func (f taskFilterMode) String() string {
	switch f {
	case filterAll:
		return "all"
	case filterToday:
		return "due today"
	case filterUpcoming:
		return "next 7 days"
	case filterOverdue:
		return "overdue"
	default:
		return "open"
	}
}

type tasksLoadedMsg struct {
	tasks      []model.Task
	categories map[uint]string
}

type taskChangedMsg struct{}

// tasksModel shows the task list and a small add form.
type tasksModel struct {
	deps       *Deps
	tasks      []model.Task
	categories map[uint]string
	cursor     int
	filter     taskFilterMode
	adding     bool
	inputs     []textinput.Model
	focus      int
	errText    string
	statusText string
}

func newTasksModel(deps *Deps) tasksModel {
	return tasksModel{deps: deps, categories: map[uint]string{}}
}

func (m tasksModel) enter() tea.Cmd {
	return m.load()
}

func (m tasksModel) load() tea.Cmd {
	deps := m.deps
	filter := m.filter
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()

		now := time.Now()
		var (
			tasks []model.Task
			err   error
		)
		switch filter {
		case filterAll:
			tasks, err = deps.Tasks.ListAll(ctx, sess.UserID)
		case filterToday:
			tasks, err = deps.Tasks.DueToday(ctx, sess.UserID, now)
		case filterUpcoming:
			tasks, err = deps.Tasks.Upcoming(ctx, sess.UserID, now)
		case filterOverdue:
			tasks, err = deps.Tasks.Overdue(ctx, sess.UserID, now)
		default:
			tasks, err = deps.Tasks.ListOpen(ctx, sess.UserID, nil)
		}
		if err != nil {
			return errMsg{err: err}
		}

		categories, err := deps.Categories.List(ctx, sess.UserID)
		if err != nil {
			return errMsg{err: err}
		}
		names := make(map[uint]string, len(categories))
		for _, c := range categories {
			names[c.ID] = c.Name
		}
		return tasksLoadedMsg{tasks: tasks, categories: names}
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.tasks = msg.tasks
		m.categories = msg.categories
		if m.cursor >= len(m.tasks) {
			m.cursor = 0
		}
		return m, nil

	case taskChangedMsg:
		m.adding = false
		m.statusText = ""
		return m, m.load()

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAddForm(msg)
		}
		return m.updateList(msg)
	}

	if m.adding {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "f":
		m.filter = (m.filter + 1) % 5
		m.cursor = 0
		return m, m.load()
	case "a":
		m.adding = true
		m.errText = ""
		m.inputs = newTaskInputs()
		m.focus = 0
		return m, textinput.Blink
	case "enter", " ":
		if len(m.tasks) == 0 {
			return m, nil
		}
		return m, m.toggle(m.tasks[m.cursor])
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		return m, m.remove(m.tasks[m.cursor].ID)
	}
	return m, nil
}

func newTaskInputs() []textinput.Model {
	title := textinput.New()
	title.Placeholder = "task title"
	title.CharLimit = 200
	title.Focus()

	category := textinput.New()
	category.Placeholder = "existing category (optional)"
	category.CharLimit = 100

	due := textinput.New()
	due.Placeholder = "due date YYYY-MM-DD (optional)"
	due.CharLimit = 10

	return []textinput.Model{title, category, due}
}

func (m tasksModel) updateAddForm(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.errText = ""
		return m, nil
	case "tab", "down":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		m.inputs[m.focus].Focus()
		return m, nil
	case "shift+tab", "up":
		m.inputs[m.focus].Blur()
		m.focus--
		if m.focus < 0 {
			m.focus = len(m.inputs) - 1
		}
		m.inputs[m.focus].Focus()
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.inputs[m.focus].Blur()
			m.focus++
			m.inputs[m.focus].Focus()
			return m, nil
		}
		return m, m.save()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m tasksModel) save() tea.Cmd {
	deps := m.deps
	title := m.inputs[0].Value()
	category := m.inputs[1].Value()
	dueRaw := strings.TrimSpace(m.inputs[2].Value())

	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}

		input := service.TaskInput{Title: title, CategoryName: strings.TrimSpace(category)}
		if dueRaw != "" {
			due, err := time.ParseInLocation("2006-01-02", dueRaw, time.Local)
			if err != nil {
				return errMsg{err: fmt.Errorf("invalid due date, use YYYY-MM-DD")}
			}
			input.DueDate = &due
		}

		ctx, cancel := deps.opCtx()
		defer cancel()
		if _, err := deps.Tasks.Create(ctx, sess.UserID, input); err != nil {
			return errMsg{err: err}
		}
		return taskChangedMsg{}
	}
}

func (m tasksModel) toggle(task model.Task) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()

		var err error
		if task.Completed {
			_, err = deps.Tasks.Reopen(ctx, sess.UserID, task.ID)
		} else {
			_, err = deps.Tasks.Complete(ctx, sess.UserID, task.ID)
		}
		if err != nil {
			return errMsg{err: err}
		}
		return taskChangedMsg{}
	}
}

func (m tasksModel) remove(taskID uint) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if err := deps.Tasks.Delete(ctx, sess.UserID, taskID); err != nil {
			return errMsg{err: err}
		}
		return taskChangedMsg{}
	}
}

func (m tasksModel) view() string {
	s := titleStyle.Render("Tasks") + dimStyle.Render(fmt.Sprintf("  (filter: %s)", m.filter)) + "\n\n"

	if m.adding {
		s += "New task\n\n"
		for i, input := range m.inputs {
			cursor := "  "
			if i == m.focus {
				cursor = selectedStyle.Render("> ")
			}
			s += cursor + input.View() + "\n"
		}
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: save • tab: next field • esc: cancel")
		return s
	}

	if len(m.tasks) == 0 {
		s += dimStyle.Render("No tasks here.") + "\n"
	}
	for i, task := range m.tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		line := fmt.Sprintf("%s %s", checkbox(task.Completed), task.Title)
		if task.CategoryID != nil {
			if name, ok := m.categories[*task.CategoryID]; ok {
				line += dimStyle.Render("  #" + name)
			}
		}
		if task.DueDate != nil {
			due := task.DueDate.Format("2006-01-02")
			if !task.Completed && task.DueDate.Before(time.Now()) {
				line += "  " + errorStyle.Render("due "+due)
			} else {
				line += dimStyle.Render("  due " + due)
			}
		}
		s += cursor + line + "\n"
	}

	if m.errText != "" {
		s += "\n" + errorStyle.Render(m.errText) + "\n"
	}
	s += helpStyle.Render("a: add • enter/space: toggle done • d: delete • f: filter • esc: menu")
	return s
}
