package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/model"
)

// settingsSection is the active sub-view of the settings screen.
type settingsSection int

const (
	sectionMenu settingsSection = iota
	sectionAPIKey
	sectionPomodoro
	sectionPassword
	sectionCategories
	sectionBackup
	sectionRestore
)

var settingsEntries = []struct {
	label   string
	section settingsSection
}{
	{"Gemini API key", sectionAPIKey},
	{"Pomodoro durations", sectionPomodoro},
	{"Change password", sectionPassword},
	{"Manage categories", sectionCategories},
	{"Backup database", sectionBackup},
	{"Restore database", sectionRestore},
}

type settingsSavedMsg struct {
	status string
}

type categoriesLoadedMsg struct {
	categories []model.Category
}

// restoreDoneMsg forces a logout, since the restored file replaces the
// account store underneath the session.
type restoreDoneMsg struct{}

type settingsModel struct {
	deps    *Deps
	section settingsSection
	cursor  int
	inputs  []textinput.Model
	focus   int

	categories []model.Category
	catCursor  int
	addingCat  bool

	// restore waits for an explicit keypress after the path is entered
	confirmRestore bool
	restorePath    string

	errText string
	status  string
}

func newSettingsModel(deps *Deps) settingsModel {
	return settingsModel{deps: deps}
}

func (m settingsModel) enter() tea.Cmd {
	return nil
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		m.section = sectionMenu
		m.status = msg.status
		m.errText = ""
		return m, nil

	case categoriesLoadedMsg:
		m.categories = msg.categories
		m.addingCat = false
		if m.catCursor >= len(m.categories) {
			m.catCursor = 0
		}
		return m, nil

	case restoreDoneMsg:
		return m, func() tea.Msg { return loggedOutMsg{} }

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	switch m.section {
	case sectionMenu:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(settingsEntries)-1 {
				m.cursor++
			}
		case "enter":
			return m.open(settingsEntries[m.cursor].section)
		}
		return m, nil

	case sectionCategories:
		return m.handleCategoriesKey(msg)

	default:
		return m.handleFormKey(msg)
	}
}

// open switches to a section and prepares its inputs.
func (m settingsModel) open(section settingsSection) (settingsModel, tea.Cmd) {
	m.section = section
	m.errText = ""
	m.status = ""
	m.focus = 0

	switch section {
	case sectionAPIKey:
		key := textinput.New()
		key.Placeholder = "Gemini API key"
		key.CharLimit = 256
		key.EchoMode = textinput.EchoPassword
		key.Focus()
		m.inputs = []textinput.Model{key}

	case sectionPomodoro:
		work := textinput.New()
		work.Placeholder = "work minutes (default 25)"
		work.CharLimit = 3
		work.Focus()
		shortBreak := textinput.New()
		shortBreak.Placeholder = "break minutes (default 5)"
		shortBreak.CharLimit = 3
		longRest := textinput.New()
		longRest.Placeholder = "long rest minutes (default 15)"
		longRest.CharLimit = 3
		m.inputs = []textinput.Model{work, shortBreak, longRest}

	case sectionPassword:
		current := textinput.New()
		current.Placeholder = "current password"
		current.EchoMode = textinput.EchoPassword
		current.Focus()
		next := textinput.New()
		next.Placeholder = "new password"
		next.EchoMode = textinput.EchoPassword
		m.inputs = []textinput.Model{current, next}

	case sectionBackup:
		path := textinput.New()
		path.Placeholder = "backup file path"
		path.CharLimit = 512
		path.Focus()
		m.inputs = []textinput.Model{path}

	case sectionRestore:
		path := textinput.New()
		path.Placeholder = "backup file to restore from"
		path.CharLimit = 512
		path.Focus()
		m.inputs = []textinput.Model{path}

	case sectionCategories:
		m.inputs = nil
		return m, m.loadCategories()
	}

	return m, textinput.Blink
}

func (m settingsModel) handleFormKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.confirmRestore {
		switch msg.String() {
		case "y":
			m.confirmRestore = false
			return m, m.restore()
		case "n", "esc":
			m.confirmRestore = false
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.section = sectionMenu
		m.inputs = nil
		m.errText = ""
		return m, nil
	case "tab", "down":
		if len(m.inputs) > 1 {
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
		}
		return m, nil
	case "shift+tab", "up":
		if len(m.inputs) > 1 {
			m.inputs[m.focus].Blur()
			m.focus--
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			m.inputs[m.focus].Focus()
		}
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.inputs[m.focus].Blur()
			m.focus++
			m.inputs[m.focus].Focus()
			return m, nil
		}
		if m.section == sectionRestore {
			path := strings.TrimSpace(m.inputs[0].Value())
			if path == "" {
				m.errText = "enter the backup file path"
				return m, nil
			}
			m.restorePath = path
			m.confirmRestore = true
			m.errText = ""
			return m, nil
		}
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) submit() tea.Cmd {
	deps := m.deps
	section := m.section
	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = strings.TrimSpace(input.Value())
	}

	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()

		switch section {
		case sectionAPIKey:
			if err := deps.Settings.SetGeminiAPIKey(ctx, sess.UserID, values[0]); err != nil {
				return errMsg{err: err}
			}
			return settingsSavedMsg{status: "API key saved."}

		case sectionPomodoro:
			work, shortBreak, longRest, err := deps.Settings.PomodoroDurations(ctx, sess.UserID)
			if err != nil {
				return errMsg{err: err}
			}
			// Blank fields keep the current value.
			if work, err = parseOr(values[0], work); err != nil {
				return errMsg{err: err}
			}
			if shortBreak, err = parseOr(values[1], shortBreak); err != nil {
				return errMsg{err: err}
			}
			if longRest, err = parseOr(values[2], longRest); err != nil {
				return errMsg{err: err}
			}
			if err := deps.Settings.SetPomodoroDurations(ctx, sess.UserID, work, shortBreak, longRest); err != nil {
				return errMsg{err: err}
			}
			return settingsSavedMsg{status: "Pomodoro durations saved."}

		case sectionPassword:
			if err := deps.Auth.ChangePassword(ctx, sess.UserID, values[0], values[1]); err != nil {
				return errMsg{err: err}
			}
			return settingsSavedMsg{status: "Password changed."}

		case sectionBackup:
			if err := deps.Backup.Backup(ctx, values[0]); err != nil {
				return errMsg{err: err}
			}
			deps.Log.Info("database backed up", zap.String("dest", values[0]))
			return settingsSavedMsg{status: "Backup written to " + values[0]}
		}
		return nil
	}
}

// restore runs the confirmed restore and forces a logout on success.
func (m settingsModel) restore() tea.Cmd {
	deps := m.deps
	path := m.restorePath
	return func() tea.Msg {
		if _, ok := deps.Sessions.Current(); !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if err := deps.Backup.Restore(ctx, path); err != nil {
			return errMsg{err: err}
		}
		deps.Log.Info("database restored", zap.String("src", path))
		return restoreDoneMsg{}
	}
}

func parseOr(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("enter a positive number of minutes")
	}
	return n, nil
}

func (m settingsModel) loadCategories() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		categories, err := deps.Categories.List(ctx, sess.UserID)
		if err != nil {
			return errMsg{err: err}
		}
		return categoriesLoadedMsg{categories: categories}
	}
}

func (m settingsModel) handleCategoriesKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if m.addingCat {
		switch msg.String() {
		case "esc":
			m.addingCat = false
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.inputs[0].Value())
			deps := m.deps
			return m, func() tea.Msg {
				sess, ok := deps.Sessions.Current()
				if !ok {
					return loggedOutMsg{}
				}
				ctx, cancel := deps.opCtx()
				defer cancel()
				if _, err := deps.Categories.Create(ctx, sess.UserID, name); err != nil {
					return errMsg{err: err}
				}
				categories, err := deps.Categories.List(ctx, sess.UserID)
				if err != nil {
					return errMsg{err: err}
				}
				return categoriesLoadedMsg{categories: categories}
			}
		}
		var cmd tea.Cmd
		m.inputs[0], cmd = m.inputs[0].Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.section = sectionMenu
		return m, nil
	case "up", "k":
		if m.catCursor > 0 {
			m.catCursor--
		}
	case "down", "j":
		if m.catCursor < len(m.categories)-1 {
			m.catCursor++
		}
	case "n":
		m.addingCat = true
		m.errText = ""
		name := textinput.New()
		name.Placeholder = "new category name"
		name.CharLimit = 100
		name.Focus()
		m.inputs = []textinput.Model{name}
		m.focus = 0
		return m, textinput.Blink
	case "d":
		if len(m.categories) == 0 {
			return m, nil
		}
		deps := m.deps
		id := m.categories[m.catCursor].ID
		return m, func() tea.Msg {
			sess, ok := deps.Sessions.Current()
			if !ok {
				return loggedOutMsg{}
			}
			ctx, cancel := deps.opCtx()
			defer cancel()
			if err := deps.Categories.Delete(ctx, sess.UserID, id); err != nil {
				return errMsg{err: err}
			}
			categories, err := deps.Categories.List(ctx, sess.UserID)
			if err != nil {
				return errMsg{err: err}
			}
			return categoriesLoadedMsg{categories: categories}
		}
	case "r":
		return m, m.loadCategories()
	}
	return m, nil
}

func (m settingsModel) view() string {
	s := titleStyle.Render("Settings") + "\n"

	switch m.section {
	case sectionMenu:
		for i, entry := range settingsEntries {
			cursor := "  "
			label := entry.label
			if i == m.cursor {
				cursor = selectedStyle.Render("> ")
				label = selectedStyle.Render(label)
			}
			s += cursor + label + "\n"
		}
		if m.status != "" {
			s += "\n" + successStyle.Render(m.status) + "\n"
		}
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: open • esc: menu")

	case sectionCategories:
		if m.addingCat {
			s += "  " + m.inputs[0].View() + "\n"
			s += helpStyle.Render("enter: create • esc: cancel")
			break
		}
		if len(m.categories) == 0 {
			s += dimStyle.Render("No categories.") + "\n"
		}
		for i, category := range m.categories {
			cursor := "  "
			name := category.Name
			if i == m.catCursor {
				cursor = selectedStyle.Render("> ")
			}
			if category.Name == model.DefaultCategoryName {
				name += dimStyle.Render("  (default)")
			}
			s += cursor + name + "\n"
		}
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("n: new • d: delete (tasks move to General) • r: refresh • esc: back")

	default:
		if m.confirmRestore {
			s += warnStyle.Render(fmt.Sprintf("Restore from %s?", m.restorePath)) + "\n"
			s += warnStyle.Render("This replaces all current data and logs you out.") + "\n\n"
			s += helpStyle.Render("y: restore • n/esc: cancel")
			break
		}
		for i, input := range m.inputs {
			cursor := "  "
			if i == m.focus {
				cursor = selectedStyle.Render("> ")
			}
			s += cursor + input.View() + "\n"
		}
		if m.section == sectionRestore {
			s += "\n" + warnStyle.Render("Restoring replaces the current database and logs you out.") + "\n"
		}
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: submit • esc: back")
	}
	return s
}
