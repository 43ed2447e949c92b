package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"study-assistant/internal/model"
)

// pomodoroPhase is the current timer phase.
type pomodoroPhase int

const (
	phaseIdle pomodoroPhase = iota
	phaseWork
	phaseBreak
	phaseLongRest
)

// longRestEvery is the number of work intervals before a long rest.
const longRestEvery = 4

type studyLogsLoadedMsg struct {
	logs []model.StudyLog
}

type pomodoroDurationsMsg struct {
	work, shortBreak, longRest int
}

type studyLoggedMsg struct{}

type studyLogDeletedMsg struct{}

type pomodoroTickMsg time.Time

// studyModel combines manual session logging with the Pomodoro timer.
type studyModel struct {
	deps *Deps
	logs []model.StudyLog

	// manual log form
	logging bool
	inputs  []textinput.Model
	focus   int

	// pomodoro state
	phase         pomodoroPhase
	paused        bool
	remaining     time.Duration
	workMinutes   int
	breakMinutes  int
	restMinutes   int
	workDone      int
	subject       string
	askingSubject bool
	subjectInput  textinput.Model

	logCursor  int
	errText    string
	statusText string
}

func newStudyModel(deps *Deps) studyModel {
	return studyModel{
		deps:         deps,
		workMinutes:  25,
		breakMinutes: 5,
		restMinutes:  15,
	}
}

func (m studyModel) enter() tea.Cmd {
	return tea.Batch(m.loadLogs(), m.loadDurations())
}

func (m studyModel) loadLogs() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		logs, err := deps.StudyLogs.Recent(ctx, sess.UserID, 10)
		if err != nil {
			return errMsg{err: err}
		}
		return studyLogsLoadedMsg{logs: logs}
	}
}

func (m studyModel) loadDurations() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		work, shortBreak, longRest, err := deps.Settings.PomodoroDurations(ctx, sess.UserID)
		if err != nil {
			return errMsg{err: err}
		}
		return pomodoroDurationsMsg{work: work, shortBreak: shortBreak, longRest: longRest}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return pomodoroTickMsg(t)
	})
}

func (m studyModel) update(msg tea.Msg) (studyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case studyLogsLoadedMsg:
		m.logs = msg.logs
		if m.logCursor >= len(m.logs) {
			m.logCursor = 0
		}
		return m, nil

	case pomodoroDurationsMsg:
		m.workMinutes = msg.work
		m.breakMinutes = msg.shortBreak
		m.restMinutes = msg.longRest
		return m, nil

	case studyLoggedMsg:
		m.logging = false
		m.statusText = "Session logged."
		return m, m.loadLogs()

	case studyLogDeletedMsg:
		m.statusText = "Entry deleted."
		return m, m.loadLogs()

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case pomodoroTickMsg:
		if m.phase == phaseIdle || m.paused {
			return m, nil
		}
		m.remaining -= time.Second
		if m.remaining > 0 {
			return m, tick()
		}
		return m.advancePhase()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.logging {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	if m.askingSubject {
		var cmd tea.Cmd
		m.subjectInput, cmd = m.subjectInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// advancePhase moves to the next Pomodoro phase. A finished work interval
// is logged as a study session before the break starts.
func (m studyModel) advancePhase() (studyModel, tea.Cmd) {
	switch m.phase {
	case phaseWork:
		m.workDone++
		logCmd := m.logPomodoroSession()
		if m.workDone%longRestEvery == 0 {
			m.phase = phaseLongRest
			m.remaining = time.Duration(m.restMinutes) * time.Minute
		} else {
			m.phase = phaseBreak
			m.remaining = time.Duration(m.breakMinutes) * time.Minute
		}
		return m, tea.Batch(logCmd, tick())
	case phaseBreak, phaseLongRest:
		m.phase = phaseWork
		m.remaining = time.Duration(m.workMinutes) * time.Minute
		return m, tick()
	}
	return m, nil
}

func (m studyModel) logPomodoroSession() tea.Cmd {
	deps := m.deps
	subject := m.subject
	minutes := m.workMinutes
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if _, err := deps.StudyLogs.Log(ctx, sess.UserID, subject, minutes, "pomodoro"); err != nil {
			return errMsg{err: err}
		}
		return studyLoggedMsg{}
	}
}

func (m studyModel) handleKey(msg tea.KeyMsg) (studyModel, tea.Cmd) {
	if m.logging {
		return m.updateLogForm(msg)
	}
	if m.askingSubject {
		switch msg.String() {
		case "esc":
			m.askingSubject = false
			return m, nil
		case "enter":
			subject := strings.TrimSpace(m.subjectInput.Value())
			if subject == "" {
				m.errText = "subject is required"
				return m, nil
			}
			m.subject = subject
			m.askingSubject = false
			m.errText = ""
			m.phase = phaseWork
			m.paused = false
			m.workDone = 0
			m.remaining = time.Duration(m.workMinutes) * time.Minute
			return m, tick()
		}
		var cmd tea.Cmd
		m.subjectInput, cmd = m.subjectInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		// Leaving the screen abandons a running timer.
		m.phase = phaseIdle
		return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
	case "s":
		if m.phase == phaseIdle {
			m.askingSubject = true
			m.subjectInput = textinput.New()
			m.subjectInput.Placeholder = "what are you studying?"
			m.subjectInput.CharLimit = 100
			m.subjectInput.Focus()
			return m, textinput.Blink
		}
	case "p":
		if m.phase != phaseIdle {
			m.paused = !m.paused
			if !m.paused {
				return m, tick()
			}
		}
	case "x":
		if m.phase != phaseIdle {
			m.phase = phaseIdle
			m.paused = false
			m.statusText = "Timer stopped."
		}
	case "l":
		m.logging = true
		m.errText = ""
		m.statusText = ""
		m.inputs = newStudyLogInputs()
		m.focus = 0
		return m, textinput.Blink
	case "up", "k":
		if m.logCursor > 0 {
			m.logCursor--
		}
	case "down", "j":
		if m.logCursor < len(m.logs)-1 {
			m.logCursor++
		}
	case "d":
		if len(m.logs) == 0 {
			return m, nil
		}
		deps := m.deps
		id := m.logs[m.logCursor].ID
		return m, func() tea.Msg {
			sess, ok := deps.Sessions.Current()
			if !ok {
				return loggedOutMsg{}
			}
			ctx, cancel := deps.opCtx()
			defer cancel()
			if err := deps.StudyLogs.Delete(ctx, sess.UserID, id); err != nil {
				return errMsg{err: err}
			}
			return studyLogDeletedMsg{}
		}
	}
	return m, nil
}

func newStudyLogInputs() []textinput.Model {
	subject := textinput.New()
	subject.Placeholder = "subject"
	subject.CharLimit = 100
	subject.Focus()

	duration := textinput.New()
	duration.Placeholder = "duration in minutes"
	duration.CharLimit = 4

	notes := textinput.New()
	notes.Placeholder = "notes (optional)"
	notes.CharLimit = 500

	return []textinput.Model{subject, duration, notes}
}

func (m studyModel) updateLogForm(msg tea.KeyMsg) (studyModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.logging = false
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
		return m, m.saveLog()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m studyModel) saveLog() tea.Cmd {
	deps := m.deps
	subject := m.inputs[0].Value()
	durationRaw := strings.TrimSpace(m.inputs[1].Value())
	notes := m.inputs[2].Value()

	return func() tea.Msg {
		minutes, err := strconv.Atoi(durationRaw)
		if err != nil || minutes <= 0 {
			return errMsg{err: fmt.Errorf("duration must be a positive number of minutes")}
		}
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if _, err := deps.StudyLogs.Log(ctx, sess.UserID, subject, minutes, notes); err != nil {
			return errMsg{err: err}
		}
		return studyLoggedMsg{}
	}
}

func (m studyModel) view() string {
	s := titleStyle.Render("Study sessions") + "\n"

	if m.logging {
		s += "Log a session\n\n"
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

	if m.askingSubject {
		s += "Start a Pomodoro\n\n  " + m.subjectInput.View() + "\n"
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: start • esc: cancel")
		return s
	}

	if m.phase != phaseIdle {
		label := "Focus"
		switch m.phase {
		case phaseBreak:
			label = "Short break"
		case phaseLongRest:
			label = "Long rest"
		}
		state := ""
		if m.paused {
			state = warnStyle.Render("  paused")
		}
		minutes := int(m.remaining.Minutes())
		seconds := int(m.remaining.Seconds()) % 60
		s += boxStyle.Render(fmt.Sprintf("%s: %02d:%02d%s\nSubject: %s  Completed intervals: %d",
			label, minutes, seconds, state, m.subject, m.workDone)) + "\n\n"
	}

	s += "Recent sessions:\n"
	if len(m.logs) == 0 {
		s += dimStyle.Render("  Nothing logged yet.") + "\n"
	}
	for i, entry := range m.logs {
		cursor := "  "
		if i == m.logCursor {
			cursor = selectedStyle.Render("> ")
		}
		s += fmt.Sprintf("%s%s  %s (%d min)\n", cursor,
			dimStyle.Render(entry.LoggedAt.Format("Jan 02 15:04")), entry.Subject, entry.DurationMinutes)
	}

	if m.statusText != "" {
		s += "\n" + successStyle.Render(m.statusText) + "\n"
	}
	if m.errText != "" {
		s += "\n" + errorStyle.Render(m.errText) + "\n"
	}
	s += helpStyle.Render("s: start pomodoro • p: pause • x: stop • l: log manually • d: delete entry • esc: menu")
	return s
}
