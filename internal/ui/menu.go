package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/service"
)

type menuEntry struct {
	label  string
	screen Screen
}

var menuEntries = []menuEntry{
	{"Tasks", ScreenTasks},
	{"Study sessions & Pomodoro", ScreenStudy},
	{"AI helper", ScreenAIHelper},
	{"AI quiz", ScreenQuiz},
	{"AI chat", ScreenChat},
	{"Progress & analytics", ScreenAnalytics},
	{"Review hub", ScreenReviewHub},
	{"Settings", ScreenSettings},
}

// menuModel is the main menu with the reminder digest and a quote.
type menuModel struct {
	deps     *Deps
	cursor   int
	quote    string
	reminder service.Reminder
}

func newMenuModel(deps *Deps) menuModel {
	return menuModel{deps: deps}
}

func (m menuModel) enter() tea.Cmd {
	deps := m.deps
	checkReminders := func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return nil
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		reminder, err := deps.Reminders.Check(ctx, sess.UserID)
		if err != nil {
			deps.Log.Warn("reminder check failed", zap.Error(err))
			return nil
		}
		return reminderCheckedMsg{reminder: reminder}
	}
	fetchQuote := func() tea.Msg {
		ctx, cancel := deps.opCtx()
		defer cancel()
		// Quote is decoration. Any failure, including a missing API key,
		// just leaves it blank.
		quote, err := deps.Gateway.MotivationalQuote(ctx)
		if err != nil {
			return quoteMsg{}
		}
		return quoteMsg{text: quote}
	}
	return tea.Batch(checkReminders, fetchQuote)
}

func (m menuModel) update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reminderCheckedMsg:
		m.reminder = msg.reminder
		return m, nil

	case quoteMsg:
		m.quote = msg.text
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuEntries)-1 {
				m.cursor++
			}
		case "enter":
			target := menuEntries[m.cursor].screen
			return m, func() tea.Msg { return navigateMsg{screen: target} }
		case "l":
			return m, func() tea.Msg { return loggedOutMsg{} }
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) view() string {
	username := ""
	if sess, ok := m.deps.Sessions.Current(); ok {
		username = sess.Username
	}

	s := titleStyle.Render(fmt.Sprintf("Study Assistant / welcome, %s", username)) + "\n"

	if !m.reminder.Empty() {
		s += warnStyle.Render("! "+m.reminder.Summary()) + "\n\n"
	}
	if m.quote != "" {
		s += quoteStyle.Render(m.quote) + "\n\n"
	}

	for i, entry := range menuEntries {
		cursor := "  "
		label := entry.label
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
			label = selectedStyle.Render(label)
		}
		s += fmt.Sprintf("%s%s\n", cursor, label)
	}

	s += helpStyle.Render("enter: open • l: log out • q: quit")
	return s
}
