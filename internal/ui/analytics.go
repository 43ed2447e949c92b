package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"study-assistant/internal/service"
)

type reportLoadedMsg struct {
	report *service.ProgressReport
}

// analyticsModel renders the progress report.
type analyticsModel struct {
	deps    *Deps
	report  *service.ProgressReport
	errText string
}

func newAnalyticsModel(deps *Deps) analyticsModel {
	return analyticsModel{deps: deps}
}

func (m analyticsModel) enter() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		report, err := deps.Analytics.Report(ctx, sess.UserID)
		if err != nil {
			return errMsg{err: err}
		}
		return reportLoadedMsg{report: report}
	}
}

func (m analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.report = msg.report
		return m, nil
	case errMsg:
		m.errText = msg.err.Error()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		}
	}
	return m, nil
}

func (m analyticsModel) view() string {
	s := titleStyle.Render("Progress & analytics") + "\n"

	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n"
		s += helpStyle.Render("esc: menu")
		return s
	}
	if m.report == nil {
		s += dimStyle.Render("Loading...") + "\n"
		return s
	}

	r := m.report
	s += boxStyle.Render(fmt.Sprintf(
		"Learning points: %d\nStudy streak: %d day(s)", r.LearningPoints, r.StreakDays)) + "\n\n"

	s += fmt.Sprintf("Tasks:         %d total, %d completed (%.0f%%)\n", r.TotalTasks, r.CompletedTasks, r.CompletionRate)
	s += fmt.Sprintf("Study:         %d session(s), %d minute(s) total\n", r.StudySessions, r.TotalStudyMinutes)
	s += fmt.Sprintf("Study days:    %d of last 7, %d of last 30\n", r.StudyDaysLast7, r.StudyDaysLast30)
	s += fmt.Sprintf("Quizzes:       %d attempt(s), %d correct, %.0f%% average\n", r.QuizAttempts, r.CorrectAnswers, r.QuizAveragePct)

	if len(r.MinutesBySubject) > 0 {
		s += "\nBy subject:\n"
		for i, row := range r.MinutesBySubject {
			if i == 5 {
				break
			}
			s += fmt.Sprintf("  %-20s %d min\n", row.Subject, row.Minutes)
		}
	}

	s += helpStyle.Render("esc: menu")
	return s
}
