package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"study-assistant/internal/ai"
	"study-assistant/internal/model"
)

// reviewTab selects which collection the hub lists.
type reviewTab int

const (
	tabSaved reviewTab = iota
	tabQuizzes
)

type reviewLoadedMsg struct {
	contents []model.AIContent
	quizzes  []model.QuizResult
}

type quizDetailMsg struct {
	result    *model.QuizResult
	questions []ai.QuizQuestion
}

type reviewDeletedMsg struct{}

// reviewModel lists saved AI content and past quiz attempts.
type reviewModel struct {
	deps     *Deps
	tab      reviewTab
	contents []model.AIContent
	quizzes  []model.QuizResult
	cursor   int
	viewing  bool
	viewport viewport.Model
	errText  string
}

func newReviewModel(deps *Deps) reviewModel {
	return reviewModel{deps: deps, viewport: viewport.New(80, 18)}
}

func (m *reviewModel) setSize(width, height int) {
	if width > 4 {
		m.viewport.Width = width - 4
	}
	if height > 10 {
		m.viewport.Height = height - 6
	}
}

func (m reviewModel) enter() tea.Cmd {
	return m.load()
}

func (m reviewModel) load() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()

		contents, err := deps.Contents.List(ctx, sess.UserID, "", 50)
		if err != nil {
			return errMsg{err: err}
		}
		quizzes, err := deps.Quizzes.History(ctx, sess.UserID, 50)
		if err != nil {
			return errMsg{err: err}
		}
		return reviewLoadedMsg{contents: contents, quizzes: quizzes}
	}
}

func (m reviewModel) update(msg tea.Msg) (reviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewLoadedMsg:
		m.contents = msg.contents
		m.quizzes = msg.quizzes
		if m.cursor >= m.listLen() {
			m.cursor = 0
		}
		return m, nil

	case quizDetailMsg:
		m.viewing = true
		m.viewport.SetContent(renderQuizDetail(msg.result, msg.questions))
		m.viewport.GotoTop()
		return m, nil

	case reviewDeletedMsg:
		return m, m.load()

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.viewing {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m reviewModel) listLen() int {
	if m.tab == tabSaved {
		return len(m.contents)
	}
	return len(m.quizzes)
}

func (m reviewModel) handleKey(msg tea.KeyMsg) (reviewModel, tea.Cmd) {
	if m.viewing {
		switch msg.String() {
		case "esc", "enter":
			m.viewing = false
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
	case "tab":
		m.tab = (m.tab + 1) % 2
		m.cursor = 0
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
	case "enter":
		if m.listLen() == 0 {
			return m, nil
		}
		if m.tab == tabSaved {
			content := m.contents[m.cursor]
			m.viewing = true
			m.viewport.SetContent(renderContentDetail(content))
			m.viewport.GotoTop()
			return m, nil
		}
		return m, m.openQuiz(m.quizzes[m.cursor].ID)
	case "d":
		if m.tab == tabSaved && len(m.contents) > 0 {
			return m, m.deleteContent(m.contents[m.cursor].ID)
		}
	}
	return m, nil
}

func (m reviewModel) openQuiz(id uint) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		result, questions, err := deps.Quizzes.Replay(ctx, sess.UserID, id)
		if err != nil {
			return errMsg{err: err}
		}
		return quizDetailMsg{result: result, questions: questions}
	}
}

func (m reviewModel) deleteContent(id uint) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if err := deps.Contents.Delete(ctx, sess.UserID, id); err != nil {
			return errMsg{err: err}
		}
		return reviewDeletedMsg{}
	}
}

func renderContentDetail(content model.AIContent) string {
	s := fmt.Sprintf("%s (%s)\n%s\n\n", content.Title, content.Kind,
		content.CreatedAt.Format("Jan 02 2006 15:04"))
	if content.Prompt != "" {
		s += "Prompt: " + content.Prompt + "\n\n"
	}
	return s + content.ResponseText
}

func renderQuizDetail(result *model.QuizResult, questions []ai.QuizQuestion) string {
	s := fmt.Sprintf("Quiz: %s\nScore: %d / %d\nTaken: %s\n\n",
		result.Topic, result.Score, result.TotalQuestions,
		result.TakenAt.Format("Jan 02 2006 15:04"))
	for i, q := range questions {
		s += fmt.Sprintf("%d. %s\n", i+1, q.QuestionText)
		for j, opt := range q.Options {
			marker := "   "
			if j == q.CorrectOptionIndex {
				marker = " * "
			}
			s += fmt.Sprintf("%s%s\n", marker, opt)
		}
		s += "   " + q.Explanation + "\n\n"
	}
	return s
}

func (m reviewModel) view() string {
	s := titleStyle.Render("Review hub") + "\n"

	if m.viewing {
		s += m.viewport.View() + "\n"
		s += helpStyle.Render("up/down: scroll • esc: back")
		return s
	}

	savedLabel := "Saved content"
	quizLabel := "Quiz history"
	if m.tab == tabSaved {
		savedLabel = selectedStyle.Render(savedLabel)
	} else {
		quizLabel = selectedStyle.Render(quizLabel)
	}
	s += savedLabel + dimStyle.Render("  |  ") + quizLabel + "\n\n"

	if m.tab == tabSaved {
		if len(m.contents) == 0 {
			s += dimStyle.Render("Nothing saved yet.") + "\n"
		}
		for i, content := range m.contents {
			cursor := "  "
			if i == m.cursor {
				cursor = selectedStyle.Render("> ")
			}
			s += fmt.Sprintf("%s%s %s\n", cursor, content.Title,
				dimStyle.Render(fmt.Sprintf("(%s, %s)", content.Kind, content.CreatedAt.Format("Jan 02"))))
		}
	} else {
		if len(m.quizzes) == 0 {
			s += dimStyle.Render("No quizzes taken yet.") + "\n"
		}
		for i, quiz := range m.quizzes {
			cursor := "  "
			if i == m.cursor {
				cursor = selectedStyle.Render("> ")
			}
			s += fmt.Sprintf("%s%s %s\n", cursor, quiz.Topic,
				dimStyle.Render(fmt.Sprintf("(%d/%d, %s)", quiz.Score, quiz.TotalQuestions, quiz.TakenAt.Format("Jan 02"))))
		}
	}

	if m.errText != "" {
		s += "\n" + errorStyle.Render(m.errText) + "\n"
	}
	s += helpStyle.Render("tab: switch list • enter: open • d: delete saved • esc: menu")
	return s
}
