package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/ai"
)

// quizStage tracks progress through one quiz run.
type quizStage int

const (
	stageTopic quizStage = iota
	stageCount
	stageWaiting
	stageTaking
	stageDone
)

type quizRecordedMsg struct{}

// quizModel runs an AI-generated multiple-choice quiz end to end.
type quizModel struct {
	deps *Deps

	stage     quizStage
	input     textinput.Model
	spinner   spinner.Model
	topic     string
	count     int
	questions []ai.QuizQuestion
	current   int
	choice    int
	answers   []int
	score     int
	errText   string
	recorded  bool
}

func newQuizModel(deps *Deps) quizModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "quiz topic"
	input.CharLimit = 200
	input.Focus()

	return quizModel{deps: deps, spinner: sp, input: input, count: 5}
}

func (m quizModel) enter() tea.Cmd {
	return textinput.Blink
}

func (m quizModel) update(msg tea.Msg) (quizModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.stage != stageWaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case quizReadyMsg:
		if m.stage != stageWaiting {
			return m, nil
		}
		m.stage = stageTaking
		m.topic = msg.topic
		m.questions = msg.questions
		m.answers = make([]int, 0, len(msg.questions))
		m.current = 0
		m.choice = 0
		m.score = 0
		return m, nil

	case quizRecordedMsg:
		m.recorded = true
		return m, nil

	case errMsg:
		if m.stage == stageDone {
			// Recording failed; keep the finished results on screen.
			m.errText = msg.err.Error()
			return m, nil
		}
		m.stage = stageTopic
		m.errText = renderAIError(msg.err)
		m.input.Focus()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.stage == stageTopic || m.stage == stageCount {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m quizModel) handleKey(msg tea.KeyMsg) (quizModel, tea.Cmd) {
	switch m.stage {
	case stageTopic:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		case "enter":
			topic := strings.TrimSpace(m.input.Value())
			if topic == "" {
				m.errText = "topic is required"
				return m, nil
			}
			m.topic = topic
			m.errText = ""
			m.stage = stageCount
			m.input = textinput.New()
			m.input.Placeholder = "number of questions (default 5)"
			m.input.CharLimit = 2
			m.input.Focus()
			return m, textinput.Blink
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stageCount:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		case "enter":
			raw := strings.TrimSpace(m.input.Value())
			count := 5
			if raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 || n > 20 {
					m.errText = "enter a number between 1 and 20"
					return m, nil
				}
				count = n
			}
			m.count = count
			m.errText = ""
			m.stage = stageWaiting
			return m, tea.Batch(m.spinner.Tick, m.generate())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stageWaiting:
		if msg.String() == "esc" {
			m.stage = stageTopic
			m.errText = ""
			m.input = textinput.New()
			m.input.Placeholder = "quiz topic"
			m.input.CharLimit = 200
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case stageTaking:
		question := m.questions[m.current]
		switch msg.String() {
		case "up", "k":
			if m.choice > 0 {
				m.choice--
			}
		case "down", "j":
			if m.choice < len(question.Options)-1 {
				m.choice++
			}
		case "1", "2", "3", "4":
			idx := int(msg.String()[0] - '1')
			if idx < len(question.Options) {
				m.choice = idx
			}
		case "enter":
			m.answers = append(m.answers, m.choice)
			if m.choice == question.CorrectOptionIndex {
				m.score++
			}
			if m.current+1 < len(m.questions) {
				m.current++
				m.choice = 0
				return m, nil
			}
			m.stage = stageDone
			return m, m.record()
		case "esc":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		}
		return m, nil

	case stageDone:
		switch msg.String() {
		case "esc", "enter":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		case "r":
			fresh := newQuizModel(m.deps)
			return fresh, fresh.enter()
		}
	}
	return m, nil
}

func (m quizModel) generate() tea.Cmd {
	deps := m.deps
	topic := m.topic
	count := m.count
	return func() tea.Msg {
		ctx, cancel := deps.opCtx()
		defer cancel()
		questions, err := deps.Gateway.GenerateQuiz(ctx, topic, count)
		if err != nil {
			deps.Log.Warn("quiz generation failed", zap.Error(err))
			return errMsg{err: err}
		}
		return quizReadyMsg{topic: topic, questions: questions}
	}
}

func (m quizModel) record() tea.Cmd {
	deps := m.deps
	topic := m.topic
	questions := m.questions
	score := m.score
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if _, err := deps.Quizzes.RecordAttempt(ctx, sess.UserID, topic, questions, score); err != nil {
			return errMsg{err: err}
		}
		return quizRecordedMsg{}
	}
}

func (m quizModel) view() string {
	s := titleStyle.Render("AI quiz") + "\n"

	switch m.stage {
	case stageTopic, stageCount:
		s += "  " + m.input.View() + "\n"
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: continue • esc: menu")

	case stageWaiting:
		s += m.spinner.View() + " generating quiz...\n"
		s += helpStyle.Render("esc: cancel")

	case stageTaking:
		question := m.questions[m.current]
		s += dimStyle.Render(fmt.Sprintf("Question %d of %d  (topic: %s)", m.current+1, len(m.questions), m.topic)) + "\n\n"
		s += question.QuestionText + "\n\n"
		for i, option := range question.Options {
			cursor := "  "
			label := fmt.Sprintf("%d. %s", i+1, option)
			if i == m.choice {
				cursor = selectedStyle.Render("> ")
				label = selectedStyle.Render(label)
			}
			s += cursor + label + "\n"
		}
		s += helpStyle.Render("1-4 or up/down: choose • enter: answer • esc: abandon")

	case stageDone:
		s += fmt.Sprintf("Score: %d / %d\n\n", m.score, len(m.questions))
		for i, question := range m.questions {
			mark := successStyle.Render("correct")
			if m.answers[i] != question.CorrectOptionIndex {
				mark = errorStyle.Render(fmt.Sprintf("wrong, answer was %q", question.Options[question.CorrectOptionIndex]))
			}
			s += fmt.Sprintf("%d. %s  %s\n   %s\n", i+1, question.QuestionText, mark, dimStyle.Render(question.Explanation))
		}
		if m.recorded {
			s += "\n" + successStyle.Render("Result saved to review hub.") + "\n"
		}
		if m.errText != "" {
			s += "\n" + errorStyle.Render("Could not save the result: "+m.errText) + "\n"
		}
		s += helpStyle.Render("r: new quiz • enter/esc: menu")
	}
	return s
}
