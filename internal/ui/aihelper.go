package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/ai"
	"study-assistant/internal/model"
)

// helperMode selects which AI operation the helper runs.
type helperMode int

const (
	modeExplain helperMode = iota
	modeSummarize
	modeQuestions
)

var helperModes = []struct {
	label  string
	mode   helperMode
	prompt string
	kind   model.AIContentKind
}{
	{"Explain a concept", modeExplain, "concept to explain", model.KindExplanation},
	{"Summarize text", modeSummarize, "text to summarize", model.KindSummary},
	{"Practice questions", modeQuestions, "topic for practice questions", model.KindQuestions},
}

type contentSavedMsg struct{}

// helperModel drives the explain/summarize/questions flows.
type helperModel struct {
	deps *Deps

	cursor   int
	mode     helperMode
	kind     model.AIContentKind
	prompt   string
	input    textinput.Model
	entering bool
	waiting  bool
	spinner  spinner.Model
	result   string
	viewport viewport.Model
	saving   bool
	errText  string
	status   string
}

func newHelperModel(deps *Deps) helperModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	return helperModel{deps: deps, spinner: sp, viewport: vp}
}

func (m *helperModel) setSize(width, height int) {
	if width > 4 {
		m.viewport.Width = width - 4
	}
	if height > 10 {
		m.viewport.Height = height - 8
	}
}

func (m helperModel) enter() tea.Cmd {
	return nil
}

func (m helperModel) update(msg tea.Msg) (helperModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case aiResponseMsg:
		m.waiting = false
		m.result = msg.text
		m.prompt = msg.prompt
		m.kind = msg.kind
		m.viewport.SetContent(msg.text)
		m.viewport.GotoTop()
		return m, nil

	case contentSavedMsg:
		m.saving = false
		m.status = "Saved to review hub."
		return m, nil

	case errMsg:
		m.waiting = false
		m.saving = false
		m.errText = renderAIError(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.entering || m.saving {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// renderAIError maps gateway errors to user-facing text.
func renderAIError(err error) string {
	var (
		svcErr *ai.ServiceError
		netErr *ai.NetworkError
	)
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		return "No Gemini API key configured. Set one in Settings."
	case errors.As(err, &svcErr):
		return fmt.Sprintf("The AI service rejected the request: %s", svcErr.Message)
	case errors.As(err, &netErr):
		return "Could not reach the AI service. Check your connection and retry."
	default:
		return err.Error()
	}
}

func (m helperModel) handleKey(msg tea.KeyMsg) (helperModel, tea.Cmd) {
	if m.waiting {
		if msg.String() == "esc" {
			// Abandon the wait. The late reply is dropped by the waiting flag.
			m.waiting = false
			m.status = "Request abandoned."
		}
		return m, nil
	}

	if m.entering {
		switch msg.String() {
		case "esc":
			m.entering = false
			return m, nil
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.errText = "input is required"
				return m, nil
			}
			m.entering = false
			m.waiting = true
			m.errText = ""
			m.status = ""
			return m, tea.Batch(m.spinner.Tick, m.ask(text))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.saving {
		switch msg.String() {
		case "esc":
			m.saving = false
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				m.errText = "title is required"
				return m, nil
			}
			return m, m.save(title)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(helperModes)-1 {
			m.cursor++
		}
	case "enter":
		choice := helperModes[m.cursor]
		m.mode = choice.mode
		m.kind = choice.kind
		m.entering = true
		m.errText = ""
		m.input = textinput.New()
		m.input.Placeholder = choice.prompt
		m.input.CharLimit = 2000
		m.input.Width = 60
		m.input.Focus()
		return m, textinput.Blink
	case "s":
		if m.result == "" {
			return m, nil
		}
		m.saving = true
		m.errText = ""
		m.input = textinput.New()
		m.input.Placeholder = "title for saved content"
		m.input.CharLimit = 100
		m.input.Focus()
		return m, textinput.Blink
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m helperModel) ask(text string) tea.Cmd {
	deps := m.deps
	mode := m.mode
	kind := m.kind

	return func() tea.Msg {
		ctx, cancel := deps.opCtx()
		defer cancel()

		var (
			result string
			err    error
		)
		switch mode {
		case modeSummarize:
			result, err = deps.Gateway.Summarize(ctx, text)
		case modeQuestions:
			result, err = deps.Gateway.GeneratePracticeQuestions(ctx, text, 5)
		default:
			result, err = deps.Gateway.Explain(ctx, text)
		}
		if err != nil {
			deps.Log.Warn("ai request failed", zap.Error(err))
			return errMsg{err: err}
		}
		return aiResponseMsg{kind: kind, prompt: text, text: result}
	}
}

func (m helperModel) save(title string) tea.Cmd {
	deps := m.deps
	kind := m.kind
	prompt := m.prompt
	response := m.result

	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if _, err := deps.Contents.Save(ctx, sess.UserID, kind, title, prompt, response); err != nil {
			return errMsg{err: err}
		}
		return contentSavedMsg{}
	}
}

func (m helperModel) view() string {
	s := titleStyle.Render("AI helper") + "\n"

	if m.waiting {
		s += m.spinner.View() + " thinking...\n"
		s += helpStyle.Render("esc: abandon")
		return s
	}

	if m.entering || m.saving {
		s += "  " + m.input.View() + "\n"
		if m.errText != "" {
			s += "\n" + errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("enter: submit • esc: cancel")
		return s
	}

	if m.result != "" {
		s += m.viewport.View() + "\n"
		if m.status != "" {
			s += successStyle.Render(m.status) + "\n"
		}
		if m.errText != "" {
			s += errorStyle.Render(m.errText) + "\n"
		}
		s += helpStyle.Render("s: save to review hub • up/down: scroll • esc: menu")
		return s
	}

	for i, choice := range helperModes {
		cursor := "  "
		label := choice.label
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
	s += helpStyle.Render("enter: choose • esc: menu")
	return s
}
