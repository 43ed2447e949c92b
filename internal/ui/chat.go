package ui

import (
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

// chatHistoryLimit is how many stored messages are loaded and displayed.
const chatHistoryLimit = 50

type chatHistoryMsg struct {
	messages []model.ChatMessage
}

type chatReplyMsg struct {
	reply string
}

type chatClearedMsg struct{}

// chatModel is the persistent AI chat screen.
type chatModel struct {
	deps     *Deps
	history  []model.ChatMessage
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool
	errText  string
}

func newChatModel(deps *Deps) chatModel {
	input := textinput.New()
	input.Placeholder = "ask anything about your studies"
	input.CharLimit = 2000
	input.Width = 60
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return chatModel{
		deps:     deps,
		input:    input,
		viewport: viewport.New(80, 16),
		spinner:  sp,
	}
}

func (m *chatModel) setSize(width, height int) {
	if width > 4 {
		m.viewport.Width = width - 4
		m.input.Width = width - 8
	}
	if height > 10 {
		m.viewport.Height = height - 8
	}
}

func (m chatModel) enter() tea.Cmd {
	deps := m.deps
	load := func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		messages, err := deps.Contents.ChatHistory(ctx, sess.UserID, chatHistoryLimit)
		if err != nil {
			return errMsg{err: err}
		}
		return chatHistoryMsg{messages: messages}
	}
	return tea.Batch(load, textinput.Blink)
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatHistoryMsg:
		m.history = msg.messages
		m.refreshTranscript()
		return m, nil

	case chatReplyMsg:
		m.waiting = false
		m.history = append(m.history, model.ChatMessage{Role: model.ChatRoleModel, Content: msg.reply})
		m.refreshTranscript()
		return m, nil

	case chatClearedMsg:
		m.history = nil
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errMsg:
		m.waiting = false
		m.errText = renderAIError(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return navigateMsg{screen: ScreenMenu} }
		case "ctrl+l":
			return m, m.clear()
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.errText = ""
			m.waiting = true
			// Echo locally right away, persistence happens in the command.
			m.history = append(m.history, model.ChatMessage{Role: model.ChatRoleUser, Content: text})
			m.refreshTranscript()
			return m, tea.Batch(m.spinner.Tick, m.send(text))
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send calls the model with the prior history window, then persists both
// sides of the exchange.
func (m chatModel) send(text string) tea.Cmd {
	deps := m.deps
	// History before the new message, already capped by the gateway.
	turns := make([]ai.ChatTurn, 0, len(m.history)-1)
	for _, msg := range m.history[:len(m.history)-1] {
		turns = append(turns, ai.ChatTurn{Role: msg.Role, Text: msg.Content})
	}

	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()

		reply, err := deps.Gateway.Chat(ctx, turns, text)
		if err != nil {
			deps.Log.Warn("chat request failed", zap.Error(err))
			return errMsg{err: err}
		}

		if err := deps.Contents.AppendChatMessage(ctx, sess.UserID, model.ChatRoleUser, text); err != nil {
			return errMsg{err: err}
		}
		if err := deps.Contents.AppendChatMessage(ctx, sess.UserID, model.ChatRoleModel, reply); err != nil {
			return errMsg{err: err}
		}
		return chatReplyMsg{reply: reply}
	}
}

func (m chatModel) clear() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		sess, ok := deps.Sessions.Current()
		if !ok {
			return loggedOutMsg{}
		}
		ctx, cancel := deps.opCtx()
		defer cancel()
		if err := deps.Contents.ClearChat(ctx, sess.UserID); err != nil {
			return errMsg{err: err}
		}
		return chatClearedMsg{}
	}
}

func (m *chatModel) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.history {
		speaker := selectedStyle.Render("you")
		if msg.Role == model.ChatRoleModel {
			speaker = quoteStyle.Render("assistant")
		}
		fmt.Fprintf(&b, "%s: %s\n\n", speaker, msg.Content)
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m chatModel) view() string {
	s := titleStyle.Render("AI chat") + "\n"
	s += m.viewport.View() + "\n"

	if m.waiting {
		s += m.spinner.View() + " thinking...\n"
	} else {
		s += "  " + m.input.View() + "\n"
	}
	if m.errText != "" {
		s += errorStyle.Render(m.errText) + "\n"
	}
	s += helpStyle.Render("enter: send • ctrl+l: clear history • up/down: scroll • esc: menu")
	return s
}
