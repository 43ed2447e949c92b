package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// loginModel serves both the login and registration forms.
type loginModel struct {
	deps        *Deps
	registering bool
	inputs      []textinput.Model
	focus       int
	errText     string
}

func newLoginModel(deps *Deps, registering bool) loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{
		deps:        deps,
		registering: registering,
		inputs:      []textinput.Model{username, password},
	}
}

func (m loginModel) enter() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focus].Blur()
			if msg.String() == "shift+tab" || msg.String() == "up" {
				m.focus--
			} else {
				m.focus++
			}
			if m.focus < 0 {
				m.focus = len(m.inputs) - 1
			}
			m.focus %= len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil

		case "esc":
			target := ScreenRegister
			if m.registering {
				target = ScreenLogin
			}
			return m, func() tea.Msg { return navigateMsg{screen: target} }

		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.inputs[m.focus].Blur()
				m.focus++
				m.inputs[m.focus].Focus()
				return m, nil
			}
			return m, m.submit()
		}

	case errMsg:
		m.errText = msg.err.Error()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) submit() tea.Cmd {
	username := m.inputs[0].Value()
	password := m.inputs[1].Value()
	deps := m.deps
	registering := m.registering

	return func() tea.Msg {
		ctx, cancel := deps.opCtx()
		defer cancel()

		if registering {
			user, err := deps.Auth.Register(ctx, username, password)
			if err != nil {
				return errMsg{err: err}
			}
			sess := deps.Sessions.Start(user)
			deps.Log.Info("user registered",
				zap.String("username", username), zap.String("session_id", sess.ID))
			return loggedInMsg{}
		}

		user, err := deps.Auth.Login(ctx, username, password)
		if err != nil {
			return errMsg{err: err}
		}
		sess := deps.Sessions.Start(user)
		deps.Log.Info("user logged in",
			zap.String("username", username), zap.String("session_id", sess.ID))
		return loggedInMsg{}
	}
}

func (m loginModel) view() string {
	title := "Log in"
	hint := "esc: create an account"
	if m.registering {
		title = "Create account"
		hint = "esc: back to login"
	}

	s := titleStyle.Render("Study Assistant") + "\n"
	s += title + "\n\n"
	for i, input := range m.inputs {
		cursor := "  "
		if i == m.focus {
			cursor = selectedStyle.Render("> ")
		}
		s += fmt.Sprintf("%s%s\n", cursor, input.View())
	}
	if m.errText != "" {
		s += "\n" + errorStyle.Render(m.errText) + "\n"
	}
	s += helpStyle.Render(fmt.Sprintf("enter: submit • tab: next field • %s • ctrl+c: quit", hint))
	return s
}
