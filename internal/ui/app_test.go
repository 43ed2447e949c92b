package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"study-assistant/internal/model"
	"study-assistant/internal/session"
)

func newTestDeps() *Deps {
	return &Deps{
		Log:      zap.NewNop(),
		Sessions: session.NewStore(),
		Timeout:  time.Second,
	}
}

func TestAppStartsAtLogin(t *testing.T) {
	app := NewApp(newTestDeps())
	assert.Equal(t, ScreenLogin, app.screen)
}

func TestAppNavigation(t *testing.T) {
	deps := newTestDeps()
	deps.Sessions.Start(&model.User{ID: 1, Username: "alice"})
	app := NewApp(deps)

	transitions := []struct {
		name   string
		target Screen
	}{
		{"tasks", ScreenTasks},
		{"study", ScreenStudy},
		{"ai helper", ScreenAIHelper},
		{"quiz", ScreenQuiz},
		{"chat", ScreenChat},
		{"analytics", ScreenAnalytics},
		{"review hub", ScreenReviewHub},
		{"settings", ScreenSettings},
		{"back to menu", ScreenMenu},
	}
	for _, tc := range transitions {
		t.Run(tc.name, func(t *testing.T) {
			updated, _ := app.Update(navigateMsg{screen: tc.target})
			app = updated.(*App)
			assert.Equal(t, tc.target, app.screen)
		})
	}
}

func TestAppLoginGating(t *testing.T) {
	deps := newTestDeps()
	app := NewApp(deps)

	t.Run("login success reaches the menu", func(t *testing.T) {
		deps.Sessions.Start(&model.User{ID: 1, Username: "alice"})
		updated, _ := app.Update(loggedInMsg{})
		app = updated.(*App)
		assert.Equal(t, ScreenMenu, app.screen)
	})

	t.Run("logout clears the session and returns to login", func(t *testing.T) {
		updated, _ := app.Update(loggedOutMsg{})
		app = updated.(*App)
		assert.Equal(t, ScreenLogin, app.screen)

		_, ok := deps.Sessions.Current()
		assert.False(t, ok)
	})
}

func TestAppQuitsOnCtrlC(t *testing.T) {
	app := NewApp(newTestDeps())
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
