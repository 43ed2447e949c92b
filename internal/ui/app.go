package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/ai"
	"study-assistant/internal/service"
	"study-assistant/internal/session"
)

// Screen identifies which view the app is showing.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenMenu
	ScreenTasks
	ScreenStudy
	ScreenAIHelper
	ScreenQuiz
	ScreenChat
	ScreenAnalytics
	ScreenReviewHub
	ScreenSettings
)

// Deps bundles everything the screens need. Built once in main.
type Deps struct {
	Log        *zap.Logger
	Auth       *service.AuthService
	Tasks      *service.TaskService
	Categories *service.CategoryService
	StudyLogs  *service.StudyLogService
	Quizzes    *service.QuizService
	Contents   *service.AIContentService
	Settings   *service.SettingsService
	Analytics  *service.AnalyticsService
	Reminders  *service.ReminderService
	Backup     *service.BackupService
	Gateway    *ai.Gateway
	Sessions   *session.Store
	Timeout    time.Duration
}

// opCtx returns a context for one user-triggered operation.
func (d *Deps) opCtx() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// App is the root bubbletea model. It owns the current screen and routes
// messages to the active sub-model.
type App struct {
	deps   *Deps
	screen Screen
	width  int
	height int

	login     loginModel
	menu      menuModel
	tasks     tasksModel
	study     studyModel
	helper    helperModel
	quiz      quizModel
	chat      chatModel
	analytics analyticsModel
	review    reviewModel
	settings  settingsModel
}

func NewApp(deps *Deps) *App {
	return &App{
		deps:      deps,
		screen:    ScreenLogin,
		login:     newLoginModel(deps, false),
		menu:      newMenuModel(deps),
		tasks:     newTasksModel(deps),
		study:     newStudyModel(deps),
		helper:    newHelperModel(deps),
		quiz:      newQuizModel(deps),
		chat:      newChatModel(deps),
		analytics: newAnalyticsModel(deps),
		review:    newReviewModel(deps),
		settings:  newSettingsModel(deps),
	}
}

func (a *App) Init() tea.Cmd {
	return a.login.enter()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.helper.setSize(msg.Width, msg.Height)
		a.chat.setSize(msg.Width, msg.Height)
		a.review.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case navigateMsg:
		return a.switchTo(msg.screen)

	case loggedInMsg:
		return a.switchTo(ScreenMenu)

	case loggedOutMsg:
		if sess, ok := a.deps.Sessions.Current(); ok {
			a.deps.Log.Info("session ended", zap.String("session_id", sess.ID))
		}
		a.deps.Sessions.Clear()
		a.login = newLoginModel(a.deps, false)
		return a.switchTo(ScreenLogin)

	case ReminderMsg:
		// Background reminder pushes land on the menu regardless of the
		// active screen; other screens show it next time the menu opens.
		a.menu.reminder = msg.Reminder
		return a, nil
	}

	return a.route(msg)
}

// switchTo changes the active screen and runs its entry command.
func (a *App) switchTo(screen Screen) (tea.Model, tea.Cmd) {
	a.screen = screen
	switch screen {
	case ScreenLogin:
		a.login = newLoginModel(a.deps, false)
		return a, a.login.enter()
	case ScreenRegister:
		a.login = newLoginModel(a.deps, true)
		return a, a.login.enter()
	case ScreenMenu:
		return a, a.menu.enter()
	case ScreenTasks:
		return a, a.tasks.enter()
	case ScreenStudy:
		return a, a.study.enter()
	case ScreenAIHelper:
		a.helper = newHelperModel(a.deps)
		a.helper.setSize(a.width, a.height)
		return a, a.helper.enter()
	case ScreenQuiz:
		a.quiz = newQuizModel(a.deps)
		return a, a.quiz.enter()
	case ScreenChat:
		a.chat = newChatModel(a.deps)
		a.chat.setSize(a.width, a.height)
		return a, a.chat.enter()
	case ScreenAnalytics:
		return a, a.analytics.enter()
	case ScreenReviewHub:
		return a, a.review.enter()
	case ScreenSettings:
		a.settings = newSettingsModel(a.deps)
		return a, a.settings.enter()
	}
	return a, nil
}

// route forwards the message to the active screen's update method.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		a.login, cmd = a.login.update(msg)
	case ScreenMenu:
		a.menu, cmd = a.menu.update(msg)
	case ScreenTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case ScreenStudy:
		a.study, cmd = a.study.update(msg)
	case ScreenAIHelper:
		a.helper, cmd = a.helper.update(msg)
	case ScreenQuiz:
		a.quiz, cmd = a.quiz.update(msg)
	case ScreenChat:
		a.chat, cmd = a.chat.update(msg)
	case ScreenAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case ScreenReviewHub:
		a.review, cmd = a.review.update(msg)
	case ScreenSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	switch a.screen {
	case ScreenLogin, ScreenRegister:
		return a.login.view()
	case ScreenMenu:
		return a.menu.view()
	case ScreenTasks:
		return a.tasks.view()
	case ScreenStudy:
		return a.study.view()
	case ScreenAIHelper:
		return a.helper.view()
	case ScreenQuiz:
		return a.quiz.view()
	case ScreenChat:
		return a.chat.view()
	case ScreenAnalytics:
		return a.analytics.view()
	case ScreenReviewHub:
		return a.review.view()
	case ScreenSettings:
		return a.settings.view()
	}
	return ""
}
