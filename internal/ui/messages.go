package ui

import (
	"study-assistant/internal/ai"
	"study-assistant/internal/model"
	"study-assistant/internal/service"
)

// Messages passed between screens and async commands.

type navigateMsg struct {
	screen Screen
}

type loggedInMsg struct{}

type loggedOutMsg struct{}

type errMsg struct {
	err error
}

// aiResponseMsg carries a finished text generation back to a screen.
type aiResponseMsg struct {
	kind   model.AIContentKind
	prompt string
	text   string
}

// quizReadyMsg carries a generated quiz ready to be taken.
type quizReadyMsg struct {
	topic     string
	questions []ai.QuizQuestion
}

// quoteMsg delivers the main menu quote, possibly empty on failure.
type quoteMsg struct {
	text string
}

// ReminderMsg is pushed into the program by the background scheduler when
// tasks need attention.
type ReminderMsg struct {
	Reminder service.Reminder
}

// reminderCheckedMsg carries the reminder digest loaded on menu entry.
type reminderCheckedMsg struct {
	reminder service.Reminder
}
