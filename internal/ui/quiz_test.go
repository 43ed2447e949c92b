package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"study-assistant/internal/ai"
)

func finishedQuizModel() quizModel {
	m := newQuizModel(newTestDeps())
	m.stage = stageDone
	m.topic = "algebra"
	m.questions = []ai.QuizQuestion{{
		QuestionText:       "What is 2+2?",
		Options:            []string{"3", "4", "5", "6"},
		CorrectOptionIndex: 1,
		Explanation:        "Basic addition.",
	}}
	m.answers = []int{1}
	m.score = 1
	return m
}

func TestQuizKeepsResultsWhenSaveFails(t *testing.T) {
	m := finishedQuizModel()

	updated, _ := m.update(errMsg{err: errors.New("disk full")})
	assert.Equal(t, stageDone, updated.stage)
	assert.Contains(t, updated.errText, "disk full")
	assert.Contains(t, updated.view(), "Score: 1 / 1")
}

func TestQuizGenerationErrorReturnsToTopic(t *testing.T) {
	m := newQuizModel(newTestDeps())
	m.stage = stageWaiting

	updated, _ := m.update(errMsg{err: ai.ErrMissingAPIKey})
	assert.Equal(t, stageTopic, updated.stage)
	assert.Contains(t, updated.errText, "API key")
}
