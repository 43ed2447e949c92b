package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/ai"
	"study-assistant/internal/repository"
)

func sampleQuestions() []ai.QuizQuestion {
	return []ai.QuizQuestion{
		{
			QuestionText:       "What is 2+2?",
			Options:            []string{"3", "4", "5", "6"},
			CorrectOptionIndex: 1,
			Explanation:        "Basic addition.",
		},
		{
			QuestionText:       "Largest planet?",
			Options:            []string{"Mars", "Venus", "Jupiter", "Saturn"},
			CorrectOptionIndex: 2,
			Explanation:        "Jupiter is the largest.",
		},
	}
}

func TestQuizRecordAttempt(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewQuizService(repository.NewQuizRepository(db))
	ctx := context.Background()

	result, err := svc.RecordAttempt(ctx, user.ID, "general", sampleQuestions(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.TotalQuestions)
	assert.NotEmpty(t, result.QuestionsJSON)

	t.Run("rejects score above total", func(t *testing.T) {
		_, err := svc.RecordAttempt(ctx, user.ID, "general", sampleQuestions(), 3)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects empty question set", func(t *testing.T) {
		_, err := svc.RecordAttempt(ctx, user.ID, "general", nil, 0)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestQuizReplay(t *testing.T) {
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")
	svc := NewQuizService(repository.NewQuizRepository(db))
	ctx := context.Background()

	stored, err := svc.RecordAttempt(ctx, user.ID, "space", sampleQuestions(), 2)
	require.NoError(t, err)

	result, questions, err := svc.Replay(ctx, user.ID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "space", result.Topic)
	require.Len(t, questions, 2)
	assert.Equal(t, "Largest planet?", questions[1].QuestionText)
	assert.Equal(t, 2, questions[1].CorrectOptionIndex)

	t.Run("unknown attempt", func(t *testing.T) {
		_, _, err := svc.Replay(ctx, user.ID, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestQuizOwnerIsolation(t *testing.T) {
	db := newTestDB(t)
	alice := registerTestUser(t, db, "alice")
	bob := registerTestUser(t, db, "bob")
	svc := NewQuizService(repository.NewQuizRepository(db))
	ctx := context.Background()

	aliceAttempt, err := svc.RecordAttempt(ctx, alice.ID, "algebra", sampleQuestions(), 2)
	require.NoError(t, err)
	_, err = svc.RecordAttempt(ctx, bob.ID, "geography", sampleQuestions(), 1)
	require.NoError(t, err)

	attempts, err := svc.History(ctx, bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "geography", attempts[0].Topic)

	t.Run("cannot replay another user's attempt", func(t *testing.T) {
		_, _, err := svc.Replay(ctx, bob.ID, aliceAttempt.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
