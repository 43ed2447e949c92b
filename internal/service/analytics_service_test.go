package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

type analyticsFixture struct {
	svc    *AnalyticsService
	tasks  *TaskService
	logs   *repository.StudyLogRepository
	quiz   *QuizService
	userID uint
	now    time.Time
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	db := newTestDB(t)
	user := registerTestUser(t, db, "alice")

	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	logRepo := repository.NewStudyLogRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	svc := NewAnalyticsService(taskRepo, logRepo, quizRepo)
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &analyticsFixture{
		svc:    svc,
		tasks:  NewTaskService(taskRepo, categoryRepo),
		logs:   logRepo,
		quiz:   NewQuizService(quizRepo),
		userID: user.ID,
		now:    now,
	}
}

func (f *analyticsFixture) logOn(t *testing.T, daysAgo, minutes int) {
	t.Helper()
	entry := &model.StudyLog{
		UserID:          f.userID,
		Subject:         "subject",
		DurationMinutes: minutes,
		LoggedAt:        f.now.AddDate(0, 0, -daysAgo),
	}
	require.NoError(t, f.logs.Create(context.Background(), entry))
}

func TestAnalyticsEmptyReport(t *testing.T) {
	f := newAnalyticsFixture(t)

	report, err := f.svc.Report(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Zero(t, report.TotalTasks)
	assert.Zero(t, report.CompletionRate)
	assert.Zero(t, report.StreakDays)
	assert.Zero(t, report.LearningPoints)
}

func TestAnalyticsCompletionRate(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		task, err := f.tasks.Create(ctx, f.userID, TaskInput{Title: "t"})
		require.NoError(t, err)
		if i < 3 {
			_, err = f.tasks.Complete(ctx, f.userID, task.ID)
			require.NoError(t, err)
		}
	}

	report, err := f.svc.Report(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), report.TotalTasks)
	assert.Equal(t, int64(3), report.CompletedTasks)
	assert.InDelta(t, 75.0, report.CompletionRate, 0.01)
}

func TestAnalyticsStreak(t *testing.T) {
	t.Run("consecutive days ending today", func(t *testing.T) {
		f := newAnalyticsFixture(t)
		f.logOn(t, 0, 30)
		f.logOn(t, 1, 30)
		f.logOn(t, 2, 30)
		f.logOn(t, 5, 30) // gap breaks the streak

		report, err := f.svc.Report(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 3, report.StreakDays)
	})

	t.Run("nothing today keeps yesterday's streak", func(t *testing.T) {
		f := newAnalyticsFixture(t)
		f.logOn(t, 1, 30)
		f.logOn(t, 2, 30)

		report, err := f.svc.Report(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 2, report.StreakDays)
	})

	t.Run("last log two days ago means no streak", func(t *testing.T) {
		f := newAnalyticsFixture(t)
		f.logOn(t, 2, 30)

		report, err := f.svc.Report(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Zero(t, report.StreakDays)
	})
}

func TestAnalyticsUsesLocalCalendarDays(t *testing.T) {
	t.Run("late evening west of utc still counts for today", func(t *testing.T) {
		f := newAnalyticsFixture(t)
		loc := time.FixedZone("UTC-3", -3*60*60)
		f.now = time.Date(2026, 8, 23, 23, 30, 0, 0, loc)
		f.svc.now = func() time.Time { return f.now }

		f.logOn(t, 0, 30) // 23:30 local is already the next day in UTC

		report, err := f.svc.Report(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 1, report.StreakDays)
		assert.Equal(t, int64(1), report.StudyDaysLast7)
	})

	t.Run("after midnight east of utc keeps the running streak", func(t *testing.T) {
		f := newAnalyticsFixture(t)
		loc := time.FixedZone("UTC+5", 5*60*60)
		f.now = time.Date(2026, 8, 24, 0, 30, 0, 0, loc)
		f.svc.now = func() time.Time { return f.now }

		f.logOn(t, 0, 30) // 00:30 local is still the previous day in UTC
		f.logOn(t, 1, 30)

		report, err := f.svc.Report(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Equal(t, 2, report.StreakDays)
	})
}

func TestAnalyticsStudyDayWindows(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.logOn(t, 0, 30)
	f.logOn(t, 3, 30)
	f.logOn(t, 3, 15) // same day, counted once
	f.logOn(t, 10, 30)
	f.logOn(t, 40, 30) // outside both windows

	report, err := f.svc.Report(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.StudyDaysLast7)
	assert.Equal(t, int64(3), report.StudyDaysLast30)
	assert.Equal(t, int64(5), report.StudySessions)
	assert.Equal(t, int64(135), report.TotalStudyMinutes)

	require.NotEmpty(t, report.MinutesBySubject)
	assert.Equal(t, int64(135), report.MinutesBySubject[0].Minutes)
}

func TestAnalyticsQuizAverage(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	// 1/2 and 2/2 average to 75%.
	_, err := f.quiz.RecordAttempt(ctx, f.userID, "a", sampleQuestions(), 1)
	require.NoError(t, err)
	_, err = f.quiz.RecordAttempt(ctx, f.userID, "b", sampleQuestions(), 2)
	require.NoError(t, err)

	report, err := f.svc.Report(ctx, f.userID)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, report.QuizAveragePct, 0.01)
}

func TestAnalyticsLearningPoints(t *testing.T) {
	f := newAnalyticsFixture(t)
	ctx := context.Background()

	task, err := f.tasks.Create(ctx, f.userID, TaskInput{Title: "t"})
	require.NoError(t, err)
	_, err = f.tasks.Complete(ctx, f.userID, task.ID)
	require.NoError(t, err)

	f.logOn(t, 0, 25)
	f.logOn(t, 1, 25)

	_, err = f.quiz.RecordAttempt(ctx, f.userID, "topic", sampleQuestions(), 2)
	require.NoError(t, err)

	report, err := f.svc.Report(ctx, f.userID)
	require.NoError(t, err)

	// 1 completed task, 2 study sessions, 2 correct answers.
	want := int64(1*PointsPerCompletedTask + 2*PointsPerStudySession + 2*PointsPerCorrectAnswer)
	assert.Equal(t, want, report.LearningPoints)
}
