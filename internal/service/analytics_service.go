package service

import (
	"context"
	"time"

	"study-assistant/internal/repository"
)

// Learning point weights per activity type.
const (
	PointsPerCompletedTask = 10
	PointsPerStudySession  = 5
	PointsPerCorrectAnswer = 1
)

// streakLookback bounds how far back the streak walk scans.
const streakLookback = 365

// ProgressReport aggregates everything shown on the analytics screen.
type ProgressReport struct {
	TotalTasks        int64
	CompletedTasks    int64
	CompletionRate    float64 // 0..100, zero when no tasks exist
	StudySessions     int64
	TotalStudyMinutes int64
	StudyDaysLast7    int64
	StudyDaysLast30   int64
	QuizAttempts      int64
	CorrectAnswers    int64
	QuizAveragePct    float64 // mean of score/total per attempt, 0..100
	MinutesBySubject  []repository.SubjectMinutes
	StreakDays        int
	LearningPoints    int64
}

// AnalyticsService computes progress statistics from stored activity.
type AnalyticsService struct {
	tasks   *repository.TaskRepository
	logs    *repository.StudyLogRepository
	quizzes *repository.QuizRepository
	now     func() time.Time
}

func NewAnalyticsService(tasks *repository.TaskRepository, logs *repository.StudyLogRepository, quizzes *repository.QuizRepository) *AnalyticsService {
	return &AnalyticsService{tasks: tasks, logs: logs, quizzes: quizzes, now: time.Now}
}

// Report builds the full progress report for a user.
func (s *AnalyticsService) Report(ctx context.Context, userID uint) (*ProgressReport, error) {
	report := &ProgressReport{}
	now := s.now()

	total, completed, err := s.tasks.CountByCompletion(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	report.TotalTasks = total
	report.CompletedTasks = completed
	if total > 0 {
		report.CompletionRate = float64(completed) / float64(total) * 100
	}

	if report.StudySessions, err = s.logs.Count(ctx, userID); err != nil {
		return nil, err
	}
	if report.TotalStudyMinutes, err = s.logs.TotalMinutes(ctx, userID); err != nil {
		return nil, err
	}

	// One fetch serves the streak and both day windows. Days are keyed in
	// the report's timezone, not the UTC dates SQLite would produce.
	stamps, err := s.logs.LoggedAtSince(ctx, userID, midnight(now).AddDate(0, 0, -streakLookback))
	if err != nil {
		return nil, err
	}
	days := distinctDays(stamps, now.Location())
	report.StudyDaysLast7 = countDaysFrom(days, dateKey(midnight(now).AddDate(0, 0, -6)))
	report.StudyDaysLast30 = countDaysFrom(days, dateKey(midnight(now).AddDate(0, 0, -29)))

	if report.QuizAttempts, report.CorrectAnswers, err = s.quizzes.Totals(ctx, userID); err != nil {
		return nil, err
	}
	ratio, err := s.quizzes.AverageRatio(ctx, userID)
	if err != nil {
		return nil, err
	}
	report.QuizAveragePct = ratio * 100

	if report.MinutesBySubject, err = s.logs.MinutesBySubject(ctx, userID); err != nil {
		return nil, err
	}

	report.StreakDays = streakDays(days, now)

	report.LearningPoints = report.CompletedTasks*PointsPerCompletedTask +
		report.StudySessions*PointsPerStudySession +
		report.CorrectAnswers*PointsPerCorrectAnswer

	return report, nil
}

// distinctDays keys each timestamp by its calendar day in loc.
func distinctDays(stamps []time.Time, loc *time.Location) map[string]bool {
	days := make(map[string]bool, len(stamps))
	for _, ts := range stamps {
		days[dateKey(ts.In(loc))] = true
	}
	return days
}

// countDaysFrom counts study days on or after fromKey. Day keys sort
// lexicographically, so a string comparison is a date comparison.
func countDaysFrom(days map[string]bool, fromKey string) int64 {
	var n int64
	for day := range days {
		if day >= fromKey {
			n++
		}
	}
	return n
}

// streakDays counts consecutive study days ending today, or ending yesterday
// if nothing has been logged yet today.
func streakDays(days map[string]bool, now time.Time) int {
	if len(days) == 0 {
		return 0
	}

	cursor := midnight(now)
	if !days[dateKey(cursor)] {
		// The streak survives until the end of today.
		cursor = cursor.AddDate(0, 0, -1)
		if !days[dateKey(cursor)] {
			return 0
		}
	}

	streak := 0
	for days[dateKey(cursor)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
