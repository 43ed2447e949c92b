package model

import "time"

// QuizResult is an append-only record of a finished quiz. QuestionsJSON
// holds the full generated question set so past quizzes can be reviewed.
type QuizResult struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index"`
	Topic          string
	Score          int
	TotalQuestions int
	QuestionsJSON  string `gorm:"type:text"`
	TakenAt        time.Time
	CreatedAt      time.Time
}
