package model

import "time"

// AIContentKind classifies archived AI responses.
type AIContentKind string

const (
	KindExplanation  AIContentKind = "explanation"
	KindSummary      AIContentKind = "summary"
	KindQuestions    AIContentKind = "questions"
	KindChatSnapshot AIContentKind = "chat_snapshot"
)

// AIContent is an append-only archive entry of an AI response, browsable in
// the Review Hub.
type AIContent struct {
	ID           uint          `gorm:"primaryKey"`
	UserID       uint          `gorm:"index"`
	Kind         AIContentKind `gorm:"size:32"`
	Title        string
	Prompt       string `gorm:"type:text"`
	ResponseText string `gorm:"type:text;not null"`
	CreatedAt    time.Time
}
