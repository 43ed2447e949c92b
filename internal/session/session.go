package session

import (
	"time"

	"github.com/google/uuid"

	"study-assistant/internal/model"
)

// Session identifies the currently logged-in user for the lifetime of the
// process. There is at most one active session at a time.
type Session struct {
	ID        string
	UserID    uint
	Username  string
	StartedAt time.Time
}

// New starts a session for the given user.
func New(user *model.User) *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		StartedAt: time.Now(),
	}
}
