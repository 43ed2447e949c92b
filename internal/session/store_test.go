package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-assistant/internal/model"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	_, ok := store.Current()
	assert.False(t, ok, "fresh store has no session")

	sess := store.Start(&model.User{ID: 7, Username: "alice"})
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID, "sessions carry an identifier for log correlation")
	assert.Equal(t, uint(7), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
	assert.False(t, sess.StartedAt.IsZero())

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, sess, current)

	t.Run("starting again replaces the session", func(t *testing.T) {
		next := store.Start(&model.User{ID: 8, Username: "bob"})
		assert.NotEqual(t, sess.ID, next.ID)

		current, ok := store.Current()
		require.True(t, ok)
		assert.Equal(t, uint(8), current.UserID)
	})

	t.Run("clear logs out", func(t *testing.T) {
		store.Clear()
		_, ok := store.Current()
		assert.False(t, ok)
	})
}
