package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRestoreRequiresConfirmation(t *testing.T) {
	m := newSettingsModel(newTestDeps())
	m, _ = m.open(sectionRestore)
	m.inputs[0].SetValue("/backups/snap.db")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "enter alone must not start the restore")
	require.True(t, m.confirmRestore)
	assert.Equal(t, "/backups/snap.db", m.restorePath)

	t.Run("n cancels", func(t *testing.T) {
		canceled, cmd := m.handleKey(keyRune('n'))
		assert.Nil(t, cmd)
		assert.False(t, canceled.confirmRestore)
	})

	t.Run("y issues the restore command", func(t *testing.T) {
		confirmed, cmd := m.handleKey(keyRune('y'))
		assert.NotNil(t, cmd)
		assert.False(t, confirmed.confirmRestore)
	})
}

func TestRestoreRejectsEmptyPath(t *testing.T) {
	m := newSettingsModel(newTestDeps())
	m, _ = m.open(sectionRestore)

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.confirmRestore)
	assert.NotEmpty(t, m.errText)
}
