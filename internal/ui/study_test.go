package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runningStudyModel() studyModel {
	m := newStudyModel(newTestDeps())
	m.subject = "algebra"
	m.phase = phaseWork
	m.remaining = time.Second
	return m
}

func tickUntilPhaseChange(t *testing.T, m studyModel) studyModel {
	t.Helper()
	updated, cmd := m.update(pomodoroTickMsg(time.Now()))
	require.NotNil(t, cmd)
	return updated
}

func TestPomodoroWorkRollsIntoBreak(t *testing.T) {
	m := runningStudyModel()

	m = tickUntilPhaseChange(t, m)
	assert.Equal(t, phaseBreak, m.phase)
	assert.Equal(t, 1, m.workDone)
	assert.Equal(t, time.Duration(m.breakMinutes)*time.Minute, m.remaining)
}

func TestPomodoroLongRestAfterFourIntervals(t *testing.T) {
	m := runningStudyModel()
	m.workDone = 3 // the next finished interval is the fourth

	m = tickUntilPhaseChange(t, m)
	assert.Equal(t, phaseLongRest, m.phase)
	assert.Equal(t, 4, m.workDone)
	assert.Equal(t, time.Duration(m.restMinutes)*time.Minute, m.remaining)
}

func TestPomodoroBreakRollsIntoWork(t *testing.T) {
	m := runningStudyModel()
	m.phase = phaseBreak
	m.remaining = time.Second

	m = tickUntilPhaseChange(t, m)
	assert.Equal(t, phaseWork, m.phase)
	assert.Equal(t, time.Duration(m.workMinutes)*time.Minute, m.remaining)
}

func TestPomodoroPauseStopsCountdown(t *testing.T) {
	m := runningStudyModel()
	m.paused = true
	m.remaining = 10 * time.Second

	updated, _ := m.update(pomodoroTickMsg(time.Now()))
	assert.Equal(t, 10*time.Second, updated.remaining)
}
