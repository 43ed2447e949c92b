package service

import (
	"context"
	"fmt"
	"strconv"

	"study-assistant/internal/model"
	"study-assistant/internal/repository"
)

// Pomodoro defaults, used when the user has not overridden them.
const (
	DefaultPomodoroWorkMinutes     = 25
	DefaultPomodoroBreakMinutes    = 5
	DefaultPomodoroLongRestMinutes = 15
)

// SettingsService provides typed access to per-user key/value settings.
type SettingsService struct {
	settings *repository.SettingRepository
}

func NewSettingsService(settings *repository.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// GeminiAPIKey returns the stored key, empty when unset.
func (s *SettingsService) GeminiAPIKey(ctx context.Context, userID uint) (string, error) {
	value, _, err := s.settings.Get(ctx, userID, model.SettingKeyGeminiAPIKey)
	return value, err
}

func (s *SettingsService) SetGeminiAPIKey(ctx context.Context, userID uint, key string) error {
	return s.settings.Set(ctx, userID, model.SettingKeyGeminiAPIKey, key)
}

// PomodoroDurations returns the work/break/long-rest minutes, falling back
// to defaults for unset or unparsable values.
func (s *SettingsService) PomodoroDurations(ctx context.Context, userID uint) (work, shortBreak, longRest int, err error) {
	work, err = s.intSetting(ctx, userID, model.SettingKeyPomodoroWork, DefaultPomodoroWorkMinutes)
	if err != nil {
		return 0, 0, 0, err
	}
	shortBreak, err = s.intSetting(ctx, userID, model.SettingKeyPomodoroBreak, DefaultPomodoroBreakMinutes)
	if err != nil {
		return 0, 0, 0, err
	}
	longRest, err = s.intSetting(ctx, userID, model.SettingKeyPomodoroLongRest, DefaultPomodoroLongRestMinutes)
	if err != nil {
		return 0, 0, 0, err
	}
	return work, shortBreak, longRest, nil
}

// SetPomodoroDurations stores the three durations. Each must be positive.
func (s *SettingsService) SetPomodoroDurations(ctx context.Context, userID uint, work, shortBreak, longRest int) error {
	if work <= 0 || shortBreak <= 0 || longRest <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrValidation)
	}
	pairs := map[string]int{
		model.SettingKeyPomodoroWork:     work,
		model.SettingKeyPomodoroBreak:    shortBreak,
		model.SettingKeyPomodoroLongRest: longRest,
	}
	for key, minutes := range pairs {
		if err := s.settings.Set(ctx, userID, key, strconv.Itoa(minutes)); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsService) intSetting(ctx context.Context, userID uint, key string, fallback int) (int, error) {
	value, ok, err := s.settings.Get(ctx, userID, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback, nil
	}
	return n, nil
}
