package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"study-assistant/internal/ai"
	"study-assistant/internal/config"
	"study-assistant/internal/logging"
	"study-assistant/internal/repository"
	"study-assistant/internal/service"
	"study-assistant/internal/session"
	"study-assistant/internal/ui"
)

func main() {
	configPath := flag.String("config", "study_assistant.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	studyLogRepo := repository.NewStudyLogRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	contentRepo := repository.NewAIContentRepository(db)
	chatRepo := repository.NewChatRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	sessions := session.NewStore()

	authSvc := service.NewAuthService(userRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	studyLogSvc := service.NewStudyLogService(studyLogRepo)
	quizSvc := service.NewQuizService(quizRepo)
	contentSvc := service.NewAIContentService(contentRepo, chatRepo)
	settingsSvc := service.NewSettingsService(settingRepo)
	analyticsSvc := service.NewAnalyticsService(taskRepo, studyLogRepo, quizRepo)
	reminderSvc := service.NewReminderService(taskSvc)
	backupSvc := service.NewBackupService(db)

	// The key lives in per-user settings, so key changes apply without a
	// restart and each request reads the key for the active session.
	keyFor := func(ctx context.Context) (string, error) {
		sess, ok := sessions.Current()
		if !ok {
			return "", nil
		}
		return settingsSvc.GeminiAPIKey(ctx, sess.UserID)
	}
	gateway := ai.NewGateway(keyFor, ai.WithModel(cfg.GeminiModel))

	deps := &ui.Deps{
		Log:        logger,
		Auth:       authSvc,
		Tasks:      taskSvc,
		Categories: categorySvc,
		StudyLogs:  studyLogSvc,
		Quizzes:    quizSvc,
		Contents:   contentSvc,
		Settings:   settingsSvc,
		Analytics:  analyticsSvc,
		Reminders:  reminderSvc,
		Backup:     backupSvc,
		Gateway:    gateway,
		Sessions:   sessions,
		Timeout:    cfg.RequestTimeout,
	}

	program := tea.NewProgram(ui.NewApp(deps), tea.WithAltScreen())

	scheduler := service.NewSchedulerService()
	_, err = scheduler.ScheduleInterval(cfg.ReminderInterval, func() {
		sess, ok := sessions.Current()
		if !ok {
			return
		}
		reminder, err := reminderSvc.Check(context.Background(), sess.UserID)
		if err != nil {
			logger.Warn("scheduled reminder check failed", zap.Error(err))
			return
		}
		if !reminder.Empty() {
			program.Send(ui.ReminderMsg{Reminder: reminder})
		}
	})
	if err != nil {
		logger.Fatal("schedule reminders", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	logger.Info("study assistant starting",
		zap.String("db", cfg.DatabasePath),
		zap.Duration("reminder_interval", cfg.ReminderInterval))

	if _, err := program.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("study assistant stopped")
}
