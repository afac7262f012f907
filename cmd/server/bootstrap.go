package main

import (
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/config"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/handlers"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/utils"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// appServices holds the initialized dependencies shared by the route handlers.
type appServices struct {
	db                *gorm.DB
	taskQueue         services.TaskQueue
	worker            *services.Worker
	logCleanup        *cron.Cron
	authHandler       *handlers.AuthHandler
	initiativeHandler *handlers.InitiativeHandler
	voteHandler       *handlers.VoteHandler
	commentHandler    *handlers.CommentHandler
	dashboardHandler  *handlers.DashboardHandler
	systemLogHandler  *handlers.SystemLogHandler
	healthHandler     *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	db, err := models.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	services.InitSystemLogger(db)
	logCleanup := services.StartLogCleanupScheduler(db, cfg.Log.RetentionDays)

	// Task queue runs analyses through Redis when enabled, in-process otherwise
	analysisService := services.NewAnalysisService(db, &cfg.AI)
	taskQueue := services.NewTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(analysisService.ProcessAnalysisTask)
	}

	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		worker.SetProcessor(analysisService.ProcessAnalysisTask)
		if err := worker.Start(); err != nil {
			logger.Fatalf("Failed to start analysis worker: %v", err)
		}
	}

	authHandler := handlers.NewAuthHandler(db, cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		db:                db,
		taskQueue:         taskQueue,
		worker:            worker,
		logCleanup:        logCleanup,
		authHandler:       authHandler,
		initiativeHandler: handlers.NewInitiativeHandler(db, taskQueue),
		voteHandler:       handlers.NewVoteHandler(db),
		commentHandler:    handlers.NewCommentHandler(db),
		dashboardHandler:  handlers.NewDashboardHandler(db),
		systemLogHandler:  handlers.NewSystemLogHandler(db),
		healthHandler:     handlers.NewHealthHandler(db, taskQueue),
	}
}

// shutdown gracefully stops schedulers, the worker and the queue.
func (s *appServices) shutdown() {
	if s.logCleanup != nil {
		s.logCleanup.Stop()
	}
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("Shutdown complete")
}
