package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/config"
	"github.com/hibiken/asynq"
)

// Worker consumes analysis tasks from the Redis queue.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor func(context.Context, *AnalysisTask) error
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewWorker creates a new worker instance; nil when Redis is disabled.
func NewWorker(cfg *config.RedisConfig) *Worker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("type", task.Type()).Msg("worker task error")
			}),
		},
	)

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// SetProcessor sets the function that handles analysis tasks
func (w *Worker) SetProcessor(processor func(context.Context, *AnalysisTask) error) {
	w.processor = processor
}

// Start begins processing tasks
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeAnalysis, w.handleAnalysisTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Info().Msg("starting async worker")
		if err := w.server.Run(w.mux); err != nil {
			logger.Error().Err(err).Msg("worker server error")
		}
	}()

	return nil
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Info().Msg("shutting down worker")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Info().Msg("worker shutdown complete")
}

// handleAnalysisTask processes a single analysis task
func (w *Worker) handleAnalysisTask(ctx context.Context, t *asynq.Task) error {
	var task AnalysisTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Error().Err(err).Msg("failed to unmarshal analysis task")
		return err
	}

	if w.processor == nil {
		logger.Warn().Msg("worker has no processor set")
		return nil
	}

	return w.processor(ctx, &task)
}
