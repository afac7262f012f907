package services

import (
	"context"
	"encoding/json"

	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/config"
	"github.com/hibiken/asynq"
)

const (
	TaskTypeAnalysis = "analysis:process"
)

// AnalysisTask is one queued governance-analysis run.
type AnalysisTask struct {
	TaskID       string `json:"task_id"` // correlation id for logs
	InitiativeID uint   `json:"initiative_id"`
}

// TaskQueue defines the interface for analysis task processing
type TaskQueue interface {
	// Enqueue adds a task to the queue
	Enqueue(task *AnalysisTask) error
	// IsAsync returns true if queue processes tasks asynchronously
	IsAsync() bool
	// Close gracefully shuts down the queue
	Close() error
}

// NewTaskQueue builds the queue from config: Redis-backed when enabled and
// reachable, in-process otherwise. The caller wires the processor and owns
// the returned handle; there is no package-level instance.
func NewTaskQueue(cfg *config.Config) TaskQueue {
	if cfg.Redis.Enabled {
		queue, err := NewAsyncQueue(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, falling back to sync queue")
			return NewSyncQueue()
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("async analysis queue initialized")
		return queue
	}
	logger.Info().Msg("sync analysis queue initialized (redis disabled)")
	return NewSyncQueue()
}

// AsyncQueue implements TaskQueue using asynq (Redis-based)
type AsyncQueue struct {
	client *asynq.Client
}

// NewAsyncQueue creates a new Redis-based async queue
func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()

	_, err := inspector.Queues()
	if err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

// Enqueue adds an analysis task to the async queue
func (q *AsyncQueue) Enqueue(task *AnalysisTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeAnalysis, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Info().Str("task_id", info.ID).Str("queue", info.Queue).Msg("analysis task enqueued")
	return nil
}

// IsAsync returns true for async queue
func (q *AsyncQueue) IsAsync() bool {
	return true
}

// Close closes the async queue client
func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// SyncQueue implements TaskQueue with in-process processing (no Redis)
type SyncQueue struct {
	processor func(context.Context, *AnalysisTask) error
}

// NewSyncQueue creates a new synchronous queue
func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function to process tasks
func (q *SyncQueue) SetProcessor(processor func(context.Context, *AnalysisTask) error) {
	q.processor = processor
}

// Enqueue processes the task immediately, off the request goroutine
func (q *SyncQueue) Enqueue(task *AnalysisTask) error {
	if q.processor == nil {
		logger.Warn().Msg("sync queue has no processor set, task dropped")
		return nil
	}

	go func() {
		ctx := context.Background()
		if err := q.processor(ctx, task); err != nil {
			logger.Error().Err(err).Str("task_id", task.TaskID).Msg("analysis task processing failed")
		}
	}()

	return nil
}

// IsAsync returns false for sync queue
func (q *SyncQueue) IsAsync() bool {
	return false
}

// Close is a no-op for sync queue
func (q *SyncQueue) Close() error {
	return nil
}
