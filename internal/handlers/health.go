package handlers

import (
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports the state of the subsystems.
type HealthHandler struct {
	db    *gorm.DB
	queue services.TaskQueue
}

func NewHealthHandler(db *gorm.DB, queue services.TaskQueue) *HealthHandler {
	return &HealthHandler{db: db, queue: queue}
}

// CheckHealth returns the health status of all subsystems.
// GET /api/health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if h.queue != nil && h.queue.IsAsync() {
		queueMode = "async (Redis)"
	}

	// Submitted but not yet analyzed
	var pendingAnalyses int64
	h.db.Model(&models.Initiative{}).
		Where("submitted = ? AND analyzed_at IS NULL", true).
		Count(&pendingAnalyses)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "ai-governance-assistant",
		"components": gin.H{
			"database":         dbStatus,
			"queue_mode":       queueMode,
			"pending_analyses": pendingAnalyses,
		},
	})
}
