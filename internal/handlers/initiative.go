package handlers

import (
	"strconv"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/middleware"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InitiativeHandler struct {
	db                *gorm.DB
	initiativeService *services.InitiativeService
	evaluationService *services.EvaluationService
	roadmapService    *services.RoadmapService
}

func NewInitiativeHandler(db *gorm.DB, queue services.TaskQueue) *InitiativeHandler {
	return &InitiativeHandler{
		db:                db,
		initiativeService: services.NewInitiativeService(db, queue),
		evaluationService: services.NewEvaluationService(db),
		roadmapService:    services.NewRoadmapService(db),
	}
}

// stripAdminFields hides evaluation notes from regular users.
func stripAdminFields(initiative *models.Initiative, c *gin.Context) *models.Initiative {
	if middleware.GetRole(c) != "admin" {
		initiative.EvaluationNotes = nil
	}
	return initiative
}

// List returns paginated initiatives with optional filters
// GET /api/initiatives
func (h *InitiativeHandler) List(c *gin.Context) {
	var req services.InitiativeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.initiativeService.List(&req)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}

	if middleware.GetRole(c) != "admin" {
		for i := range resp.Items {
			resp.Items[i].EvaluationNotes = nil
		}
	}
	response.Success(c, resp)
}

// GetByID returns an initiative by ID
// GET /api/initiatives/:id
func (h *InitiativeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	initiative, err := h.initiativeService.Get(uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stripAdminFields(initiative, c))
}

// Create starts a new intake
// POST /api/initiatives
func (h *InitiativeHandler) Create(c *gin.Context) {
	var req services.CreateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	initiative, err := h.initiativeService.Create(&req, claimsActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, initiative)
}

// Update applies an owner's partial edit of the content fields
// PUT /api/initiatives/:id
func (h *InitiativeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	var req services.UpdateInitiativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	initiative, err := h.initiativeService.UpdateContent(uint(id), &req, claimsActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stripAdminFields(initiative, c))
}

// Submit finalizes the intake and queues the governance analysis
// POST /api/initiatives/:id/submit
func (h *InitiativeHandler) Submit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	initiative, err := h.initiativeService.Submit(uint(id), claimsActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, stripAdminFields(initiative, c))
}

// SetStatus updates the admin-managed intake status
// PUT /api/initiatives/:id/status
func (h *InitiativeHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	initiative, err := h.initiativeService.SetStatus(uint(id), req.Status, claimsActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, initiative)
}

// SetRoadmapStatus moves an initiative on the roadmap board
// PUT /api/initiatives/:id/roadmap
func (h *InitiativeHandler) SetRoadmapStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	var req struct {
		RoadmapStatus string `json:"roadmap_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	initiative, err := h.roadmapService.SetStatus(uint(id), req.RoadmapStatus, claimsActor(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, initiative)
}

// ListRoadmap returns initiatives in one roadmap state
// GET /api/roadmap?status=...
func (h *InitiativeHandler) ListRoadmap(c *gin.Context) {
	status := c.Query("status")
	initiatives, err := h.roadmapService.ListByStatus(status)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, initiatives)
}

// Evaluate records an admin priority evaluation
// PUT /api/initiatives/:id/evaluation
func (h *InitiativeHandler) Evaluate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	initiative, err := h.evaluationService.Evaluate(uint(id), &req, resolveActor(h.db, c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, initiative)
}

// Delete removes an initiative with its votes and comments
// DELETE /api/initiatives/:id
func (h *InitiativeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	if err := h.initiativeService.Delete(uint(id), claimsActor(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "initiative deleted"})
}
