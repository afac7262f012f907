package handlers

import (
	"strconv"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db             *gorm.DB
	commentService *services.CommentService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{
		db:             db,
		commentService: services.NewCommentService(db),
	}
}

// Create adds a comment to an initiative
// POST /api/initiatives/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(uint(id), req.Content, resolveActor(h.db, c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, comment)
}

// List returns an initiative's comments oldest-first
// GET /api/initiatives/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	comments, err := h.commentService.List(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, comments)
}

// Delete removes the caller's own comment
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.commentService.Delete(uint(id), claimsActor(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "comment deleted"})
}
