package handlers

import (
	"strconv"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/middleware"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(db *gorm.DB) *VoteHandler {
	return &VoteHandler{
		voteService: services.NewVoteService(db),
	}
}

// Vote casts the caller's vote on an initiative
// POST /api/initiatives/:id/vote
func (h *VoteHandler) Vote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	if err := h.voteService.Vote(uint(id), claimsActor(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	count, err := h.voteService.VoteCount(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"vote_count": count, "voted": true})
}

// Unvote withdraws the caller's vote; no-op if none exists
// DELETE /api/initiatives/:id/vote
func (h *VoteHandler) Unvote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	if err := h.voteService.Unvote(uint(id), claimsActor(c)); err != nil {
		writeServiceError(c, err)
		return
	}

	count, err := h.voteService.VoteCount(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"vote_count": count, "voted": false})
}

// GetVoteStatus reports the count and whether the caller has voted
// GET /api/initiatives/:id/vote
func (h *VoteHandler) GetVoteStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid initiative id")
		return
	}

	count, err := h.voteService.VoteCount(uint(id))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	voted, err := h.voteService.HasVoted(uint(id), middleware.GetUserID(c))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"vote_count": count, "voted": voted})
}

// Board returns all initiatives ranked by vote count
// GET /api/votes/board
func (h *VoteHandler) Board(c *gin.Context) {
	initiatives, err := h.voteService.ListAllWithVoteCounts()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, initiatives)
}
