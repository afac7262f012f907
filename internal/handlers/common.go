package handlers

import (
	"errors"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/middleware"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/services"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// claimsActor builds an actor from the JWT claims alone. Enough for every
// authorization check; profile fields stay empty.
func claimsActor(c *gin.Context) services.Actor {
	return services.Actor{
		ID:       middleware.GetUserID(c),
		Username: middleware.GetUsername(c),
		Role:     middleware.GetRole(c),
	}
}

// resolveActor additionally loads the profile fields used for name stamping.
// A failed lookup degrades to the claims actor rather than failing the request.
func resolveActor(db *gorm.DB, c *gin.Context) services.Actor {
	actor := claimsActor(c)
	var user models.User
	if err := db.First(&user, actor.ID).Error; err == nil {
		actor.DisplayName = user.Nickname
		actor.Email = user.Email
	}
	return actor
}

// writeServiceError maps service sentinel errors to HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyVoted):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
