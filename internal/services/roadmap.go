package services

import (
	"errors"
	"time"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"gorm.io/gorm"
)

// RoadmapService manages the deployment lifecycle of initiatives. The
// transition graph is deliberately flat: an admin may move an initiative
// from any state to any state. Roadmap status is independent of the intake
// status field and the two are never conflated.
type RoadmapService struct {
	db *gorm.DB
}

func NewRoadmapService(db *gorm.DB) *RoadmapService {
	return &RoadmapService{db: db}
}

func validRoadmapStatus(status string) bool {
	for _, s := range models.RoadmapStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// SetStatus moves an initiative to a new roadmap state and bumps updated_at.
// No history is kept here; the audit middleware records who did what.
func (s *RoadmapService) SetStatus(initiativeID uint, status string, actor Actor) (*models.Initiative, error) {
	if !actor.IsAdmin() {
		return nil, forbiddenf("roadmap changes require admin role")
	}
	if !validRoadmapStatus(status) {
		return nil, invalidf("unknown roadmap status %q", status)
	}

	var initiative models.Initiative
	if err := s.db.First(&initiative, initiativeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"roadmap_status": status,
		"updated_at":     time.Now(),
	}
	if err := s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.db.First(&initiative, initiativeID).Error; err != nil {
		return nil, err
	}
	return &initiative, nil
}

// ListByStatus returns every initiative in the given roadmap state,
// most-recently-updated first.
func (s *RoadmapService) ListByStatus(status string) ([]models.Initiative, error) {
	if !validRoadmapStatus(status) {
		return nil, invalidf("unknown roadmap status %q", status)
	}

	var initiatives []models.Initiative
	err := s.db.Where("roadmap_status = ?", status).
		Order("updated_at DESC").
		Find(&initiatives).Error
	if err != nil {
		return nil, err
	}
	return initiatives, nil
}
