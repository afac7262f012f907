package services

import (
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"gorm.io/gorm"
)

// DashboardService aggregates simple counts for the admin overview. Nothing
// fancier than counts and a top-voted list lives here.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type QuadrantCount struct {
	Quadrant string `json:"quadrant"`
	Count    int64  `json:"count"`
}

type DashboardStats struct {
	TotalInitiatives int64               `json:"total_initiatives"`
	TotalVotes       int64               `json:"total_votes"`
	TotalComments    int64               `json:"total_comments"`
	ByStatus         []StatusCount       `json:"by_status"`
	ByRoadmapStatus  []StatusCount       `json:"by_roadmap_status"`
	ByQuadrant       []QuadrantCount     `json:"by_quadrant"`
	TopVoted         []models.Initiative `json:"top_voted"`
}

func (s *DashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.Initiative{}).Count(&stats.TotalInitiatives).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Vote{}).Count(&stats.TotalVotes).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Initiative{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Initiative{}).
		Select("roadmap_status AS status, COUNT(*) AS count").
		Group("roadmap_status").
		Scan(&stats.ByRoadmapStatus).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Initiative{}).
		Select("priority_quadrant AS quadrant, COUNT(*) AS count").
		Where("priority_quadrant <> ''").
		Group("priority_quadrant").
		Scan(&stats.ByQuadrant).Error; err != nil {
		return nil, err
	}

	var top []models.Initiative
	if err := s.db.Model(&models.Initiative{}).
		Select("initiatives.*, COUNT(votes.id) AS vote_count").
		Joins("LEFT JOIN votes ON votes.initiative_id = initiatives.id").
		Group("initiatives.id").
		Order("vote_count DESC, initiatives.updated_at DESC").
		Limit(5).
		Find(&top).Error; err != nil {
		return nil, err
	}
	stats.TopVoted = top

	return stats, nil
}
