package services

import (
	"errors"
	"time"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/internal/scoring"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"
	"gorm.io/gorm"
)

// EvaluationService records admin priority evaluations. Every write runs the
// score engine and persists the full evaluation in one statement, so the
// derived (score, quadrant) pair can never drift from (impact, effort).
type EvaluationService struct {
	db *gorm.DB
}

func NewEvaluationService(db *gorm.DB) *EvaluationService {
	return &EvaluationService{db: db}
}

type EvaluateRequest struct {
	Impact          string   `json:"impact" binding:"required"`
	Effort          string   `json:"effort" binding:"required"`
	EvaluationNotes *string  `json:"evaluation_notes"`
	Tags            []string `json:"tags"`
}

// Evaluate scores an initiative. Re-evaluating overwrites every evaluation
// field; last write wins, no merge, no history.
func (s *EvaluationService) Evaluate(initiativeID uint, req *EvaluateRequest, actor Actor) (*models.Initiative, error) {
	if !actor.IsAdmin() {
		return nil, forbiddenf("evaluation requires admin role")
	}

	impact, err := scoring.ParseLevel(req.Impact)
	if err != nil {
		return nil, invalidf("impact: %v", err)
	}
	effort, err := scoring.ParseLevel(req.Effort)
	if err != nil {
		return nil, invalidf("effort: %v", err)
	}

	var initiative models.Initiative
	if err := s.db.First(&initiative, initiativeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	score, quadrant, err := scoring.Classify(impact, effort)
	if err != nil {
		return nil, invalidf("%v", err)
	}

	now := time.Now()

	// Notes and tags are optional and carry no defaults; absent means null.
	var tags models.StringList
	if req.Tags != nil {
		tags = models.StringList(req.Tags)
	}

	// Single-statement update: all evaluation fields land together or not
	// at all. Concurrent evaluations are last-write-wins, never torn.
	updates := map[string]interface{}{
		"impact":            string(impact),
		"effort":            string(effort),
		"evaluation_notes":  req.EvaluationNotes,
		"tags":              tags,
		"priority_score":    score,
		"priority_quadrant": string(quadrant),
		"evaluated_by":      actor.StampName(),
		"evaluated_at":      now,
	}
	if err := s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Updates(updates).Error; err != nil {
		return nil, err
	}

	logger.Info().
		Uint("initiative_id", initiativeID).
		Str("impact", string(impact)).
		Str("effort", string(effort)).
		Int("score", score).
		Str("quadrant", string(quadrant)).
		Str("evaluated_by", actor.StampName()).
		Msg("initiative evaluated")

	if err := s.db.First(&initiative, initiativeID).Error; err != nil {
		return nil, err
	}
	return &initiative, nil
}
