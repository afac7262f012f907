package services

import (
	"errors"
	"strings"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"github.com/IrvinCruzAI/ai-governance-assistant/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntakeSteps is the number of guided intake form steps.
const IntakeSteps = 4

// InitiativeService owns the intake lifecycle of proposals: creation, the
// owner-only step saves, submission (which queues the analysis run), the
// admin-managed intake status and the hard delete.
type InitiativeService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewInitiativeService(db *gorm.DB, queue TaskQueue) *InitiativeService {
	return &InitiativeService{db: db, queue: queue}
}

type CreateInitiativeRequest struct {
	Title            string `json:"title" binding:"required"`
	ProblemStatement string `json:"problem_statement"`
}

type UpdateInitiativeRequest struct {
	Title            *string `json:"title"`
	ProblemStatement *string `json:"problem_statement"`
	Approach         *string `json:"approach"`
	ExpectedOutcome  *string `json:"expected_outcome"`
	Stakeholders     *string `json:"stakeholders"`
	IntakeStep       *int    `json:"intake_step"`
}

type InitiativeListRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status"`
	RoadmapStatus string `form:"roadmap_status"`
	Quadrant      string `form:"quadrant"`
	OwnerID       uint   `form:"owner_id"`
	Search        string `form:"search"`
}

type InitiativeListResponse struct {
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Items    []models.Initiative `json:"items"`
}

// Create starts a new intake. The caller becomes the immutable owner.
func (s *InitiativeService) Create(req *CreateInitiativeRequest, actor Actor) (*models.Initiative, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalidf("title must not be empty")
	}

	initiative := models.Initiative{
		OwnerID:          actor.ID,
		Title:            title,
		ProblemStatement: req.ProblemStatement,
		IntakeStep:       1,
		Status:           models.StatusPending,
		RoadmapStatus:    models.RoadmapUnderReview,
	}
	if err := s.db.Create(&initiative).Error; err != nil {
		return nil, err
	}
	return &initiative, nil
}

// Get returns an initiative for any authenticated user. Evaluation notes are
// an admin-only detail; the handler strips them for regular users.
func (s *InitiativeService) Get(id uint) (*models.Initiative, error) {
	var initiative models.Initiative
	if err := s.db.Preload("Owner").First(&initiative, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &initiative, nil
}

// List returns paginated initiatives with optional filters.
func (s *InitiativeService) List(req *InitiativeListRequest) (*InitiativeListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Initiative{})

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.RoadmapStatus != "" {
		query = query.Where("roadmap_status = ?", req.RoadmapStatus)
	}
	if req.Quadrant != "" {
		query = query.Where("priority_quadrant = ?", req.Quadrant)
	}
	if req.OwnerID != 0 {
		query = query.Where("owner_id = ?", req.OwnerID)
	}
	if req.Search != "" {
		query = query.Where("title LIKE ?", "%"+req.Search+"%")
	}

	var total int64
	query.Count(&total)

	var initiatives []models.Initiative
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("updated_at DESC").Find(&initiatives).Error; err != nil {
		return nil, err
	}

	return &InitiativeListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    initiatives,
	}, nil
}

// UpdateContent applies an owner's partial edit of the content fields.
// Governance, evaluation and lifecycle fields are not reachable from here.
func (s *InitiativeService) UpdateContent(id uint, req *UpdateInitiativeRequest, actor Actor) (*models.Initiative, error) {
	initiative, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if initiative.OwnerID != actor.ID {
		return nil, forbiddenf("only the owner may edit initiative content")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalidf("title must not be empty")
		}
		updates["title"] = title
	}
	if req.ProblemStatement != nil {
		updates["problem_statement"] = *req.ProblemStatement
	}
	if req.Approach != nil {
		updates["approach"] = *req.Approach
	}
	if req.ExpectedOutcome != nil {
		updates["expected_outcome"] = *req.ExpectedOutcome
	}
	if req.Stakeholders != nil {
		updates["stakeholders"] = *req.Stakeholders
	}
	if req.IntakeStep != nil {
		if *req.IntakeStep < 1 || *req.IntakeStep > IntakeSteps {
			return nil, invalidf("intake_step must be between 1 and %d", IntakeSteps)
		}
		updates["intake_step"] = *req.IntakeStep
	}

	if len(updates) == 0 {
		return initiative, nil
	}

	if err := s.db.Model(&models.Initiative{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Submit finalizes the intake and queues the analysis run that stamps the
// governance fields. Only the owner may submit, and only once.
func (s *InitiativeService) Submit(id uint, actor Actor) (*models.Initiative, error) {
	initiative, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if initiative.OwnerID != actor.ID {
		return nil, forbiddenf("only the owner may submit an initiative")
	}
	if initiative.Submitted {
		return nil, invalidf("initiative already submitted")
	}

	if err := s.db.Model(&models.Initiative{}).Where("id = ?", id).Updates(map[string]interface{}{
		"submitted":   true,
		"intake_step": IntakeSteps,
	}).Error; err != nil {
		return nil, err
	}

	task := &AnalysisTask{
		TaskID:       uuid.NewString(),
		InitiativeID: id,
	}
	if err := s.queue.Enqueue(task); err != nil {
		// Submission stands; the analysis can be re-queued by an admin.
		logger.Error().Err(err).Uint("initiative_id", id).Msg("failed to enqueue analysis task")
	}

	return s.Get(id)
}

// SetStatus updates the admin-managed intake status.
func (s *InitiativeService) SetStatus(id uint, status string, actor Actor) (*models.Initiative, error) {
	if !actor.IsAdmin() {
		return nil, forbiddenf("status changes require admin role")
	}
	valid := false
	for _, st := range models.IntakeStatuses {
		if st == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, invalidf("unknown status %q", status)
	}

	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Initiative{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Delete removes an initiative and its votes and comments. Hard delete, no
// tombstone, all three tables in one transaction.
func (s *InitiativeService) Delete(id uint, actor Actor) error {
	if !actor.IsAdmin() {
		return forbiddenf("delete requires admin role")
	}

	if _, err := s.Get(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("initiative_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("initiative_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Initiative{}, id).Error
	})
}
