package services

import (
	"errors"
	"strings"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"gorm.io/gorm"
)

// CommentService manages initiative discussion threads. Comments are
// immutable once created; the author's name and role are denormalized at
// creation so later profile edits don't rewrite history.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create adds a comment from any authenticated user.
func (s *CommentService) Create(initiativeID uint, content string, actor Actor) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalidf("comment content must not be empty")
	}
	if len(content) > models.MaxCommentLength {
		return nil, invalidf("comment content exceeds %d characters", models.MaxCommentLength)
	}

	var exists int64
	if err := s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		InitiativeID: initiativeID,
		AuthorID:     actor.ID,
		AuthorName:   actor.StampName(),
		AuthorRole:   actor.Role,
		Content:      content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// List returns an initiative's comments oldest-first.
func (s *CommentService) List(initiativeID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("initiative_id = ?", initiativeID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes a comment if the requester is its author. The delete is
// scoped to the author in the statement itself, so a non-author's request
// cannot touch the row: it succeeds as a no-op and the comment survives.
func (s *CommentService) Delete(commentID uint, actor Actor) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.
		Where("id = ? AND author_id = ?", commentID, actor.ID).
		Delete(&models.Comment{}).Error
}
