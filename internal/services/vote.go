package services

import (
	"errors"

	"github.com/IrvinCruzAI/ai-governance-assistant/internal/models"
	"gorm.io/gorm"
)

// VoteService is the vote ledger: one vote per user per initiative, counts
// always computed from the votes table so they can never drift.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Vote records actor's endorsement of an initiative. The check-then-insert
// race is settled by the (initiative_id, user_id) unique index: the loser of
// a same-user race gets ErrAlreadyVoted, never a duplicate row.
func (s *VoteService) Vote(initiativeID uint, actor Actor) error {
	var exists int64
	if err := s.db.Model(&models.Initiative{}).Where("id = ?", initiativeID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	vote := models.Vote{InitiativeID: initiativeID, UserID: actor.ID}
	if err := s.db.Create(&vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}

// Unvote removes actor's vote. Removing a vote that does not exist is a
// no-op success.
func (s *VoteService) Unvote(initiativeID uint, actor Actor) error {
	return s.db.
		Where("initiative_id = ? AND user_id = ?", initiativeID, actor.ID).
		Delete(&models.Vote{}).Error
}

func (s *VoteService) VoteCount(initiativeID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Vote{}).Where("initiative_id = ?", initiativeID).Count(&count).Error
	return count, err
}

func (s *VoteService) HasVoted(initiativeID uint, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Vote{}).
		Where("initiative_id = ? AND user_id = ?", initiativeID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListAllWithVoteCounts returns every initiative annotated with its vote
// count, most-voted first, ties broken by most recent update.
func (s *VoteService) ListAllWithVoteCounts() ([]models.Initiative, error) {
	var initiatives []models.Initiative
	err := s.db.Model(&models.Initiative{}).
		Select("initiatives.*, COUNT(votes.id) AS vote_count").
		Joins("LEFT JOIN votes ON votes.initiative_id = initiatives.id").
		Group("initiatives.id").
		Order("vote_count DESC, initiatives.updated_at DESC").
		Find(&initiatives).Error
	if err != nil {
		return nil, err
	}
	return initiatives, nil
}
