package models

import "time"

// Vote represents one user's endorsement of one initiative.
// The (initiative_id, user_id) pair is unique at the database layer so that
// concurrent votes by the same user cannot both land.
type Vote struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InitiativeID uint      `gorm:"not null;uniqueIndex:idx_votes_initiative_user" json:"initiative_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_votes_initiative_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Vote) TableName() string { return "votes" }
