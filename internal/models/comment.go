package models

import "time"

// MaxCommentLength bounds comment content (runes are not counted; this is a
// byte bound, matching the column size).
const MaxCommentLength = 5000

// Comment represents one remark on an initiative's discussion thread.
// Author name and role are denormalized at creation time; comments are
// never edited afterwards.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InitiativeID uint      `gorm:"index;not null" json:"initiative_id"`
	AuthorID     uint      `gorm:"index;not null" json:"author_id"`
	AuthorName   string    `gorm:"size:255" json:"author_name"`
	AuthorRole   string    `gorm:"size:50" json:"author_role"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
