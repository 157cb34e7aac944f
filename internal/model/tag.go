package model

import (
	"time"
)

const (
	TagTypeTag      = "tag"
	TagTypeCategory = "category"
)

// Tag is shared by plain labels (type "tag") and categories (type "category").
// Name lookups are case-sensitive and scoped to the type, backed by the
// composite unique index so concurrent find-or-create calls cannot race.
type Tag struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex:idx_tags_name_type"`
	Type        string    `json:"type" gorm:"not null;uniqueIndex:idx_tags_name_type"` // "tag", "category"
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryHierarchy is a parent edge between two category tags. The unique
// index on TagID gives each category at most one parent.
type CategoryHierarchy struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	TagID       uint      `json:"tag_id" gorm:"not null;uniqueIndex"`
	ParentTagID uint      `json:"parent_tag_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionTag associates questions with tags of either type (many-to-many).
type QuestionTag struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_question_tags_pair"`
	TagID      uint      `json:"tag_id" gorm:"not null;uniqueIndex:idx_question_tags_pair;index"`
	CreatedAt  time.Time `json:"created_at"`
}
