package model

import (
	"time"
)

const (
	InterviewTypeScheduled = "scheduled"
	InterviewTypeInstant   = "instant"
)

const (
	InterviewStatusDraft     = "draft"
	InterviewStatusActive    = "active"
	InterviewStatusCompleted = "completed"
	InterviewStatusArchived  = "archived"
)

type Interview struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	CreatorID   uint               `json:"creator_id" gorm:"not null;index"`
	Creator     User               `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Title       string             `json:"title" gorm:"not null"`
	Description string             `json:"description,omitempty" gorm:"type:text"`
	Type        string             `json:"type" gorm:"not null;default:'scheduled';index"` // "scheduled", "instant"
	Status      string             `json:"status" gorm:"not null;default:'draft';index"`   // "draft", "active", "completed", "archived"
	ScheduledAt *time.Time         `json:"scheduled_at,omitempty" gorm:"index"`
	Duration    *int               `json:"duration,omitempty"` // minutes
	AccessCode  *string            `json:"access_code,omitempty" gorm:"uniqueIndex"`
	Sections    []InterviewSection `json:"sections,omitempty" gorm:"foreignKey:InterviewID"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func ValidInterviewType(t string) bool {
	return t == InterviewTypeScheduled || t == InterviewTypeInstant
}

func ValidInterviewStatus(s string) bool {
	switch s {
	case InterviewStatusDraft, InterviewStatusActive, InterviewStatusCompleted, InterviewStatusArchived:
		return true
	}
	return false
}
