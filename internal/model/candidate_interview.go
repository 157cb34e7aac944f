package model

import (
	"time"
)

const (
	CandidateInterviewStatusPending    = "pending"
	CandidateInterviewStatusInProgress = "in_progress"
	CandidateInterviewStatusCompleted  = "completed"
	CandidateInterviewStatusExpired    = "expired"
)

// CandidateInterview is one candidate's single permitted attempt at one
// interview, enforced by the unique (candidate_id, interview_id) pair.
type CandidateInterview struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	CandidateID uint       `json:"candidate_id" gorm:"not null;uniqueIndex:idx_candidate_interviews_pair;index:idx_candidate_interviews_candidate_status"`
	Candidate   User       `json:"candidate,omitempty" gorm:"foreignKey:CandidateID"`
	InterviewID uint       `json:"interview_id" gorm:"not null;uniqueIndex:idx_candidate_interviews_pair;index"`
	Interview   Interview  `json:"interview,omitempty" gorm:"foreignKey:InterviewID"`
	Status      string     `json:"status" gorm:"not null;default:'pending';index:idx_candidate_interviews_candidate_status,priority:2"` // "pending", "in_progress", "completed", "expired"
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Responses   []CandidateResponse `json:"responses,omitempty" gorm:"foreignKey:CandidateInterviewID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
