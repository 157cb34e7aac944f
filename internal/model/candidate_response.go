package model

import (
	"time"
)

// CandidateResponse holds the raw answer a candidate gave for one question of
// one attempt. The unique pair makes a resubmission overwrite the same row.
type CandidateResponse struct {
	ID                   uint                `gorm:"primarykey" json:"id"`
	CandidateInterviewID uint                `json:"candidate_interview_id" gorm:"not null;uniqueIndex:idx_candidate_responses_pair"`
	QuestionID           uint                `json:"question_id" gorm:"not null;uniqueIndex:idx_candidate_responses_pair;index"`
	Question             Question            `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	ResponseContent      string              `json:"response_content" gorm:"type:text;not null"`
	StartedAt            *time.Time          `json:"started_at,omitempty"`
	SubmittedAt          *time.Time          `json:"submitted_at,omitempty"`
	Evaluation           *ResponseEvaluation `json:"evaluation,omitempty" gorm:"foreignKey:CandidateResponseID"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// TimeSpent returns the seconds between start and submission, or nil when
// either timestamp is missing.
func (r *CandidateResponse) TimeSpent() *int64 {
	if r.StartedAt == nil || r.SubmittedAt == nil {
		return nil
	}
	secs := int64(r.SubmittedAt.Sub(*r.StartedAt).Seconds())
	return &secs
}

// ResponseEvaluation records the verdict an external grader produced for one
// response. EvaluatorID is nullable so deleting the evaluating user keeps the
// evaluation.
type ResponseEvaluation struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	CandidateResponseID uint      `json:"candidate_response_id" gorm:"not null;uniqueIndex"`
	EvaluatorID         *uint     `json:"evaluator_id,omitempty" gorm:"index"`
	IsCorrect           *bool     `json:"is_correct,omitempty"`
	Score               *float64  `json:"score,omitempty"`
	Feedback            string    `json:"feedback,omitempty" gorm:"type:text"`
	IsAutoEvaluated     bool      `json:"is_auto_evaluated" gorm:"not null;default:false"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
