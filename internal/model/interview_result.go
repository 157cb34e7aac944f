package model

import (
	"math"
	"time"
)

// InterviewResult is the aggregate outcome of one candidate interview, at
// most one per attempt.
type InterviewResult struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	CandidateInterviewID uint      `json:"candidate_interview_id" gorm:"not null;uniqueIndex"`
	TotalScore           *float64  `json:"total_score,omitempty"`
	TotalQuestions       int       `json:"total_questions" gorm:"not null"`
	AttemptedQuestions   int       `json:"attempted_questions" gorm:"not null;default:0"`
	CorrectAnswers       int       `json:"correct_answers" gorm:"not null;default:0"`
	Summary              string    `json:"summary,omitempty" gorm:"type:text"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ScorePercentage is TotalScore over TotalQuestions as a percentage, nil when
// the result has no questions. Never divides by zero.
func (r *InterviewResult) ScorePercentage() *float64 {
	if r.TotalQuestions <= 0 || r.TotalScore == nil {
		return nil
	}
	pct := round2(*r.TotalScore / float64(r.TotalQuestions) * 100)
	return &pct
}

// CompletionPercentage is AttemptedQuestions over TotalQuestions as a
// percentage, 0 when the result has no questions.
func (r *InterviewResult) CompletionPercentage() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return round2(float64(r.AttemptedQuestions) / float64(r.TotalQuestions) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
