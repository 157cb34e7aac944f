package dto

import "time"

type AssignCandidateDTO struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

type SubmitResponseDTO struct {
	QuestionID      uint       `json:"question_id" binding:"required"`
	ResponseContent string     `json:"response_content" binding:"required"`
	StartedAt       *time.Time `json:"started_at"`
}

// EvaluationDTO is the verdict an external grader produced for a response;
// this layer only records it.
type EvaluationDTO struct {
	EvaluatorID     *uint    `json:"evaluator_id"`
	IsCorrect       *bool    `json:"is_correct"`
	Score           *float64 `json:"score"`
	Feedback        string   `json:"feedback"`
	IsAutoEvaluated bool     `json:"is_auto_evaluated"`
}

type ResponseEvaluationDTO struct {
	ID                  uint     `json:"id"`
	CandidateResponseID uint     `json:"candidate_response_id"`
	EvaluatorID         *uint    `json:"evaluator_id,omitempty"`
	IsCorrect           *bool    `json:"is_correct,omitempty"`
	Score               *float64 `json:"score,omitempty"`
	Feedback            string   `json:"feedback,omitempty"`
	IsAutoEvaluated     bool     `json:"is_auto_evaluated"`
}

type CandidateResponseDTO struct {
	ID                   uint                   `json:"id"`
	CandidateInterviewID uint                   `json:"candidate_interview_id"`
	QuestionID           uint                   `json:"question_id"`
	ResponseContent      string                 `json:"response_content"`
	StartedAt            *time.Time             `json:"started_at,omitempty"`
	SubmittedAt          *time.Time             `json:"submitted_at,omitempty"`
	TimeSpentSeconds     *int64                 `json:"time_spent_seconds,omitempty"`
	Evaluation           *ResponseEvaluationDTO `json:"evaluation,omitempty"`
}

type CandidateInterviewDTO struct {
	ID          uint                   `json:"id"`
	CandidateID uint                   `json:"candidate_id"`
	InterviewID uint                   `json:"interview_id"`
	Status      string                 `json:"status"`
	StartedAt   *time.Time             `json:"started_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	Progress    float64                `json:"progress"` // answered / total questions, percent
	Responses   []CandidateResponseDTO `json:"responses,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

type InterviewResultDTO struct {
	ID                   uint     `json:"id"`
	CandidateInterviewID uint     `json:"candidate_interview_id"`
	TotalScore           *float64 `json:"total_score,omitempty"`
	TotalQuestions       int      `json:"total_questions"`
	AttemptedQuestions   int      `json:"attempted_questions"`
	CorrectAnswers       int      `json:"correct_answers"`
	Summary              string   `json:"summary,omitempty"`
	ScorePercentage      *float64 `json:"score_percentage,omitempty"`
	CompletionPercentage float64  `json:"completion_percentage"`
}
