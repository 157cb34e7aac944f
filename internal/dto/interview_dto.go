package dto

import "time"

type InterviewCreateDTO struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Type        string     `json:"type" binding:"required,oneof=scheduled instant"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Duration    *int       `json:"duration"` // minutes
	AccessCode  *string    `json:"access_code"`
}

type InterviewUpdateDTO struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"required,oneof=draft active completed archived"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Duration    *int       `json:"duration"`
	AccessCode  *string    `json:"access_code"`
}

type SectionCreateDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	TimeLimit   *int   `json:"time_limit"` // minutes
}

// SectionQuestionDTO attaches an existing question to a section at an
// explicit position.
type SectionQuestionDTO struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Order      int  `json:"order"`
}

// SectionReorderDTO rewrites the order integers of a section's questions.
type SectionReorderDTO struct {
	Questions []SectionQuestionDTO `json:"questions" binding:"required,dive"`
}

type SectionResponseDTO struct {
	ID          uint                  `json:"id"`
	InterviewID uint                  `json:"interview_id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Order       int                   `json:"order"`
	TimeLimit   *int                  `json:"time_limit,omitempty"`
	Questions   []QuestionResponseDTO `json:"questions,omitempty"`
}

type InterviewResponseDTO struct {
	ID          uint                 `json:"id"`
	CreatorID   uint                 `json:"creator_id"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type"`
	Status      string               `json:"status"`
	ScheduledAt *time.Time           `json:"scheduled_at,omitempty"`
	Duration    *int                 `json:"duration,omitempty"`
	AccessCode  *string              `json:"access_code,omitempty"`
	Sections    []SectionResponseDTO `json:"sections,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
