package model

import (
	"time"

	"gorm.io/datatypes"
)

// Exactly one detail row exists per question, in the table matching
// Question.Type. The rows are created and deleted together with the question.

type McqDetail struct {
	ID            uint                       `gorm:"primarykey" json:"id"`
	QuestionID    uint                       `json:"question_id" gorm:"not null;uniqueIndex"`
	Options       datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	CorrectOption int                        `json:"correct_option" gorm:"not null"` // 0-based index into Options
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

type TrueFalseDetail struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	QuestionID    uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	CorrectAnswer bool      `json:"correct_answer" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ShortAnswerDetail struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	QuestionID         uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	ModelAnswer        string    `json:"model_answer" gorm:"type:text;not null"`
	EvaluationCriteria *string   `json:"evaluation_criteria,omitempty" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CodingDetail struct {
	ID              uint                       `gorm:"primarykey" json:"id"`
	QuestionID      uint                       `json:"question_id" gorm:"not null;uniqueIndex"`
	Language        string                     `json:"language" gorm:"not null"`
	StarterCode     *string                    `json:"starter_code,omitempty" gorm:"type:text"`
	TestCases       datatypes.JSONSlice[string] `json:"test_cases" gorm:"not null"`
	ExpectedOutputs datatypes.JSONSlice[string] `json:"expected_outputs" gorm:"not null"` // parallel to TestCases
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}
