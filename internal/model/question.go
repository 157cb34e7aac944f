package model

import (
	"time"
)

const (
	QuestionTypeMcq         = "mcq"
	QuestionTypeTrueFalse   = "true_false"
	QuestionTypeShortAnswer = "short_answer"
	QuestionTypeCoding      = "coding"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is the canonical question record. Type selects which of the four
// detail tables holds its payload and is fixed at creation.
type Question struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CreatorID  uint      `json:"creator_id" gorm:"not null;index"`
	Creator    User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Type       string    `json:"type" gorm:"not null;index"`                        // "mcq", "true_false", "short_answer", "coding"
	Difficulty string    `json:"difficulty" gorm:"not null;default:'medium';index"` // "easy", "medium", "hard"
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMcq, QuestionTypeTrueFalse, QuestionTypeShortAnswer, QuestionTypeCoding:
		return true
	}
	return false
}

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
