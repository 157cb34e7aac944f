package model

import (
	"time"
)

// InterviewSection groups questions inside an interview. Order is an explicit
// integer under the interview; gaps are fine.
type InterviewSection struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	InterviewID uint      `json:"interview_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Order       int       `json:"order" gorm:"not null;index"`
	TimeLimit   *int      `json:"time_limit,omitempty"` // minutes
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SectionQuestion is the ordered membership of a question in a section. A
// question's Order here is independent of its position in any other section.
type SectionQuestion struct {
	ID                 uint      `gorm:"primarykey" json:"id"`
	InterviewSectionID uint      `json:"interview_section_id" gorm:"not null;uniqueIndex:idx_section_questions_pair;index:idx_section_questions_order,priority:1"`
	QuestionID         uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_section_questions_pair"`
	Order              int       `json:"order" gorm:"not null;index:idx_section_questions_order,priority:2"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
