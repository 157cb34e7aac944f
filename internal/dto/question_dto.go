package dto

import "time"

// QuestionCreateDTO carries the common question fields plus exactly the
// detail fields required by Type. The service validates the per-type shape.
type QuestionCreateDTO struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Type       string   `json:"type" binding:"required,oneof=mcq true_false short_answer coding"`
	Difficulty string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`

	// For type="mcq"
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option"` // 0-based index into Options

	// For type="true_false"
	CorrectAnswer *bool `json:"correct_answer"`

	// For type="short_answer"
	ModelAnswer        *string `json:"model_answer"`
	EvaluationCriteria *string `json:"evaluation_criteria"`

	// For type="coding"
	Language        *string  `json:"language"`
	StarterCode     *string  `json:"starter_code"`
	TestCases       []string `json:"test_cases"`
	ExpectedOutputs []string `json:"expected_outputs"`
}

// QuestionUpdateDTO mirrors QuestionCreateDTO without a usable Type: the
// stored type decides which detail fields apply, and a Type in the payload is
// ignored.
type QuestionUpdateDTO struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content" binding:"required"`
	Type       string   `json:"type"` // ignored; type is immutable
	Difficulty string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`

	Options            []string `json:"options"`
	CorrectOption      *int     `json:"correct_option"`
	CorrectAnswer      *bool    `json:"correct_answer"`
	ModelAnswer        *string  `json:"model_answer"`
	EvaluationCriteria *string  `json:"evaluation_criteria"`
	Language           *string  `json:"language"`
	StarterCode        *string  `json:"starter_code"`
	TestCases          []string `json:"test_cases"`
	ExpectedOutputs    []string `json:"expected_outputs"`
}

// QuestionDetailDTO is the discriminated detail payload; only the fields of
// the question's type are set.
type QuestionDetailDTO struct {
	Options            []string `json:"options,omitempty"`
	CorrectOption      *int     `json:"correct_option,omitempty"`
	CorrectAnswer      *bool    `json:"correct_answer,omitempty"`
	ModelAnswer        *string  `json:"model_answer,omitempty"`
	EvaluationCriteria *string  `json:"evaluation_criteria,omitempty"`
	Language           *string  `json:"language,omitempty"`
	StarterCode        *string  `json:"starter_code,omitempty"`
	TestCases          []string `json:"test_cases,omitempty"`
	ExpectedOutputs    []string `json:"expected_outputs,omitempty"`
}

type QuestionResponseDTO struct {
	ID         uint               `json:"id"`
	CreatorID  uint               `json:"creator_id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Type       string             `json:"type"`
	Difficulty string             `json:"difficulty"`
	Detail     *QuestionDetailDTO `json:"detail,omitempty"`
	Tags       []TagResponseDTO   `json:"tags,omitempty"`
	Categories []TagResponseDTO   `json:"categories,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// QuestionListQuery mirrors the admin index filters.
type QuestionListQuery struct {
	Search        string `form:"search"`
	Type          string `form:"type"`
	Difficulty    string `form:"difficulty"`
	Tag           string `form:"tag"`
	Category      string `form:"category"`
	SortField     string `form:"sort_field,default=created_at"`
	SortDirection string `form:"sort_direction,default=desc"`
	Page          int    `form:"page,default=1"`
	PerPage       int    `form:"per_page,default=10"`
}

type QuestionListDTO struct {
	Questions []QuestionResponseDTO `json:"questions"`
	Total     int64                 `json:"total"`
	Page      int                   `json:"page"`
	PerPage   int                   `json:"per_page"`
}
