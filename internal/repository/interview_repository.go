package repository

import (
	"github.com/assessly-hq/assessly/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(interview *model.Interview) error
	Update(interview *model.Interview) error
	FindByID(id uint) (*model.Interview, error)
	FindByIDWithSections(id uint) (*model.Interview, error)
	FindAll() ([]model.Interview, error)

	CreateSection(section *model.InterviewSection) error
	UpdateSection(section *model.InterviewSection) error
	FindSectionByID(id uint) (*model.InterviewSection, error)
	FindSectionsByInterview(interviewID uint) ([]model.InterviewSection, error)

	// FindQuestionsBySection returns the section's questions in membership
	// order (the join row's order column, not the question's order anywhere
	// else).
	FindQuestionsBySection(sectionID uint) ([]model.Question, error)
	FindSectionQuestions(sectionID uint) ([]model.SectionQuestion, error)
	CountQuestionSlots(interviewID uint) (int64, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *interviewRepository) Update(interview *model.Interview) error {
	return r.db.Save(interview).Error
}

func (r *interviewRepository) FindByID(id uint) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.First(&interview, id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) FindByIDWithSections(id uint) (*model.Interview, error) {
	var interview model.Interview
	err := r.db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("interview_sections.\"order\" ASC")
	}).First(&interview, id).Error
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) FindAll() ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.Order("created_at DESC").Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) CreateSection(section *model.InterviewSection) error {
	return r.db.Create(section).Error
}

func (r *interviewRepository) UpdateSection(section *model.InterviewSection) error {
	return r.db.Save(section).Error
}

func (r *interviewRepository) FindSectionByID(id uint) (*model.InterviewSection, error) {
	var section model.InterviewSection
	if err := r.db.First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *interviewRepository) FindSectionsByInterview(interviewID uint) ([]model.InterviewSection, error) {
	var sections []model.InterviewSection
	err := r.db.Where("interview_id = ?", interviewID).
		Order("\"order\" ASC").
		Find(&sections).Error
	return sections, err
}

func (r *interviewRepository) FindQuestionsBySection(sectionID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Joins("JOIN section_questions ON section_questions.question_id = questions.id").
		Where("section_questions.interview_section_id = ?", sectionID).
		Order("section_questions.\"order\" ASC").
		Find(&questions).Error
	return questions, err
}

func (r *interviewRepository) FindSectionQuestions(sectionID uint) ([]model.SectionQuestion, error) {
	var rows []model.SectionQuestion
	err := r.db.Where("interview_section_id = ?", sectionID).
		Order("\"order\" ASC").
		Find(&rows).Error
	return rows, err
}

// CountQuestionSlots counts membership rows across all sections of the
// interview. A question placed in two sections counts twice; progress math is
// per slot, not per distinct question.
func (r *interviewRepository) CountQuestionSlots(interviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.SectionQuestion{}).
		Joins("JOIN interview_sections ON interview_sections.id = section_questions.interview_section_id").
		Where("interview_sections.interview_id = ?", interviewID).
		Count(&count).Error
	return count, err
}
