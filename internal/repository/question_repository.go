package repository

import (
	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByID(id uint) (*model.Question, error)
	List(query dto.QuestionListQuery) ([]model.Question, int64, error)

	// Detail loaders. Callers select the loader from Question.Type; the
	// other three tables are never probed.
	FindMcqDetail(questionID uint) (*model.McqDetail, error)
	FindTrueFalseDetail(questionID uint) (*model.TrueFalseDetail, error)
	FindShortAnswerDetail(questionID uint) (*model.ShortAnswerDetail, error)
	FindCodingDetail(questionID uint) (*model.CodingDetail, error)

	FindTagsByType(questionID uint, tagType string) ([]model.Tag, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) List(query dto.QuestionListQuery) ([]model.Question, int64, error) {
	q := r.db.Model(&model.Question{})

	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}
	if query.Difficulty != "" {
		q = q.Where("difficulty = ?", query.Difficulty)
	}
	if query.Tag != "" {
		q = q.Where("questions.id IN (?)", r.db.Model(&model.QuestionTag{}).
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ? AND tags.type = ?", query.Tag, model.TagTypeTag))
	}
	if query.Category != "" {
		q = q.Where("questions.id IN (?)", r.db.Model(&model.QuestionTag{}).
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ? AND tags.type = ?", query.Category, model.TagTypeCategory))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := query.SortField
	switch sortField {
	case "title", "type", "difficulty", "created_at":
	default:
		sortField = "created_at"
	}
	direction := "DESC"
	if query.SortDirection == "asc" {
		direction = "ASC"
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 10
	}

	var questions []model.Question
	err := q.Order(sortField + " " + direction).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&questions).Error
	return questions, total, err
}

func (r *questionRepository) FindMcqDetail(questionID uint) (*model.McqDetail, error) {
	var detail model.McqDetail
	if err := r.db.Where("question_id = ?", questionID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *questionRepository) FindTrueFalseDetail(questionID uint) (*model.TrueFalseDetail, error) {
	var detail model.TrueFalseDetail
	if err := r.db.Where("question_id = ?", questionID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *questionRepository) FindShortAnswerDetail(questionID uint) (*model.ShortAnswerDetail, error) {
	var detail model.ShortAnswerDetail
	if err := r.db.Where("question_id = ?", questionID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *questionRepository) FindCodingDetail(questionID uint) (*model.CodingDetail, error) {
	var detail model.CodingDetail
	if err := r.db.Where("question_id = ?", questionID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *questionRepository) FindTagsByType(questionID uint, tagType string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.
		Joins("JOIN question_tags ON question_tags.tag_id = tags.id").
		Where("question_tags.question_id = ? AND tags.type = ?", questionID, tagType).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}
