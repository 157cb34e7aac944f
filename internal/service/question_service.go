package service

import (
	"errors"
	"fmt"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionService interface {
	CreateQuestion(creatorID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(id uint) error
	GetQuestion(id uint) (*dto.QuestionResponseDTO, error)
	ListQuestions(query dto.QuestionListQuery) (*dto.QuestionListDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
	tagService   TagService
	db           *gorm.DB
}

func NewQuestionService(questionRepo repository.QuestionRepository, tagService TagService, db *gorm.DB) QuestionService {
	return &questionService{questionRepo: questionRepo, tagService: tagService, db: db}
}

// detailInput is the subset of the request DTOs the per-type validation and
// persistence care about; create and update share it.
type detailInput struct {
	Options            []string
	CorrectOption      *int
	CorrectAnswer      *bool
	ModelAnswer        *string
	EvaluationCriteria *string
	Language           *string
	StarterCode        *string
	TestCases          []string
	ExpectedOutputs    []string
}

// validateDetail checks the type-specific shape of the payload. Problems are
// reported per field; nothing is persisted when it fails.
func validateDetail(questionType string, in detailInput) error {
	ve := newValidationError()

	switch questionType {
	case model.QuestionTypeMcq:
		if len(in.Options) < 2 {
			ve.add("options", "MCQ questions must have at least 2 options")
		}
		if in.CorrectOption == nil {
			ve.add("correct_option", "the correct option must be specified for MCQ questions")
		} else if *in.CorrectOption < 0 || *in.CorrectOption >= len(in.Options) {
			ve.add("correct_option", fmt.Sprintf("correct_option must be between 0 and %d", len(in.Options)-1))
		}
	case model.QuestionTypeTrueFalse:
		if in.CorrectAnswer == nil {
			ve.add("correct_answer", "you must specify whether the statement is true or false")
		}
	case model.QuestionTypeShortAnswer:
		if in.ModelAnswer == nil || *in.ModelAnswer == "" {
			ve.add("model_answer", "a model answer is required for short answer questions")
		}
	case model.QuestionTypeCoding:
		if in.Language == nil || *in.Language == "" {
			ve.add("language", "programming language is required for coding questions")
		}
		if len(in.TestCases) < 1 {
			ve.add("test_cases", "at least one test case is required for coding questions")
		}
		if len(in.ExpectedOutputs) != len(in.TestCases) {
			ve.add("expected_outputs", "expected_outputs must have the same number of entries as test_cases")
		}
	default:
		ve.add("type", "question type must be one of: mcq, true_false, short_answer, coding")
	}

	if ve.hasErrors() {
		return ve
	}
	return nil
}

func (s *questionService) CreateQuestion(creatorID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	ve := newValidationError()
	if !model.ValidQuestionType(req.Type) {
		ve.add("type", "question type must be one of: mcq, true_false, short_answer, coding")
	}
	if !model.ValidDifficulty(req.Difficulty) {
		ve.add("difficulty", "question difficulty must be one of: easy, medium, hard")
	}
	if ve.hasErrors() {
		return nil, ve
	}
	in := detailInputFromCreate(req)
	if err := validateDetail(req.Type, in); err != nil {
		return nil, err
	}

	question := model.Question{
		CreatorID:  creatorID,
		Title:      req.Title,
		Content:    req.Content,
		Type:       req.Type,
		Difficulty: req.Difficulty,
	}

	// The question row, its single detail row and the tag associations are
	// one atomic unit: a failure anywhere leaves nothing behind.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return fmt.Errorf("creating question: %w", err)
		}
		if err := createDetail(tx, &question, in); err != nil {
			return err
		}
		if req.Tags != nil {
			if err := s.tagService.SyncQuestionTags(tx, question.ID, req.Tags, model.TagTypeTag); err != nil {
				return err
			}
		}
		if req.Categories != nil {
			if err := s.tagService.SyncQuestionTags(tx, question.ID, req.Categories, model.TagTypeCategory); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateQuestion failed")
		return nil, err
	}

	return s.GetQuestion(question.ID)
}

func createDetail(tx *gorm.DB, question *model.Question, in detailInput) error {
	switch question.Type {
	case model.QuestionTypeMcq:
		detail := model.McqDetail{
			QuestionID:    question.ID,
			Options:       datatypes.NewJSONSlice(in.Options),
			CorrectOption: *in.CorrectOption,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return fmt.Errorf("creating mcq detail: %w", err)
		}
	case model.QuestionTypeTrueFalse:
		detail := model.TrueFalseDetail{
			QuestionID:    question.ID,
			CorrectAnswer: *in.CorrectAnswer,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return fmt.Errorf("creating true/false detail: %w", err)
		}
	case model.QuestionTypeShortAnswer:
		detail := model.ShortAnswerDetail{
			QuestionID:         question.ID,
			ModelAnswer:        *in.ModelAnswer,
			EvaluationCriteria: in.EvaluationCriteria,
		}
		if err := tx.Create(&detail).Error; err != nil {
			return fmt.Errorf("creating short answer detail: %w", err)
		}
	case model.QuestionTypeCoding:
		detail := model.CodingDetail{
			QuestionID:      question.ID,
			Language:        *in.Language,
			StarterCode:     in.StarterCode,
			TestCases:       datatypes.NewJSONSlice(in.TestCases),
			ExpectedOutputs: datatypes.NewJSONSlice(in.ExpectedOutputs),
		}
		if err := tx.Create(&detail).Error; err != nil {
			return fmt.Errorf("creating coding detail: %w", err)
		}
	}
	return nil
}

// UpdateQuestion mutates title, content, difficulty, associations and the
// detail fields of the question's stored type. The type itself never changes:
// any Type in the payload is ignored and the existing detail row is updated
// in place.
func (s *questionService) UpdateQuestion(id uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	ve := newValidationError()
	if !model.ValidDifficulty(req.Difficulty) {
		ve.add("difficulty", "question difficulty must be one of: easy, medium, hard")
	}
	if ve.hasErrors() {
		return nil, ve
	}
	in := detailInputFromUpdate(req)
	if err := validateDetail(question.Type, in); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		question.Title = req.Title
		question.Content = req.Content
		question.Difficulty = req.Difficulty
		if err := tx.Save(question).Error; err != nil {
			return fmt.Errorf("updating question: %w", err)
		}
		if err := updateDetail(tx, question, in); err != nil {
			return err
		}
		if req.Tags != nil {
			if err := s.tagService.SyncQuestionTags(tx, question.ID, req.Tags, model.TagTypeTag); err != nil {
				return err
			}
		}
		if req.Categories != nil {
			if err := s.tagService.SyncQuestionTags(tx, question.ID, req.Categories, model.TagTypeCategory); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("question_id", id).Msg("UpdateQuestion failed")
		return nil, err
	}

	return s.GetQuestion(question.ID)
}

func updateDetail(tx *gorm.DB, question *model.Question, in detailInput) error {
	switch question.Type {
	case model.QuestionTypeMcq:
		var detail model.McqDetail
		if err := tx.Where("question_id = ?", question.ID).First(&detail).Error; err != nil {
			return fmt.Errorf("loading mcq detail: %w", err)
		}
		detail.Options = datatypes.NewJSONSlice(in.Options)
		detail.CorrectOption = *in.CorrectOption
		if err := tx.Save(&detail).Error; err != nil {
			return fmt.Errorf("updating mcq detail: %w", err)
		}
	case model.QuestionTypeTrueFalse:
		var detail model.TrueFalseDetail
		if err := tx.Where("question_id = ?", question.ID).First(&detail).Error; err != nil {
			return fmt.Errorf("loading true/false detail: %w", err)
		}
		detail.CorrectAnswer = *in.CorrectAnswer
		if err := tx.Save(&detail).Error; err != nil {
			return fmt.Errorf("updating true/false detail: %w", err)
		}
	case model.QuestionTypeShortAnswer:
		var detail model.ShortAnswerDetail
		if err := tx.Where("question_id = ?", question.ID).First(&detail).Error; err != nil {
			return fmt.Errorf("loading short answer detail: %w", err)
		}
		detail.ModelAnswer = *in.ModelAnswer
		detail.EvaluationCriteria = in.EvaluationCriteria
		if err := tx.Save(&detail).Error; err != nil {
			return fmt.Errorf("updating short answer detail: %w", err)
		}
	case model.QuestionTypeCoding:
		var detail model.CodingDetail
		if err := tx.Where("question_id = ?", question.ID).First(&detail).Error; err != nil {
			return fmt.Errorf("loading coding detail: %w", err)
		}
		detail.Language = *in.Language
		detail.StarterCode = in.StarterCode
		detail.TestCases = datatypes.NewJSONSlice(in.TestCases)
		detail.ExpectedOutputs = datatypes.NewJSONSlice(in.ExpectedOutputs)
		if err := tx.Save(&detail).Error; err != nil {
			return fmt.Errorf("updating coding detail: %w", err)
		}
	}
	return nil
}

// DeleteQuestion removes the question and everything that structurally
// depends on it: the detail row, tag and category associations, section
// memberships, and candidate responses with their evaluations.
func (s *questionService) DeleteQuestion(id uint) error {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		responseIDs := tx.Model(&model.CandidateResponse{}).
			Select("id").Where("question_id = ?", question.ID)
		if err := tx.Where("candidate_response_id IN (?)", responseIDs).
			Delete(&model.ResponseEvaluation{}).Error; err != nil {
			return fmt.Errorf("deleting response evaluations: %w", err)
		}
		if err := tx.Where("question_id = ?", question.ID).
			Delete(&model.CandidateResponse{}).Error; err != nil {
			return fmt.Errorf("deleting candidate responses: %w", err)
		}
		if err := tx.Where("question_id = ?", question.ID).
			Delete(&model.SectionQuestion{}).Error; err != nil {
			return fmt.Errorf("deleting section memberships: %w", err)
		}
		if err := tx.Where("question_id = ?", question.ID).
			Delete(&model.QuestionTag{}).Error; err != nil {
			return fmt.Errorf("deleting tag associations: %w", err)
		}
		if err := deleteDetail(tx, question); err != nil {
			return err
		}
		if err := tx.Delete(&model.Question{}, question.ID).Error; err != nil {
			return fmt.Errorf("deleting question: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("question_id", id).Msg("DeleteQuestion failed")
	}
	return err
}

func deleteDetail(tx *gorm.DB, question *model.Question) error {
	var err error
	switch question.Type {
	case model.QuestionTypeMcq:
		err = tx.Where("question_id = ?", question.ID).Delete(&model.McqDetail{}).Error
	case model.QuestionTypeTrueFalse:
		err = tx.Where("question_id = ?", question.ID).Delete(&model.TrueFalseDetail{}).Error
	case model.QuestionTypeShortAnswer:
		err = tx.Where("question_id = ?", question.ID).Delete(&model.ShortAnswerDetail{}).Error
	case model.QuestionTypeCoding:
		err = tx.Where("question_id = ?", question.ID).Delete(&model.CodingDetail{}).Error
	}
	if err != nil {
		return fmt.Errorf("deleting %s detail: %w", question.Type, err)
	}
	return nil
}

func (s *questionService) GetQuestion(id uint) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return s.toResponse(question)
}

func (s *questionService) ListQuestions(query dto.QuestionListQuery) (*dto.QuestionListDTO, error) {
	questions, total, err := s.questionRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		resp, err := s.toResponse(&questions[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 10
	}
	return &dto.QuestionListDTO{
		Questions: items,
		Total:     total,
		Page:      page,
		PerPage:   perPage,
	}, nil
}

// toResponse resolves the detail through the type discriminator; the other
// three detail tables are never queried.
func (s *questionService) toResponse(question *model.Question) (*dto.QuestionResponseDTO, error) {
	resp := &dto.QuestionResponseDTO{
		ID:         question.ID,
		CreatorID:  question.CreatorID,
		Title:      question.Title,
		Content:    question.Content,
		Type:       question.Type,
		Difficulty: question.Difficulty,
		CreatedAt:  question.CreatedAt,
		UpdatedAt:  question.UpdatedAt,
	}

	detail := &dto.QuestionDetailDTO{}
	switch question.Type {
	case model.QuestionTypeMcq:
		d, err := s.questionRepo.FindMcqDetail(question.ID)
		if err != nil {
			return nil, fmt.Errorf("loading mcq detail for question %d: %w", question.ID, err)
		}
		detail.Options = d.Options
		detail.CorrectOption = &d.CorrectOption
	case model.QuestionTypeTrueFalse:
		d, err := s.questionRepo.FindTrueFalseDetail(question.ID)
		if err != nil {
			return nil, fmt.Errorf("loading true/false detail for question %d: %w", question.ID, err)
		}
		detail.CorrectAnswer = &d.CorrectAnswer
	case model.QuestionTypeShortAnswer:
		d, err := s.questionRepo.FindShortAnswerDetail(question.ID)
		if err != nil {
			return nil, fmt.Errorf("loading short answer detail for question %d: %w", question.ID, err)
		}
		detail.ModelAnswer = &d.ModelAnswer
		detail.EvaluationCriteria = d.EvaluationCriteria
	case model.QuestionTypeCoding:
		d, err := s.questionRepo.FindCodingDetail(question.ID)
		if err != nil {
			return nil, fmt.Errorf("loading coding detail for question %d: %w", question.ID, err)
		}
		detail.Language = &d.Language
		detail.StarterCode = d.StarterCode
		detail.TestCases = d.TestCases
		detail.ExpectedOutputs = d.ExpectedOutputs
	}
	resp.Detail = detail

	tags, err := s.questionRepo.FindTagsByType(question.ID, model.TagTypeTag)
	if err != nil {
		return nil, err
	}
	resp.Tags = toTagDTOs(tags)

	categories, err := s.questionRepo.FindTagsByType(question.ID, model.TagTypeCategory)
	if err != nil {
		return nil, err
	}
	resp.Categories = toTagDTOs(categories)

	return resp, nil
}

func detailInputFromCreate(req dto.QuestionCreateDTO) detailInput {
	return detailInput{
		Options:            req.Options,
		CorrectOption:      req.CorrectOption,
		CorrectAnswer:      req.CorrectAnswer,
		ModelAnswer:        req.ModelAnswer,
		EvaluationCriteria: req.EvaluationCriteria,
		Language:           req.Language,
		StarterCode:        req.StarterCode,
		TestCases:          req.TestCases,
		ExpectedOutputs:    req.ExpectedOutputs,
	}
}

func detailInputFromUpdate(req dto.QuestionUpdateDTO) detailInput {
	return detailInput{
		Options:            req.Options,
		CorrectOption:      req.CorrectOption,
		CorrectAnswer:      req.CorrectAnswer,
		ModelAnswer:        req.ModelAnswer,
		EvaluationCriteria: req.EvaluationCriteria,
		Language:           req.Language,
		StarterCode:        req.StarterCode,
		TestCases:          req.TestCases,
		ExpectedOutputs:    req.ExpectedOutputs,
	}
}
