package service

import (
	"errors"
	"fmt"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InterviewService interface {
	CreateInterview(creatorID uint, req dto.InterviewCreateDTO) (*dto.InterviewResponseDTO, error)
	UpdateInterview(id uint, req dto.InterviewUpdateDTO) (*dto.InterviewResponseDTO, error)
	DeleteInterview(id uint) error
	GetInterview(id uint) (*dto.InterviewResponseDTO, error)
	ListInterviews() ([]dto.InterviewResponseDTO, error)

	AddSection(interviewID uint, req dto.SectionCreateDTO) (*dto.SectionResponseDTO, error)
	UpdateSection(sectionID uint, req dto.SectionCreateDTO) (*dto.SectionResponseDTO, error)
	DeleteSection(sectionID uint) error

	AddQuestionToSection(sectionID uint, req dto.SectionQuestionDTO) error
	RemoveQuestionFromSection(sectionID, questionID uint) error
	ReorderSectionQuestions(sectionID uint, req dto.SectionReorderDTO) error

	// GetAllQuestions flattens the interview into a single question sequence:
	// sections in section order, each section's questions in slot order. A
	// question placed in two sections appears twice.
	GetAllQuestions(interviewID uint) ([]dto.QuestionResponseDTO, error)
}

type interviewService struct {
	interviewRepo   repository.InterviewRepository
	questionRepo    repository.QuestionRepository
	questionService QuestionService
	db              *gorm.DB
}

func NewInterviewService(
	interviewRepo repository.InterviewRepository,
	questionRepo repository.QuestionRepository,
	questionService QuestionService,
	db *gorm.DB,
) InterviewService {
	return &interviewService{
		interviewRepo:   interviewRepo,
		questionRepo:    questionRepo,
		questionService: questionService,
		db:              db,
	}
}

func (s *interviewService) CreateInterview(creatorID uint, req dto.InterviewCreateDTO) (*dto.InterviewResponseDTO, error) {
	ve := newValidationError()
	if !model.ValidInterviewType(req.Type) {
		ve.add("type", "interview type must be scheduled or instant")
	}
	if req.Type == model.InterviewTypeScheduled && req.ScheduledAt == nil {
		ve.add("scheduled_at", "scheduled interviews require a scheduled_at time")
	}
	if req.Duration != nil && *req.Duration <= 0 {
		ve.add("duration", "duration must be a positive number of minutes")
	}
	if ve.hasErrors() {
		return nil, ve
	}

	interview := model.Interview{
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      model.InterviewStatusDraft,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		AccessCode:  req.AccessCode,
	}
	if err := s.interviewRepo.Create(&interview); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ve := newValidationError()
			ve.add("access_code", "this access code is already in use")
			return nil, ve
		}
		log.Error().Err(err).Str("title", req.Title).Msg("CreateInterview failed")
		return nil, err
	}

	return s.GetInterview(interview.ID)
}

func (s *interviewService) UpdateInterview(id uint, req dto.InterviewUpdateDTO) (*dto.InterviewResponseDTO, error) {
	interview, err := s.interviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	ve := newValidationError()
	if !model.ValidInterviewStatus(req.Status) {
		ve.add("status", "status must be one of: draft, active, completed, archived")
	}
	if req.Duration != nil && *req.Duration <= 0 {
		ve.add("duration", "duration must be a positive number of minutes")
	}
	if ve.hasErrors() {
		return nil, ve
	}

	interview.Title = req.Title
	interview.Description = req.Description
	interview.Status = req.Status
	interview.ScheduledAt = req.ScheduledAt
	interview.Duration = req.Duration
	interview.AccessCode = req.AccessCode

	if err := s.interviewRepo.Update(interview); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ve := newValidationError()
			ve.add("access_code", "this access code is already in use")
			return nil, ve
		}
		log.Error().Err(err).Uint("interview_id", id).Msg("UpdateInterview failed")
		return nil, err
	}

	return s.GetInterview(interview.ID)
}

// DeleteInterview removes the interview with its sections, section
// memberships, and the full candidate trail (attempts, responses,
// evaluations, results).
func (s *interviewService) DeleteInterview(id uint) error {
	if _, err := s.interviewRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInterviewNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		attemptIDs := tx.Model(&model.CandidateInterview{}).
			Select("id").Where("interview_id = ?", id)
		responseIDs := tx.Model(&model.CandidateResponse{}).
			Select("id").Where("candidate_interview_id IN (?)", attemptIDs)
		if err := tx.Where("candidate_response_id IN (?)", responseIDs).
			Delete(&model.ResponseEvaluation{}).Error; err != nil {
			return fmt.Errorf("deleting response evaluations: %w", err)
		}
		if err := tx.Where("candidate_interview_id IN (?)", attemptIDs).
			Delete(&model.CandidateResponse{}).Error; err != nil {
			return fmt.Errorf("deleting candidate responses: %w", err)
		}
		if err := tx.Where("candidate_interview_id IN (?)", attemptIDs).
			Delete(&model.InterviewResult{}).Error; err != nil {
			return fmt.Errorf("deleting interview results: %w", err)
		}
		if err := tx.Where("interview_id = ?", id).
			Delete(&model.CandidateInterview{}).Error; err != nil {
			return fmt.Errorf("deleting candidate interviews: %w", err)
		}

		sectionIDs := tx.Model(&model.InterviewSection{}).
			Select("id").Where("interview_id = ?", id)
		if err := tx.Where("interview_section_id IN (?)", sectionIDs).
			Delete(&model.SectionQuestion{}).Error; err != nil {
			return fmt.Errorf("deleting section memberships: %w", err)
		}
		if err := tx.Where("interview_id = ?", id).
			Delete(&model.InterviewSection{}).Error; err != nil {
			return fmt.Errorf("deleting sections: %w", err)
		}
		if err := tx.Delete(&model.Interview{}, id).Error; err != nil {
			return fmt.Errorf("deleting interview: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("interview_id", id).Msg("DeleteInterview failed")
	}
	return err
}

func (s *interviewService) GetInterview(id uint) (*dto.InterviewResponseDTO, error) {
	interview, err := s.interviewRepo.FindByIDWithSections(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	resp := toInterviewDTO(interview)
	for i := range interview.Sections {
		section := &interview.Sections[i]
		questions, err := s.sectionQuestionDTOs(section.ID)
		if err != nil {
			return nil, err
		}
		sectionDTO := toSectionDTO(section)
		sectionDTO.Questions = questions
		resp.Sections = append(resp.Sections, sectionDTO)
	}
	return &resp, nil
}

func (s *interviewService) ListInterviews() ([]dto.InterviewResponseDTO, error) {
	interviews, err := s.interviewRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InterviewResponseDTO, len(interviews))
	for i := range interviews {
		out[i] = toInterviewDTO(&interviews[i])
	}
	return out, nil
}

func (s *interviewService) AddSection(interviewID uint, req dto.SectionCreateDTO) (*dto.SectionResponseDTO, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	section := model.InterviewSection{
		InterviewID: interviewID,
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		TimeLimit:   req.TimeLimit,
	}
	if err := s.interviewRepo.CreateSection(&section); err != nil {
		log.Error().Err(err).Uint("interview_id", interviewID).Msg("AddSection failed")
		return nil, err
	}
	resp := toSectionDTO(&section)
	return &resp, nil
}

func (s *interviewService) UpdateSection(sectionID uint, req dto.SectionCreateDTO) (*dto.SectionResponseDTO, error) {
	section, err := s.interviewRepo.FindSectionByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	section.Title = req.Title
	section.Description = req.Description
	section.Order = req.Order
	section.TimeLimit = req.TimeLimit
	if err := s.interviewRepo.UpdateSection(section); err != nil {
		log.Error().Err(err).Uint("section_id", sectionID).Msg("UpdateSection failed")
		return nil, err
	}
	resp := toSectionDTO(section)
	return &resp, nil
}

func (s *interviewService) DeleteSection(sectionID uint) error {
	if _, err := s.interviewRepo.FindSectionByID(sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_section_id = ?", sectionID).
			Delete(&model.SectionQuestion{}).Error; err != nil {
			return fmt.Errorf("deleting section memberships: %w", err)
		}
		if err := tx.Delete(&model.InterviewSection{}, sectionID).Error; err != nil {
			return fmt.Errorf("deleting section: %w", err)
		}
		return nil
	})
}

func (s *interviewService) AddQuestionToSection(sectionID uint, req dto.SectionQuestionDTO) error {
	if _, err := s.interviewRepo.FindSectionByID(sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	if _, err := s.questionRepo.FindByID(req.QuestionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}

	row := model.SectionQuestion{
		InterviewSectionID: sectionID,
		QuestionID:         req.QuestionID,
		Order:              req.Order,
	}
	if err := s.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrQuestionAlreadyInSection
		}
		log.Error().Err(err).
			Uint("section_id", sectionID).
			Uint("question_id", req.QuestionID).
			Msg("AddQuestionToSection failed")
		return err
	}
	return nil
}

func (s *interviewService) RemoveQuestionFromSection(sectionID, questionID uint) error {
	result := s.db.Where("interview_section_id = ? AND question_id = ?", sectionID, questionID).
		Delete(&model.SectionQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// ReorderSectionQuestions rewrites the order integers of the section's
// memberships. Questions missing from the payload keep their current order.
func (s *interviewService) ReorderSectionQuestions(sectionID uint, req dto.SectionReorderDTO) error {
	if _, err := s.interviewRepo.FindSectionByID(sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Questions {
			result := tx.Model(&model.SectionQuestion{}).
				Where("interview_section_id = ? AND question_id = ?", sectionID, item.QuestionID).
				Update("order", item.Order)
			if result.Error != nil {
				return fmt.Errorf("reordering question %d: %w", item.QuestionID, result.Error)
			}
			if result.RowsAffected == 0 {
				return ErrQuestionNotFound
			}
		}
		return nil
	})
}

func (s *interviewService) GetAllQuestions(interviewID uint) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	sections, err := s.interviewRepo.FindSectionsByInterview(interviewID)
	if err != nil {
		return nil, err
	}

	out := []dto.QuestionResponseDTO{}
	for i := range sections {
		questions, err := s.sectionQuestionDTOs(sections[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, questions...)
	}
	return out, nil
}

func (s *interviewService) sectionQuestionDTOs(sectionID uint) ([]dto.QuestionResponseDTO, error) {
	questions, err := s.interviewRepo.FindQuestionsBySection(sectionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuestionResponseDTO, 0, len(questions))
	for i := range questions {
		resp, err := s.questionService.GetQuestion(questions[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func toInterviewDTO(interview *model.Interview) dto.InterviewResponseDTO {
	return dto.InterviewResponseDTO{
		ID:          interview.ID,
		CreatorID:   interview.CreatorID,
		Title:       interview.Title,
		Description: interview.Description,
		Type:        interview.Type,
		Status:      interview.Status,
		ScheduledAt: interview.ScheduledAt,
		Duration:    interview.Duration,
		AccessCode:  interview.AccessCode,
		CreatedAt:   interview.CreatedAt,
	}
}

func toSectionDTO(section *model.InterviewSection) dto.SectionResponseDTO {
	var resp dto.SectionResponseDTO
	copier.Copy(&resp, section)
	return resp
}
