package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CandidateInterviewService interface {
	AssignCandidate(interviewID, candidateID uint) (*dto.CandidateInterviewDTO, error)
	Start(id uint) (*dto.CandidateInterviewDTO, error)
	Complete(id uint) (*dto.CandidateInterviewDTO, error)
	Expire(id uint) (*dto.CandidateInterviewDTO, error)
	GetAttempt(id uint) (*dto.CandidateInterviewDTO, error)
	ListByInterview(interviewID uint) ([]dto.CandidateInterviewDTO, error)

	SubmitResponse(candidateInterviewID uint, req dto.SubmitResponseDTO) (*dto.CandidateResponseDTO, error)
	RecordEvaluation(responseID uint, req dto.EvaluationDTO) (*dto.ResponseEvaluationDTO, error)

	// Progress is answered slots over total slots as a percentage. Totals
	// count membership rows, so a question placed in two sections counts
	// twice while a single response answers both slots at once.
	Progress(id uint) (float64, error)

	FinalizeResult(id uint, summary string) (*dto.InterviewResultDTO, error)
	GetResult(id uint) (*dto.InterviewResultDTO, error)
}

type candidateInterviewService struct {
	attemptRepo   repository.CandidateInterviewRepository
	interviewRepo repository.InterviewRepository
	db            *gorm.DB
}

func NewCandidateInterviewService(
	attemptRepo repository.CandidateInterviewRepository,
	interviewRepo repository.InterviewRepository,
	db *gorm.DB,
) CandidateInterviewService {
	return &candidateInterviewService{
		attemptRepo:   attemptRepo,
		interviewRepo: interviewRepo,
		db:            db,
	}
}

func (s *candidateInterviewService) AssignCandidate(interviewID, candidateID uint) (*dto.CandidateInterviewDTO, error) {
	if _, err := s.interviewRepo.FindByID(interviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}

	attempt := model.CandidateInterview{
		CandidateID: candidateID,
		InterviewID: interviewID,
		Status:      model.CandidateInterviewStatusPending,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAttempt
		}
		log.Error().Err(err).
			Uint("interview_id", interviewID).
			Uint("candidate_id", candidateID).
			Msg("AssignCandidate failed")
		return nil, err
	}

	resp := s.toAttemptDTO(&attempt)
	return &resp, nil
}

// Start moves pending to in_progress and stamps StartedAt. Any other source
// state is rejected; the machine only moves forward.
func (s *candidateInterviewService) Start(id uint) (*dto.CandidateInterviewDTO, error) {
	return s.transition(id, model.CandidateInterviewStatusInProgress,
		model.CandidateInterviewStatusPending)
}

// Complete moves in_progress to completed and stamps CompletedAt.
func (s *candidateInterviewService) Complete(id uint) (*dto.CandidateInterviewDTO, error) {
	return s.transition(id, model.CandidateInterviewStatusCompleted,
		model.CandidateInterviewStatusInProgress)
}

// Expire ends an attempt that never finished; valid from pending or
// in_progress.
func (s *candidateInterviewService) Expire(id uint) (*dto.CandidateInterviewDTO, error) {
	return s.transition(id, model.CandidateInterviewStatusExpired,
		model.CandidateInterviewStatusPending, model.CandidateInterviewStatusInProgress)
}

func (s *candidateInterviewService) transition(id uint, target string, validFrom ...string) (*dto.CandidateInterviewDTO, error) {
	attempt, err := s.attemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateInterviewNotFound
		}
		return nil, err
	}

	allowed := false
	for _, from := range validFrom {
		if attempt.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot move from %s to %s",
			ErrInvalidTransition, attempt.Status, target)
	}

	now := time.Now()
	attempt.Status = target
	switch target {
	case model.CandidateInterviewStatusInProgress:
		attempt.StartedAt = &now
	case model.CandidateInterviewStatusCompleted:
		attempt.CompletedAt = &now
	}

	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Uint("attempt_id", id).Str("target", target).Msg("transition failed")
		return nil, err
	}
	resp := s.toAttemptDTO(attempt)
	return &resp, nil
}

func (s *candidateInterviewService) GetAttempt(id uint) (*dto.CandidateInterviewDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithResponses(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateInterviewNotFound
		}
		return nil, err
	}

	resp := s.toAttemptDTO(attempt)
	for i := range attempt.Responses {
		resp.Responses = append(resp.Responses, toResponseDTO(&attempt.Responses[i]))
	}
	if progress, err := s.Progress(id); err == nil {
		resp.Progress = progress
	}
	return &resp, nil
}

func (s *candidateInterviewService) ListByInterview(interviewID uint) ([]dto.CandidateInterviewDTO, error) {
	attempts, err := s.attemptRepo.FindByInterview(interviewID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CandidateInterviewDTO, len(attempts))
	for i := range attempts {
		out[i] = s.toAttemptDTO(&attempts[i])
	}
	return out, nil
}

// SubmitResponse upserts on the (attempt, question) pair: a resubmission
// overwrites the content and submission time of the existing row instead of
// creating a second one.
func (s *candidateInterviewService) SubmitResponse(candidateInterviewID uint, req dto.SubmitResponseDTO) (*dto.CandidateResponseDTO, error) {
	attempt, err := s.attemptRepo.FindByID(candidateInterviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateInterviewNotFound
		}
		return nil, err
	}
	if attempt.Status != model.CandidateInterviewStatusInProgress {
		return nil, fmt.Errorf("%w: responses are only accepted while in_progress, attempt is %s",
			ErrInvalidTransition, attempt.Status)
	}

	now := time.Now()
	response, err := s.attemptRepo.FindResponse(candidateInterviewID, req.QuestionID)
	switch {
	case err == nil:
		response.ResponseContent = req.ResponseContent
		response.SubmittedAt = &now
		if req.StartedAt != nil {
			response.StartedAt = req.StartedAt
		}
		if err := s.db.Save(response).Error; err != nil {
			return nil, fmt.Errorf("updating response: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		response = &model.CandidateResponse{
			CandidateInterviewID: candidateInterviewID,
			QuestionID:           req.QuestionID,
			ResponseContent:      req.ResponseContent,
			StartedAt:            req.StartedAt,
			SubmittedAt:          &now,
		}
		if err := s.db.Create(response).Error; err != nil {
			log.Error().Err(err).
				Uint("attempt_id", candidateInterviewID).
				Uint("question_id", req.QuestionID).
				Msg("SubmitResponse failed")
			return nil, err
		}
	default:
		return nil, err
	}

	resp := toResponseDTO(response)
	return &resp, nil
}

// RecordEvaluation stores an external grader's verdict for a response. A
// response carries at most one evaluation; recording again updates it in
// place.
func (s *candidateInterviewService) RecordEvaluation(responseID uint, req dto.EvaluationDTO) (*dto.ResponseEvaluationDTO, error) {
	if _, err := s.attemptRepo.FindResponseByID(responseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, err
	}

	evaluation, err := s.attemptRepo.FindEvaluationByResponse(responseID)
	switch {
	case err == nil:
		evaluation.EvaluatorID = req.EvaluatorID
		evaluation.IsCorrect = req.IsCorrect
		evaluation.Score = req.Score
		evaluation.Feedback = req.Feedback
		evaluation.IsAutoEvaluated = req.IsAutoEvaluated
		if err := s.db.Save(evaluation).Error; err != nil {
			return nil, fmt.Errorf("updating evaluation: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		evaluation = &model.ResponseEvaluation{
			CandidateResponseID: responseID,
			EvaluatorID:         req.EvaluatorID,
			IsCorrect:           req.IsCorrect,
			Score:               req.Score,
			Feedback:            req.Feedback,
			IsAutoEvaluated:     req.IsAutoEvaluated,
		}
		if err := s.db.Create(evaluation).Error; err != nil {
			log.Error().Err(err).Uint("response_id", responseID).Msg("RecordEvaluation failed")
			return nil, err
		}
	default:
		return nil, err
	}

	resp := toEvaluationDTO(evaluation)
	return &resp, nil
}

func (s *candidateInterviewService) Progress(id uint) (float64, error) {
	attempt, err := s.attemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCandidateInterviewNotFound
		}
		return 0, err
	}

	total, err := s.interviewRepo.CountQuestionSlots(attempt.InterviewID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	answered, err := s.answeredSlots(attempt)
	if err != nil {
		return 0, err
	}
	return round2(float64(answered) / float64(total) * 100), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// answeredSlots counts membership rows whose question has a response on this
// attempt, so a duplicated question fills every slot it occupies.
func (s *candidateInterviewService) answeredSlots(attempt *model.CandidateInterview) (int64, error) {
	var answered int64
	err := s.db.Model(&model.SectionQuestion{}).
		Joins("JOIN interview_sections ON interview_sections.id = section_questions.interview_section_id").
		Where("interview_sections.interview_id = ?", attempt.InterviewID).
		Where("section_questions.question_id IN (?)",
			s.db.Model(&model.CandidateResponse{}).
				Select("question_id").
				Where("candidate_interview_id = ?", attempt.ID)).
		Count(&answered).Error
	return answered, err
}

// FinalizeResult aggregates the attempt's responses and evaluations into one
// result row, replacing any earlier aggregate for the same attempt.
func (s *candidateInterviewService) FinalizeResult(id uint, summary string) (*dto.InterviewResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateInterviewNotFound
		}
		return nil, err
	}

	total, err := s.interviewRepo.CountQuestionSlots(attempt.InterviewID)
	if err != nil {
		return nil, err
	}
	attempted, err := s.answeredSlots(attempt)
	if err != nil {
		return nil, err
	}

	responses, err := s.attemptRepo.FindResponses(id)
	if err != nil {
		return nil, err
	}
	var correct int
	var totalScore float64
	var scored bool
	for i := range responses {
		ev := responses[i].Evaluation
		if ev == nil {
			continue
		}
		if ev.IsCorrect != nil && *ev.IsCorrect {
			correct++
		}
		if ev.Score != nil {
			totalScore += *ev.Score
			scored = true
		}
	}

	result := model.InterviewResult{
		CandidateInterviewID: id,
		TotalQuestions:       int(total),
		AttemptedQuestions:   int(attempted),
		CorrectAnswers:       correct,
		Summary:              summary,
	}
	if scored {
		result.TotalScore = &totalScore
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.attemptRepo.FindResult(id)
		if err == nil {
			result.ID = existing.ID
			result.CreatedAt = existing.CreatedAt
			return tx.Save(&result).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&result).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("attempt_id", id).Msg("FinalizeResult failed")
		return nil, err
	}

	resp := toResultDTO(&result)
	return &resp, nil
}

func (s *candidateInterviewService) GetResult(id uint) (*dto.InterviewResultDTO, error) {
	result, err := s.attemptRepo.FindResult(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	resp := toResultDTO(result)
	return &resp, nil
}

func (s *candidateInterviewService) toAttemptDTO(attempt *model.CandidateInterview) dto.CandidateInterviewDTO {
	return dto.CandidateInterviewDTO{
		ID:          attempt.ID,
		CandidateID: attempt.CandidateID,
		InterviewID: attempt.InterviewID,
		Status:      attempt.Status,
		StartedAt:   attempt.StartedAt,
		CompletedAt: attempt.CompletedAt,
		CreatedAt:   attempt.CreatedAt,
	}
}

func toResponseDTO(response *model.CandidateResponse) dto.CandidateResponseDTO {
	out := dto.CandidateResponseDTO{
		ID:                   response.ID,
		CandidateInterviewID: response.CandidateInterviewID,
		QuestionID:           response.QuestionID,
		ResponseContent:      response.ResponseContent,
		StartedAt:            response.StartedAt,
		SubmittedAt:          response.SubmittedAt,
		TimeSpentSeconds:     response.TimeSpent(),
	}
	if response.Evaluation != nil {
		ev := toEvaluationDTO(response.Evaluation)
		out.Evaluation = &ev
	}
	return out
}

func toEvaluationDTO(evaluation *model.ResponseEvaluation) dto.ResponseEvaluationDTO {
	return dto.ResponseEvaluationDTO{
		ID:                  evaluation.ID,
		CandidateResponseID: evaluation.CandidateResponseID,
		EvaluatorID:         evaluation.EvaluatorID,
		IsCorrect:           evaluation.IsCorrect,
		Score:               evaluation.Score,
		Feedback:            evaluation.Feedback,
		IsAutoEvaluated:     evaluation.IsAutoEvaluated,
	}
}

func toResultDTO(result *model.InterviewResult) dto.InterviewResultDTO {
	return dto.InterviewResultDTO{
		ID:                   result.ID,
		CandidateInterviewID: result.CandidateInterviewID,
		TotalScore:           result.TotalScore,
		TotalQuestions:       result.TotalQuestions,
		AttemptedQuestions:   result.AttemptedQuestions,
		CorrectAnswers:       result.CorrectAnswers,
		Summary:              result.Summary,
		ScorePercentage:      result.ScorePercentage(),
		CompletionPercentage: result.CompletionPercentage(),
	}
}
