package repository

import (
	"github.com/assessly-hq/assessly/internal/model"
	"gorm.io/gorm"
)

type CandidateInterviewRepository interface {
	Create(attempt *model.CandidateInterview) error
	Update(attempt *model.CandidateInterview) error
	FindByID(id uint) (*model.CandidateInterview, error)
	FindByIDWithResponses(id uint) (*model.CandidateInterview, error)
	FindByInterview(interviewID uint) ([]model.CandidateInterview, error)

	FindResponse(candidateInterviewID, questionID uint) (*model.CandidateResponse, error)
	FindResponseByID(id uint) (*model.CandidateResponse, error)
	FindResponses(candidateInterviewID uint) ([]model.CandidateResponse, error)
	CountResponses(candidateInterviewID uint) (int64, error)

	FindEvaluationByResponse(responseID uint) (*model.ResponseEvaluation, error)
	FindResult(candidateInterviewID uint) (*model.InterviewResult, error)
}

type candidateInterviewRepository struct {
	db *gorm.DB
}

func NewCandidateInterviewRepository(db *gorm.DB) CandidateInterviewRepository {
	return &candidateInterviewRepository{db: db}
}

func (r *candidateInterviewRepository) Create(attempt *model.CandidateInterview) error {
	return r.db.Create(attempt).Error
}

func (r *candidateInterviewRepository) Update(attempt *model.CandidateInterview) error {
	return r.db.Save(attempt).Error
}

func (r *candidateInterviewRepository) FindByID(id uint) (*model.CandidateInterview, error) {
	var attempt model.CandidateInterview
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *candidateInterviewRepository) FindByIDWithResponses(id uint) (*model.CandidateInterview, error) {
	var attempt model.CandidateInterview
	err := r.db.
		Preload("Responses").
		Preload("Responses.Evaluation").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *candidateInterviewRepository) FindByInterview(interviewID uint) ([]model.CandidateInterview, error) {
	var attempts []model.CandidateInterview
	err := r.db.Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *candidateInterviewRepository) FindResponse(candidateInterviewID, questionID uint) (*model.CandidateResponse, error) {
	var response model.CandidateResponse
	err := r.db.Where("candidate_interview_id = ? AND question_id = ?", candidateInterviewID, questionID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *candidateInterviewRepository) FindResponseByID(id uint) (*model.CandidateResponse, error) {
	var response model.CandidateResponse
	if err := r.db.First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *candidateInterviewRepository) FindResponses(candidateInterviewID uint) ([]model.CandidateResponse, error) {
	var responses []model.CandidateResponse
	err := r.db.Where("candidate_interview_id = ?", candidateInterviewID).
		Preload("Evaluation").
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

func (r *candidateInterviewRepository) CountResponses(candidateInterviewID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CandidateResponse{}).
		Where("candidate_interview_id = ?", candidateInterviewID).
		Count(&count).Error
	return count, err
}

func (r *candidateInterviewRepository) FindEvaluationByResponse(responseID uint) (*model.ResponseEvaluation, error) {
	var evaluation model.ResponseEvaluation
	err := r.db.Where("candidate_response_id = ?", responseID).First(&evaluation).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (r *candidateInterviewRepository) FindResult(candidateInterviewID uint) (*model.InterviewResult, error) {
	var result model.InterviewResult
	err := r.db.Where("candidate_interview_id = ?", candidateInterviewID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}
