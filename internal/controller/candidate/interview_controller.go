package candidate

import (
	"net/http"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InterviewController is the candidate-facing surface: viewing assigned
// interviews, running an attempt, and reading the outcome.
type InterviewController struct {
	interviewService service.InterviewService
	candidateService service.CandidateInterviewService
}

func NewInterviewController(
	interviewService service.InterviewService,
	candidateService service.CandidateInterviewService,
) *InterviewController {
	return &InterviewController{
		interviewService: interviewService,
		candidateService: candidateService,
	}
}

// ListInterviews godoc
// @Summary List interviews
// @Tags Candidate
// @Produce json
// @Success 200 {array} dto.InterviewResponseDTO
// @Router /interviews [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	resp, err := c.interviewService.ListInterviews()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary Get an attempt with its responses
// @Tags Candidate
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} dto.CandidateInterviewDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *InterviewController) GetAttempt(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.GetAttempt(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAttempt godoc
// @Summary Start an attempt
// @Description Moves a pending attempt to in_progress and stamps the start time
// @Tags Candidate
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} dto.CandidateInterviewDTO
// @Failure 400 {object} dto.ErrorResponse "Attempt is not pending"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/start [post]
func (c *InterviewController) StartAttempt(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.Start(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CompleteAttempt godoc
// @Summary Complete an attempt
// @Description Moves an in_progress attempt to completed and stamps the completion time
// @Tags Candidate
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} dto.CandidateInterviewDTO
// @Failure 400 {object} dto.ErrorResponse "Attempt is not in progress"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/complete [post]
func (c *InterviewController) CompleteAttempt(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.Complete(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitResponse godoc
// @Summary Submit an answer
// @Description Upserts the answer for one question of the attempt; resubmitting overwrites the earlier answer
// @Tags Candidate
// @Accept json
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Param response body dto.SubmitResponseDTO true "Answer payload"
// @Success 200 {object} dto.CandidateResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Attempt is not in progress"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/responses [post]
func (c *InterviewController) SubmitResponse(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SubmitResponseDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitResponse: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.candidateService.SubmitResponse(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProgress godoc
// @Summary Get attempt progress
// @Description Answered slots over total slots as a percentage
// @Tags Candidate
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} object{progress=number}
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/progress [get]
func (c *InterviewController) GetProgress(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	progress, err := c.candidateService.Progress(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetResult godoc
// @Summary Get the finalized result of an attempt
// @Tags Candidate
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} dto.InterviewResultDTO
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /attempts/{attempt_id}/result [get]
func (c *InterviewController) GetResult(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.GetResult(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
