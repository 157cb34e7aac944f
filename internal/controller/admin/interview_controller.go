package admin

import (
	"net/http"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

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

// CreateInterview godoc
// @Summary (Admin) Create an interview
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Acting admin user ID"
// @Param interview body dto.InterviewCreateDTO true "Interview data"
// @Success 201 {object} dto.InterviewResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/interviews [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	creatorID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.InterviewCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateInterview: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.CreateInterview(creatorID, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateInterview godoc
// @Summary (Admin) Update an interview
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param interview body dto.InterviewUpdateDTO true "Updated interview data"
// @Success 200 {object} dto.InterviewResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /admin/interviews/{id} [put]
func (c *InterviewController) UpdateInterview(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.InterviewUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.UpdateInterview(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteInterview godoc
// @Summary (Admin) Delete an interview
// @Description Removes the interview with its sections, memberships and the whole candidate trail
// @Tags Admin - Interviews
// @Param id path int true "Interview ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /admin/interviews/{id} [delete]
func (c *InterviewController) DeleteInterview(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.interviewService.DeleteInterview(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetInterview godoc
// @Summary (Admin) Get an interview with its sections and questions
// @Tags Admin - Interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {object} dto.InterviewResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /admin/interviews/{id} [get]
func (c *InterviewController) GetInterview(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.interviewService.GetInterview(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListInterviews godoc
// @Summary (Admin) List interviews
// @Tags Admin - Interviews
// @Produce json
// @Success 200 {array} dto.InterviewResponseDTO
// @Router /admin/interviews [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	resp, err := c.interviewService.ListInterviews()
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAllQuestions godoc
// @Summary (Admin) Get the flattened question sequence of an interview
// @Description Sections in order, each section's questions in slot order; a question used in two sections appears twice
// @Tags Admin - Interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /admin/interviews/{id}/questions [get]
func (c *InterviewController) GetAllQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.interviewService.GetAllQuestions(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddSection godoc
// @Summary (Admin) Add a section to an interview
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param section body dto.SectionCreateDTO true "Section data"
// @Success 201 {object} dto.SectionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /admin/interviews/{id}/sections [post]
func (c *InterviewController) AddSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SectionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.AddSection(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateSection godoc
// @Summary (Admin) Update a section
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param section_id path int true "Section ID"
// @Param section body dto.SectionCreateDTO true "Section data"
// @Success 200 {object} dto.SectionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /admin/sections/{section_id} [put]
func (c *InterviewController) UpdateSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.SectionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.interviewService.UpdateSection(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteSection godoc
// @Summary (Admin) Delete a section and its question memberships
// @Tags Admin - Interviews
// @Param section_id path int true "Section ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /admin/sections/{section_id} [delete]
func (c *InterviewController) DeleteSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "section_id")
	if !ok {
		return
	}
	if err := c.interviewService.DeleteSection(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AddQuestionToSection godoc
// @Summary (Admin) Attach a question to a section
// @Tags Admin - Interviews
// @Accept json
// @Param section_id path int true "Section ID"
// @Param membership body dto.SectionQuestionDTO true "Question and position"
// @Success 201 "Created"
// @Failure 404 {object} dto.ErrorResponse "Section or question not found"
// @Failure 409 {object} dto.ErrorResponse "Question already in the section"
// @Router /admin/sections/{section_id}/questions [post]
func (c *InterviewController) AddQuestionToSection(ctx *gin.Context) {
	id, ok := pathID(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.SectionQuestionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.interviewService.AddQuestionToSection(id, req); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusCreated)
}

// RemoveQuestionFromSection godoc
// @Summary (Admin) Detach a question from a section
// @Tags Admin - Interviews
// @Param section_id path int true "Section ID"
// @Param question_id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /admin/sections/{section_id}/questions/{question_id} [delete]
func (c *InterviewController) RemoveQuestionFromSection(ctx *gin.Context) {
	sectionID, ok := pathID(ctx, "section_id")
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.interviewService.RemoveQuestionFromSection(sectionID, questionID); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ReorderSectionQuestions godoc
// @Summary (Admin) Reorder a section's questions
// @Tags Admin - Interviews
// @Accept json
// @Param section_id path int true "Section ID"
// @Param order body dto.SectionReorderDTO true "New question order"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Section or question not found"
// @Router /admin/sections/{section_id}/questions/reorder [put]
func (c *InterviewController) ReorderSectionQuestions(ctx *gin.Context) {
	id, ok := pathID(ctx, "section_id")
	if !ok {
		return
	}

	var req dto.SectionReorderDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.interviewService.ReorderSectionQuestions(id, req); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AssignCandidate godoc
// @Summary (Admin) Assign a candidate to an interview
// @Description Creates the candidate's single attempt; assigning the same candidate twice is a conflict
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param id path int true "Interview ID"
// @Param assignment body dto.AssignCandidateDTO true "Candidate to assign"
// @Success 201 {object} dto.CandidateInterviewDTO
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 409 {object} dto.ErrorResponse "Candidate already assigned"
// @Router /admin/interviews/{id}/candidates [post]
func (c *InterviewController) AssignCandidate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignCandidateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.candidateService.AssignCandidate(id, req.CandidateID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListCandidates godoc
// @Summary (Admin) List an interview's candidate attempts
// @Tags Admin - Interviews
// @Produce json
// @Param id path int true "Interview ID"
// @Success 200 {array} dto.CandidateInterviewDTO
// @Router /admin/interviews/{id}/candidates [get]
func (c *InterviewController) ListCandidates(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.candidateService.ListByInterview(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExpireAttempt godoc
// @Summary (Admin) Expire a candidate attempt
// @Description Ends an attempt that was never completed; valid from pending or in_progress
// @Tags Admin - Interviews
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Success 200 {object} dto.CandidateInterviewDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /admin/attempts/{attempt_id}/expire [post]
func (c *InterviewController) ExpireAttempt(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	resp, err := c.candidateService.Expire(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RecordEvaluation godoc
// @Summary (Admin) Record an evaluation for a response
// @Description Stores an external grader's verdict; re-recording updates the single evaluation in place
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param response_id path int true "Candidate response ID"
// @Param evaluation body dto.EvaluationDTO true "Verdict"
// @Success 200 {object} dto.ResponseEvaluationDTO
// @Failure 404 {object} dto.ErrorResponse "Response not found"
// @Router /admin/responses/{response_id}/evaluation [put]
func (c *InterviewController) RecordEvaluation(ctx *gin.Context) {
	id, ok := pathID(ctx, "response_id")
	if !ok {
		return
	}

	var req dto.EvaluationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.candidateService.RecordEvaluation(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FinalizeResult godoc
// @Summary (Admin) Finalize an attempt's result
// @Description Aggregates the attempt's evaluations into a single result row, replacing any earlier aggregate
// @Tags Admin - Interviews
// @Accept json
// @Produce json
// @Param attempt_id path int true "Candidate interview ID"
// @Param body body object{summary=string} false "Optional summary text"
// @Success 200 {object} dto.InterviewResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /admin/attempts/{attempt_id}/result [post]
func (c *InterviewController) FinalizeResult(ctx *gin.Context) {
	id, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req struct {
		Summary string `json:"summary"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.candidateService.FinalizeResult(id, req.Summary)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
