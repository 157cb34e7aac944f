package admin

import (
	"net/http"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Description Creates a question of one of the four types with its type-specific detail and optional tags/categories
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Acting admin user ID"
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or detail fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	creatorID, ok := callerID(ctx)
	if !ok {
		return
	}

	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.CreateQuestion(creatorID, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Description Updates a question's common fields, detail (for its existing type) and tag/category associations. The type cannot change.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Updated question data"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or detail fields"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Removes a question with its detail, associations, section memberships and candidate responses
// @Tags Admin - Questions
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetQuestion godoc
// @Summary (Admin) Get a question
// @Description Retrieves one question with its type-specific detail and associations
// @Tags Admin - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestion(id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListQuestions godoc
// @Summary (Admin) List questions
// @Description Paginated question list with search, type, difficulty, tag and category filters
// @Tags Admin - Questions
// @Produce json
// @Param search query string false "Match against title and content"
// @Param type query string false "Filter by question type"
// @Param difficulty query string false "Filter by difficulty"
// @Param tag query string false "Filter by tag name"
// @Param category query string false "Filter by category name"
// @Param sort_field query string false "Sort column" default(created_at)
// @Param sort_direction query string false "asc or desc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} dto.QuestionListDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var query dto.QuestionListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid query parameters", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.ListQuestions(query)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions failed")
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
