package candidate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
)

func writeServiceError(ctx *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Validation failed",
			Fields:  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, service.ErrCandidateInterviewNotFound),
		errors.Is(err, service.ErrResponseNotFound),
		errors.Is(err, service.ErrResultNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Internal server error",
			Details: []string{err.Error()},
		})
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
