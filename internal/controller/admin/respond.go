package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/service"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service errors onto HTTP status codes: validation
// failures to 400, missing entities to 404, integrity conflicts to 409,
// anything else to 500.
func writeServiceError(ctx *gin.Context, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Validation failed",
			Fields:  ve.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrCandidateInterviewNotFound),
		errors.Is(err, service.ErrResponseNotFound),
		errors.Is(err, service.ErrResultNotFound),
		errors.Is(err, service.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrDuplicateAttempt),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrQuestionAlreadyInSection):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrParentNotCategory),
		errors.Is(err, service.ErrCategoryCycle):
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

// callerID reads the acting user from the X-User-ID header. Temporary until
// real authentication lands; the services already take the caller as an
// explicit argument.
func callerID(ctx *gin.Context) (uint, bool) {
	raw := ctx.GetHeader("X-User-ID")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "X-User-ID header is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid X-User-ID header"})
		return 0, false
	}
	return uint(id), true
}
