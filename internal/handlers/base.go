package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

// Response envelopes shared by all handlers.
type (
	ErrorResponse   = models.ErrorResponse
	SuccessResponse = models.SuccessResponse
)

// BaseHandler carries the pieces every handler needs
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs an incoming request with its request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string) {
	logger := utils.FromContext(c, h.logger)
	logger.Info(msg, "method", c.Request.Method, "path", c.Request.URL.Path)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	logger := utils.FromContext(c, h.logger)
	logger.Error(msg, "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
}

func newErrorResponse(message string, details interface{}) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

func newSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
	}
}

func newListResponse(data interface{}, count int) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Count:   &count,
		Data:    data,
	}
}

// parseIDParam reads a numeric path parameter. Writes a 400 response
// and returns 0 when the value is not a valid ID.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, newErrorResponse(
			"Invalid "+param,
			"ID must be a valid number"))
		return 0
	}
	return uint(id)
}

// handleServiceError maps service errors to HTTP status codes
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var permErr *services.PermissionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, newErrorResponse("Validation failed", validationErrs))
	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, newErrorResponse("Forbidden", permErr.Error()))
	case errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrVolunteerNotFound),
		errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, newErrorResponse("Resource not found", err.Error()))
	case errors.Is(err, services.ErrProfileRequired):
		c.JSON(http.StatusBadRequest, newErrorResponse("Profile required", err.Error()))
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid status", err.Error()))
	case errors.Is(err, services.ErrProfileExists):
		c.JSON(http.StatusBadRequest, newErrorResponse("Profile already exists", err.Error()))
	case errors.Is(err, services.ErrAlreadyResolved),
		errors.Is(err, services.ErrInvalidStateTransition):
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid state", err.Error()))
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, newErrorResponse("Internal server error", nil))
	}
}
