package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

type RequestHandler struct {
	BaseHandler
	service services.RequestService
}

func NewRequestHandler(service services.RequestService, logger utils.Logger) *RequestHandler {
	return &RequestHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== STUDENT ENDPOINTS =====

// CreateRequest files a new support request for the current student
// @Summary Create support request
// @Tags requests
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failed or profile required"
// @Router /students/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	h.LogRequest(c, "Creating support request")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	var req services.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", err.Error()))
		return
	}

	request, err := h.service.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSuccessResponse(request))
}

// GetMyRequests returns the current student's requests, newest first
// @Summary List own support requests
// @Tags requests
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /students/requests [get]
func (h *RequestHandler) GetMyRequests(c *gin.Context) {
	h.LogRequest(c, "Getting student requests")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	requests, err := h.service.GetByStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(requests, len(requests)))
}

// CancelRequest cancels a pending or accepted request owned by the caller
// @Summary Cancel support request
// @Tags requests
// @Produce json
// @Param id path uint true "Request ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not the owner"
// @Failure 400 {object} ErrorResponse "Request already in a terminal state"
// @Router /requests/{id}/cancel [put]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	h.LogRequest(c, "Cancelling support request")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	request, err := h.service.Cancel(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(request))
}

// ===== VOLUNTEER ENDPOINTS =====

// GetVolunteerFeed returns requests assigned to the volunteer plus
// unassigned pending requests
// @Summary Get volunteer request feed
// @Tags requests
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /volunteers/requests [get]
func (h *RequestHandler) GetVolunteerFeed(c *gin.Context) {
	h.LogRequest(c, "Getting volunteer feed")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	requests, err := h.service.GetVolunteerFeed(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(requests, len(requests)))
}

// RespondToRequest accepts or rejects a pending request
// @Summary Respond to support request
// @Tags requests
// @Accept json
// @Produce json
// @Param id path uint true "Request ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Status must be accepted or rejected"
// @Failure 400 {object} ErrorResponse "Request already responded to"
// @Router /volunteers/requests/{id}/respond [put]
func (h *RequestHandler) RespondToRequest(c *gin.Context) {
	h.LogRequest(c, "Responding to support request")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", err.Error()))
		return
	}

	request, err := h.service.Respond(c.Request.Context(), id, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(request))
}

// CompleteRequest marks an accepted request as completed
// @Summary Complete support request
// @Tags requests
// @Produce json
// @Param id path uint true "Request ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not the assigned volunteer"
// @Failure 400 {object} ErrorResponse "Request is not accepted"
// @Router /volunteers/requests/{id}/complete [put]
func (h *RequestHandler) CompleteRequest(c *gin.Context) {
	h.LogRequest(c, "Completing support request")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	request, err := h.service.Complete(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(request))
}

// GetAssignedExams returns the volunteer's accepted and completed
// requests ordered by exam date
// @Summary Get assigned exams
// @Tags requests
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /volunteers/assigned-exams [get]
func (h *RequestHandler) GetAssignedExams(c *gin.Context) {
	h.LogRequest(c, "Getting assigned exams")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	requests, err := h.service.GetAssignedExams(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(requests, len(requests)))
}

// ===== SHARED ENDPOINTS =====

// GetRequest returns a single request, scoped by the caller's role
// @Summary Get support request
// @Tags requests
// @Produce json
// @Param id path uint true "Request ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse "Not visible to this caller"
// @Failure 404 {object} ErrorResponse "Request not found"
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	h.LogRequest(c, "Getting support request")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	role, err := GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	request, err := h.service.GetByID(c.Request.Context(), id, userID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(request))
}

// ListRequests returns requests visible to the caller, filtered and
// paginated via query parameters
// @Summary List support requests
// @Tags requests
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Param sort_by query string false "Sort by: created_at, exam_date, status"
// @Param sort_order query string false "Sort order: asc, desc"
// @Success 200 {object} SuccessResponse
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	h.LogRequest(c, "Listing support requests")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	role, err := GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	filters, ok := parseRequestFilters(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), userID, role, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(result))
}

// parseRequestFilters builds request list filters from query params.
// Writes a 400 response and returns false on an unknown status value.
func parseRequestFilters(c *gin.Context) (repositories.RequestFilters, bool) {
	var filters repositories.RequestFilters

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.RequestStatus(statusStr)
		if !models.ValidRequestStatus(status) {
			c.JSON(http.StatusBadRequest, newErrorResponse(
				"Invalid status filter",
				"status must be one of: pending, accepted, rejected, completed, cancelled"))
			return filters, false
		}
		filters.Status = &status
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	filters.Limit = limit

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filters.Offset = offset

	filters.SortBy = c.DefaultQuery("sort_by", "created_at")
	filters.SortOrder = c.DefaultQuery("sort_order", "desc")

	return filters, true
}
