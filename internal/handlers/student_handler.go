package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
}

func NewStudentHandler(service services.StudentService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== PROFILE ENDPOINTS =====

// CreateProfile creates the student profile for the current user
// @Summary Create student profile
// @Tags students
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 400 {object} ErrorResponse "Profile already exists"
// @Router /students/profile [post]
func (h *StudentHandler) CreateProfile(c *gin.Context) {
	h.LogRequest(c, "Creating student profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	var req services.CreateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", err.Error()))
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newSuccessResponse(profile))
}

// GetProfile returns the current student's profile
// @Summary Get student profile
// @Tags students
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /students/profile [get]
func (h *StudentHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Getting student profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(profile))
}

// UpdateProfile updates the current student's profile
// @Summary Update student profile
// @Tags students
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /students/profile [put]
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	h.LogRequest(c, "Updating student profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	var req services.UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid request body", err.Error()))
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(profile))
}

// ===== VOLUNTEER DIRECTORY =====

// SearchVolunteers returns verified volunteers matching the filters
// @Summary Search verified volunteers
// @Tags students
// @Produce json
// @Param city query string false "Filter by city (case-insensitive)"
// @Param state query string false "Filter by state (case-insensitive)"
// @Param subject query string false "Filter by subject"
// @Success 200 {object} SuccessResponse
// @Router /students/volunteers [get]
func (h *StudentHandler) SearchVolunteers(c *gin.Context) {
	h.LogRequest(c, "Searching volunteers")

	params := models.VolunteerSearchParams{
		City:    c.Query("city"),
		State:   c.Query("state"),
		Subject: c.Query("subject"),
	}

	result, err := h.service.SearchVolunteers(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newListResponse(result.Volunteers, len(result.Volunteers)))
}
