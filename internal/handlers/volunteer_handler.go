package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

type VolunteerHandler struct {
	BaseHandler
	service services.VolunteerService
}

func NewVolunteerHandler(service services.VolunteerService, logger utils.Logger) *VolunteerHandler {
	return &VolunteerHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateProfile creates the volunteer profile for the current user
// @Summary Create volunteer profile
// @Tags volunteers
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 400 {object} ErrorResponse "Profile already exists"
// @Router /volunteers/profile [post]
func (h *VolunteerHandler) CreateProfile(c *gin.Context) {
	h.LogRequest(c, "Creating volunteer profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	var req services.CreateVolunteerProfileRequest
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

// GetProfile returns the current volunteer's profile
// @Summary Get volunteer profile
// @Tags volunteers
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /volunteers/profile [get]
func (h *VolunteerHandler) GetProfile(c *gin.Context) {
	h.LogRequest(c, "Getting volunteer profile")

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

// UpdateProfile updates the current volunteer's profile. Rating,
// completed exams and verification status are not client-writable.
// @Summary Update volunteer profile
// @Tags volunteers
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Router /volunteers/profile [put]
func (h *VolunteerHandler) UpdateProfile(c *gin.Context) {
	h.LogRequest(c, "Updating volunteer profile")

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("User not authenticated", nil))
		return
	}

	var req services.UpdateVolunteerProfileRequest
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
