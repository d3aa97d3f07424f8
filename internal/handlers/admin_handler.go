package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	service services.AdminService
}

func NewAdminHandler(service services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== USER MODERATION =====

// ListUsers returns platform users, optionally filtered by role
// @Summary List users
// @Tags admin
// @Produce json
// @Param role query string false "Filter by role: student, volunteer, admin"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} SuccessResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	params := models.ListUsersParams{
		Role: models.UserRole(c.Query("role")),
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	params.Limit = limit

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	params.Offset = offset

	if params.Role != "" && !models.ValidRole(params.Role) {
		c.JSON(http.StatusBadRequest, newErrorResponse(
			"Invalid role filter",
			"role must be one of: student, volunteer, admin"))
		return
	}

	result, err := h.service.ListUsers(c.Request.Context(), params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(result))
}

// DeleteUser removes a user and their profiles. Request history stays.
// @Summary Delete user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	h.LogRequest(c, "Deleting user")

	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, newErrorResponse("Invalid id", "user ID is required"))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User deleted",
	})
}

// ===== VOLUNTEER VERIFICATION =====

// VerifyVolunteer marks a volunteer profile as verified
// @Summary Verify volunteer
// @Tags admin
// @Produce json
// @Param id path uint true "Volunteer profile ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Volunteer not found"
// @Router /admin/volunteers/{id}/verify [put]
func (h *AdminHandler) VerifyVolunteer(c *gin.Context) {
	h.LogRequest(c, "Verifying volunteer")

	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	profile, err := h.service.VerifyVolunteer(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(profile))
}

// ===== REQUEST OVERSIGHT =====

// ListRequests returns all requests for moderation
// @Summary List all support requests
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param limit query int false "Page size (default: 20, max: 100)"
// @Param offset query int false "Offset (default: 0)"
// @Success 200 {object} SuccessResponse
// @Router /admin/requests [get]
func (h *AdminHandler) ListRequests(c *gin.Context) {
	h.LogRequest(c, "Listing all requests")

	filters, ok := parseRequestFilters(c)
	if !ok {
		return
	}

	result, err := h.service.ListRequests(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(result))
}

// ExportRequests streams all requests as an xlsx workbook
// @Summary Export support requests
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/requests/export [get]
func (h *AdminHandler) ExportRequests(c *gin.Context) {
	h.LogRequest(c, "Exporting requests")

	f, err := h.service.ExportRequests(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("support-requests-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export")
	}
}

// ===== STATISTICS =====

// GetStatistics returns platform-wide user and request counts
// @Summary Get platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /admin/statistics [get]
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	h.LogRequest(c, "Getting platform statistics")

	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newSuccessResponse(stats))
}
