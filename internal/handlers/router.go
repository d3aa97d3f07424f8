package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Hand2Hand-2025/volunteer-service/internal/config"
	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
	"github.com/Hand2Hand-2025/volunteer-service/internal/services"
	"github.com/Hand2Hand-2025/volunteer-service/internal/utils"
)

type HandlerManager struct {
	studentHandler   *StudentHandler
	volunteerHandler *VolunteerHandler
	requestHandler   *RequestHandler
	adminHandler     *AdminHandler
	authMiddleware   *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		volunteerHandler: NewVolunteerHandler(serviceManager.Volunteer(), logger),
		requestHandler:   NewRequestHandler(serviceManager.Request(), logger),
		adminHandler:     NewAdminHandler(serviceManager.Admin(), logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Student routes - Students only
		students := v1.Group("/students")
		students.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			students.POST("/profile", hm.studentHandler.CreateProfile)
			students.GET("/profile", hm.studentHandler.GetProfile)
			students.PUT("/profile", hm.studentHandler.UpdateProfile)

			students.GET("/volunteers", hm.studentHandler.SearchVolunteers)

			students.POST("/requests", hm.requestHandler.CreateRequest)
			students.GET("/requests", hm.requestHandler.GetMyRequests)
		}

		// Volunteer routes - Volunteers only
		volunteers := v1.Group("/volunteers")
		volunteers.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleVolunteer))
		{
			volunteers.POST("/profile", hm.volunteerHandler.CreateProfile)
			volunteers.GET("/profile", hm.volunteerHandler.GetProfile)
			volunteers.PUT("/profile", hm.volunteerHandler.UpdateProfile)

			volunteers.GET("/requests", hm.requestHandler.GetVolunteerFeed)
			volunteers.PUT("/requests/:id/respond", hm.requestHandler.RespondToRequest)
			volunteers.PUT("/requests/:id/complete", hm.requestHandler.CompleteRequest)
			volunteers.GET("/assigned-exams", hm.requestHandler.GetAssignedExams)
		}

		// Shared request routes - visibility is scoped by role inside
		// the service layer
		requests := v1.Group("/requests")
		{
			requests.GET("", hm.requestHandler.ListRequests)
			requests.GET("/:id", hm.requestHandler.GetRequest)
			requests.PUT("/:id/cancel", hm.authMiddleware.RequireRoleMiddleware(models.RoleStudent), hm.requestHandler.CancelRequest)
		}

		// Admin routes - Admins only
		admin := v1.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)

			admin.PUT("/volunteers/:id/verify", hm.adminHandler.VerifyVolunteer)

			admin.GET("/requests", hm.adminHandler.ListRequests)
			admin.GET("/requests/export", hm.adminHandler.ExportRequests)
			admin.GET("/statistics", hm.adminHandler.GetStatistics)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "volunteer-service",
		})
	})
}
