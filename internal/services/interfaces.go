package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateRequestRequest = validator.RequestCreateRequest
type RespondRequest = validator.RespondRequest
type CreateStudentProfileRequest = validator.StudentProfileCreateRequest
type UpdateStudentProfileRequest = validator.StudentProfileUpdateRequest
type CreateVolunteerProfileRequest = validator.VolunteerProfileCreateRequest
type UpdateVolunteerProfileRequest = validator.VolunteerProfileUpdateRequest

type RequestResponse struct {
	*models.SupportRequest
	CanCancel   bool `json:"can_cancel"`
	CanRespond  bool `json:"can_respond"`
	CanComplete bool `json:"can_complete"`
}

type RequestListResponse struct {
	Requests []*RequestResponse `json:"requests"`
	Total    int64              `json:"total"`
}

type StudentProfileResponse struct {
	*models.StudentProfile
}

type VolunteerProfileResponse struct {
	*models.VolunteerProfile
}

type VolunteerDirectoryResponse struct {
	Volunteers []*models.VolunteerProfile `json:"volunteers"`
	Total      int64                      `json:"total"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// ===== SERVICE INTERFACES =====

// RequestService drives the support request lifecycle. Every transition
// is guarded by caller identity and the state machine:
// pending -> accepted | rejected | cancelled, accepted -> completed |
// cancelled. Terminal states are never left.
type RequestService interface {
	// Student operations
	Create(ctx context.Context, req *CreateRequestRequest, studentUserID string) (*RequestResponse, error)
	GetByStudent(ctx context.Context, studentUserID string) ([]*RequestResponse, error)
	Cancel(ctx context.Context, id uint, studentUserID string) (*RequestResponse, error)

	// Volunteer operations
	GetVolunteerFeed(ctx context.Context, volunteerUserID string) ([]*RequestResponse, error)
	GetAssignedExams(ctx context.Context, volunteerUserID string) ([]*RequestResponse, error)
	Respond(ctx context.Context, id uint, req *RespondRequest, volunteerUserID string) (*RequestResponse, error)
	Complete(ctx context.Context, id uint, volunteerUserID string) (*RequestResponse, error)

	// Shared reads (ownership-scoped for non-admins)
	GetByID(ctx context.Context, id uint, userID string, role models.UserRole) (*RequestResponse, error)
	List(ctx context.Context, userID string, role models.UserRole, filters repositories.RequestFilters) (*RequestListResponse, error)
}

type StudentService interface {
	CreateProfile(ctx context.Context, req *CreateStudentProfileRequest, userID string) (*StudentProfileResponse, error)
	GetProfile(ctx context.Context, userID string) (*StudentProfileResponse, error)
	UpdateProfile(ctx context.Context, req *UpdateStudentProfileRequest, userID string) (*StudentProfileResponse, error)

	// SearchVolunteers returns verified volunteers matching the params.
	SearchVolunteers(ctx context.Context, params models.VolunteerSearchParams) (*VolunteerDirectoryResponse, error)
}

type VolunteerService interface {
	CreateProfile(ctx context.Context, req *CreateVolunteerProfileRequest, userID string) (*VolunteerProfileResponse, error)
	GetProfile(ctx context.Context, userID string) (*VolunteerProfileResponse, error)
	UpdateProfile(ctx context.Context, req *UpdateVolunteerProfileRequest, userID string) (*VolunteerProfileResponse, error)
}

type AdminService interface {
	// User moderation
	ListUsers(ctx context.Context, params models.ListUsersParams) (*UserListResponse, error)
	DeleteUser(ctx context.Context, userID string) error

	// Volunteer verification
	VerifyVolunteer(ctx context.Context, profileID uint) (*VolunteerProfileResponse, error)

	// Request oversight
	ListRequests(ctx context.Context, filters repositories.RequestFilters) (*RequestListResponse, error)
	ExportRequests(ctx context.Context) (*excelize.File, error)

	// Platform statistics
	GetStatistics(ctx context.Context) (*models.PlatformStatistics, error)
}

// NotificationService turns request lifecycle changes into events and
// student-facing email. Best effort: failures are logged, never returned
// to the caller of a state transition.
type NotificationService interface {
	NotifyRequestCreated(ctx context.Context, request *models.SupportRequest)
	NotifyRequestResponded(ctx context.Context, request *models.SupportRequest, studentEmail string)
	NotifyRequestCompleted(ctx context.Context, request *models.SupportRequest, studentEmail string)
	NotifyRequestCancelled(ctx context.Context, request *models.SupportRequest)
	NotifyVolunteerVerified(ctx context.Context, profile *models.VolunteerProfile)
	NotifyUserDeleted(ctx context.Context, userID string)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	Request() RequestService
	Student() StudentService
	Volunteer() VolunteerService
	Admin() AdminService
	Notification() NotificationService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
