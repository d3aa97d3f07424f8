package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

// RequestFilters represents filters for querying support requests
type RequestFilters struct {
	Status      *models.RequestStatus
	StudentID   *uint
	VolunteerID *uint
	Limit       int
	Offset      int
	SortBy      string
	SortOrder   string
}

// VolunteerFilters represents filters for searching volunteer profiles
type VolunteerFilters struct {
	City         string
	State        string
	Subject      string
	VerifiedOnly bool
	Limit        int
	Offset       int
}

// UserFilters represents filters for listing users
type UserFilters struct {
	Role   *models.UserRole
	Query  string
	Limit  int
	Offset int
}

// RequestRepository defines the contract for support request data access.
// Mutating methods accept an optional transaction handle; a nil tx runs
// against the base connection.
type RequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *models.SupportRequest) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.SupportRequest, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.SupportRequest, error)

	// GetVolunteerFeed returns requests visible to a volunteer: every
	// unassigned pending request plus requests already assigned to them.
	GetVolunteerFeed(ctx context.Context, tx *gorm.DB, volunteerID uint) ([]*models.SupportRequest, error)

	// GetAssigned returns requests assigned to the volunteer, optionally
	// narrowed to a status set.
	GetAssigned(ctx context.Context, tx *gorm.DB, volunteerID uint, statuses []models.RequestStatus) ([]*models.SupportRequest, error)

	List(ctx context.Context, tx *gorm.DB, filters RequestFilters) ([]*models.SupportRequest, int64, error)
	Update(ctx context.Context, tx *gorm.DB, request *models.SupportRequest) error

	// AcceptIfPending atomically assigns the volunteer and moves the
	// request to accepted, but only while it is still pending. Returns
	// false when another writer got there first.
	AcceptIfPending(ctx context.Context, tx *gorm.DB, id uint, volunteerID uint) (bool, error)

	// UpdateStatusIf atomically moves the request to the target status
	// when its current status is one of the expected set.
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, id uint, expected []models.RequestStatus, to models.RequestStatus) (bool, error)

	// CancelIf atomically cancels the request when its current status is
	// one of the expected set, clearing any volunteer assignment so the
	// volunteer-set-iff-accepted-or-completed invariant holds.
	CancelIf(ctx context.Context, tx *gorm.DB, id uint, expected []models.RequestStatus) (bool, error)

	CountByStatus(ctx context.Context, tx *gorm.DB) (*models.RequestStatistics, error)
}

// StudentProfileRepository defines the contract for student profile data access
type StudentProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.StudentProfile, error)
	ExistsByUserID(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

// VolunteerProfileRepository defines the contract for volunteer profile data access
type VolunteerProfileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, profile *models.VolunteerProfile) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.VolunteerProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.VolunteerProfile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *models.VolunteerProfile) error
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error
	Search(ctx context.Context, tx *gorm.DB, filters VolunteerFilters) ([]*models.VolunteerProfile, int64, error)
	SetVerified(ctx context.Context, tx *gorm.DB, id uint, verified bool) error

	// IncrementCompletedExams bumps the volunteer's completed exam
	// counter with a single relative update.
	IncrementCompletedExams(ctx context.Context, tx *gorm.DB, id uint) error

	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CountVerified(ctx context.Context, tx *gorm.DB) (int64, error)
}

// UserRepository defines the contract for user data access backed by Casdoor
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	ExistsByID(ctx context.Context, userID string) (bool, error)
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int64, error)
}
