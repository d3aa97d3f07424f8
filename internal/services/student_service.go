package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// CreateProfile creates the caller's student profile. A user gets exactly
// one; a second create fails.
func (s *studentService) CreateProfile(ctx context.Context, req *CreateStudentProfileRequest, userID string) (*StudentProfileResponse, error) {
	s.logger.Info("Creating student profile", "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.StudentProfile().ExistsByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if exists {
		return nil, ErrProfileExists
	}

	profile := &models.StudentProfile{
		UserID:            userID,
		DisabilityType:    req.DisabilityType,
		DisabilityDetails: req.DisabilityDetails,
		Location: models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			Pincode: req.Location.Pincode,
		},
		EducationLevel: req.EducationLevel,
		Institution:    req.Institution,
		RollNumber:     req.RollNumber,
	}

	if err := s.repo.StudentProfile().Create(ctx, s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to create student profile: %w", err)
	}

	s.logger.Info("Student profile created", "user_id", userID, "profile_id", profile.ID)
	return &StudentProfileResponse{StudentProfile: profile}, nil
}

func (s *studentService) GetProfile(ctx context.Context, userID string) (*StudentProfileResponse, error) {
	profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	if user, err := s.repo.User().GetByID(ctx, userID); err == nil {
		profile.User = user
	}

	return &StudentProfileResponse{StudentProfile: profile}, nil
}

// UpdateProfile applies the provided fields; absent fields keep their
// current values. Last write wins.
func (s *studentService) UpdateProfile(ctx context.Context, req *UpdateStudentProfileRequest, userID string) (*StudentProfileResponse, error) {
	s.logger.Info("Updating student profile", "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	if req.DisabilityType != nil {
		profile.DisabilityType = *req.DisabilityType
	}
	if req.DisabilityDetails != nil {
		profile.DisabilityDetails = *req.DisabilityDetails
	}
	if req.Location != nil {
		profile.Location = models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			Pincode: req.Location.Pincode,
		}
	}
	if req.EducationLevel != nil {
		profile.EducationLevel = *req.EducationLevel
	}
	if req.Institution != nil {
		profile.Institution = *req.Institution
	}
	if req.RollNumber != nil {
		profile.RollNumber = req.RollNumber
	}

	if err := s.repo.StudentProfile().Update(ctx, s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to update student profile: %w", err)
	}

	return &StudentProfileResponse{StudentProfile: profile}, nil
}

// SearchVolunteers returns verified volunteers matching the optional
// city/state/subject filters, best rated first.
func (s *studentService) SearchVolunteers(ctx context.Context, params models.VolunteerSearchParams) (*VolunteerDirectoryResponse, error) {
	filters := repositories.VolunteerFilters{
		City:         params.City,
		State:        params.State,
		Subject:      params.Subject,
		VerifiedOnly: true,
	}

	volunteers, total, err := s.repo.VolunteerProfile().Search(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search volunteers: %w", err)
	}

	// Attach user identity; a miss leaves the profile without it
	for _, v := range volunteers {
		if user, err := s.repo.User().GetByID(ctx, v.UserID); err == nil {
			v.User = user
		}
	}

	return &VolunteerDirectoryResponse{
		Volunteers: volunteers,
		Total:      total,
	}, nil
}
