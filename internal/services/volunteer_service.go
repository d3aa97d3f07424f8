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

type volunteerService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewVolunteerService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) VolunteerService {
	return &volunteerService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

// CreateProfile creates the caller's volunteer profile. Rating, completed
// exam counter and verification always start at their zero values; only
// an admin can verify.
func (s *volunteerService) CreateProfile(ctx context.Context, req *CreateVolunteerProfileRequest, userID string) (*VolunteerProfileResponse, error) {
	s.logger.Info("Creating volunteer profile", "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.VolunteerProfile().GetByUserID(ctx, s.db, userID); err == nil {
		return nil, ErrProfileExists
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}

	profile := &models.VolunteerProfile{
		UserID: userID,
		Education: models.Education{
			Degree:      req.Education.Degree,
			Institution: req.Education.Institution,
			Year:        req.Education.Year,
		},
		Subjects:  req.Subjects,
		Languages: req.Languages,
		Location: models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			Pincode: req.Location.Pincode,
		},
		Availability: req.Availability,
		Experience:   req.Experience,
	}

	if err := s.repo.VolunteerProfile().Create(ctx, s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to create volunteer profile: %w", err)
	}

	s.logger.Info("Volunteer profile created", "user_id", userID, "profile_id", profile.ID)
	return &VolunteerProfileResponse{VolunteerProfile: profile}, nil
}

func (s *volunteerService) GetProfile(ctx context.Context, userID string) (*VolunteerProfileResponse, error) {
	profile, err := s.repo.VolunteerProfile().GetByUserID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get volunteer profile: %w", err)
	}

	if user, err := s.repo.User().GetByID(ctx, userID); err == nil {
		profile.User = user
	}

	return &VolunteerProfileResponse{VolunteerProfile: profile}, nil
}

// UpdateProfile applies the provided fields. Rating, completed exams and
// is_verified are never touched here.
func (s *volunteerService) UpdateProfile(ctx context.Context, req *UpdateVolunteerProfileRequest, userID string) (*VolunteerProfileResponse, error) {
	s.logger.Info("Updating volunteer profile", "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.repo.VolunteerProfile().GetByUserID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get volunteer profile: %w", err)
	}

	if req.Education != nil {
		profile.Education = models.Education{
			Degree:      req.Education.Degree,
			Institution: req.Education.Institution,
			Year:        req.Education.Year,
		}
	}
	if req.Subjects != nil {
		profile.Subjects = req.Subjects
	}
	if req.Languages != nil {
		profile.Languages = req.Languages
	}
	if req.Location != nil {
		profile.Location = models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			Pincode: req.Location.Pincode,
		}
	}
	if req.Availability != nil {
		profile.Availability = req.Availability
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
	}

	if err := s.repo.VolunteerProfile().Update(ctx, s.db, profile); err != nil {
		return nil, fmt.Errorf("failed to update volunteer profile: %w", err)
	}

	return &VolunteerProfileResponse{VolunteerProfile: profile}, nil
}
