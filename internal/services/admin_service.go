package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
)

type adminService struct {
	repo                repositories.Repository
	db                  *gorm.DB
	logger              *slog.Logger
	notificationService NotificationService
}

func NewAdminService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, notificationService NotificationService) AdminService {
	return &adminService{
		repo:                repo,
		db:                  db,
		logger:              logger,
		notificationService: notificationService,
	}
}

func (s *adminService) ListUsers(ctx context.Context, params models.ListUsersParams) (*UserListResponse, error) {
	s.logger.Info("Listing users", "role", params.Role)

	filters := repositories.UserFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Role != "" {
		if !models.ValidRole(params.Role) {
			return nil, fmt.Errorf("unknown role %q", params.Role)
		}
		role := params.Role
		filters.Role = &role
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{Users: users, Total: total}, nil
}

// DeleteUser removes the user from the identity provider and drops their
// profile rows. Support requests stay; history is never deleted.
func (s *adminService) DeleteUser(ctx context.Context, userID string) error {
	s.logger.Info("Deleting user", "user_id", userID)

	exists, err := s.repo.User().ExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.StudentProfile().DeleteByUserID(ctx, nil, userID); err != nil {
			return fmt.Errorf("failed to delete student profile: %w", err)
		}
		if err := txRepo.VolunteerProfile().DeleteByUserID(ctx, nil, userID); err != nil {
			return fmt.Errorf("failed to delete volunteer profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user from identity provider: %w", err)
	}

	s.notificationService.NotifyUserDeleted(ctx, userID)

	s.logger.Info("User deleted", "user_id", userID)
	return nil
}

func (s *adminService) VerifyVolunteer(ctx context.Context, profileID uint) (*VolunteerProfileResponse, error) {
	s.logger.Info("Verifying volunteer", "profile_id", profileID)

	if err := s.repo.VolunteerProfile().SetVerified(ctx, s.db, profileID, true); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrVolunteerNotFound
		}
		return nil, fmt.Errorf("failed to verify volunteer: %w", err)
	}

	profile, err := s.repo.VolunteerProfile().GetByID(ctx, s.db, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload volunteer profile: %w", err)
	}

	s.notificationService.NotifyVolunteerVerified(ctx, profile)

	return &VolunteerProfileResponse{VolunteerProfile: profile}, nil
}

func (s *adminService) ListRequests(ctx context.Context, filters repositories.RequestFilters) (*RequestListResponse, error) {
	requests, total, err := s.repo.Request().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, &RequestResponse{SupportRequest: r})
	}

	return &RequestListResponse{Requests: responses, Total: total}, nil
}

// ExportRequests builds an xlsx workbook with one row per support
// request, for offline moderation.
func (s *adminService) ExportRequests(ctx context.Context) (*excelize.File, error) {
	s.logger.Info("Exporting requests to xlsx")

	requests, _, err := s.repo.Request().List(ctx, s.db, repositories.RequestFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load requests for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Requests"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"ID", "Status", "Student ID", "Volunteer ID",
		"Subject", "Exam Date", "Exam Time", "Duration", "Type", "Venue",
		"Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, r := range requests {
		volunteerID := ""
		if r.VolunteerID != nil {
			volunteerID = fmt.Sprintf("%d", *r.VolunteerID)
		}
		values := []interface{}{
			r.ID,
			string(r.Status),
			r.StudentID,
			volunteerID,
			r.ExamDetails.Subject,
			r.ExamDetails.Date.Format("2006-01-02"),
			r.ExamDetails.Time,
			r.ExamDetails.Duration,
			string(r.ExamDetails.Type),
			r.ExamDetails.Venue,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}

func (s *adminService) GetStatistics(ctx context.Context) (*models.PlatformStatistics, error) {
	s.logger.Info("Computing platform statistics")

	requestStats, err := s.repo.Request().CountByStatus(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	students, err := s.repo.StudentProfile().Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	volunteers, err := s.repo.VolunteerProfile().Count(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to count volunteers: %w", err)
	}

	verified, err := s.repo.VolunteerProfile().CountVerified(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to count verified volunteers: %w", err)
	}

	totalUsers, err := s.repo.User().Count(ctx)
	if err != nil {
		// Identity provider counts are best effort; fall back to
		// profile totals rather than failing the whole endpoint.
		s.logger.Warn("Failed to count users in identity provider", "error", err)
		totalUsers = students + volunteers
	}

	return &models.PlatformStatistics{
		Users: models.UserStatistics{
			Total:              totalUsers,
			Students:           students,
			Volunteers:         volunteers,
			VerifiedVolunteers: verified,
		},
		Requests: *requestStats,
	}, nil
}
