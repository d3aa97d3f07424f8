package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Hand2Hand-2025/volunteer-service/internal/events"
	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
)

type adminServiceFixture struct {
	repo      *fakeRepository
	service   AdminService
	publisher *events.MockEventPublisher
}

func newAdminServiceFixture(t *testing.T) *adminServiceFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(logger)
	notifications := NewNotificationService(publisher, &captureMailer{}, logger)
	return &adminServiceFixture{
		repo:      repo,
		service:   NewAdminService(repo, nil, logger, notifications),
		publisher: publisher,
	}
}

func TestAdminService_VerifyVolunteer(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.volunteers[1] = &models.VolunteerProfile{ID: 1, UserID: "vol-1"}

	resp, err := svc.VerifyVolunteer(ctx, 1)
	if err != nil {
		t.Fatalf("VerifyVolunteer failed: %v", err)
	}
	if !resp.IsVerified {
		t.Errorf("Expected profile verified")
	}

	published := fx.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventVolunteerVerified {
		t.Errorf("Expected a volunteer verified event, got %+v", published)
	}

	_, err = svc.VerifyVolunteer(ctx, 999)
	if !errors.Is(err, ErrVolunteerNotFound) {
		t.Fatalf("Expected ErrVolunteerNotFound, got %v", err)
	}
}

func TestAdminService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.users["student-1"] = &models.User{ID: "student-1", Role: models.RoleStudent}
	repo.students[1] = &models.StudentProfile{ID: 1, UserID: "student-1"}
	repo.requests[1] = &models.SupportRequest{ID: 1, StudentID: 1, Status: models.RequestCompleted}

	if err := svc.DeleteUser(ctx, "student-1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, ok := repo.users["student-1"]; ok {
		t.Errorf("User should be deleted")
	}
	if len(repo.students) != 0 {
		t.Errorf("Student profile should be deleted")
	}
	// Request history is never deleted
	if len(repo.requests) != 1 {
		t.Errorf("Requests must survive user deletion")
	}

	published := fx.publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserDeleted {
		t.Errorf("Expected a user deleted event, got %+v", published)
	}

	err := svc.DeleteUser(ctx, "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.users["s1"] = &models.User{ID: "s1", Role: models.RoleStudent}
	repo.users["v1"] = &models.User{ID: "v1", Role: models.RoleVolunteer}

	resp, err := svc.ListUsers(ctx, models.ListUsersParams{Role: models.RoleVolunteer})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if resp.Total != 1 || resp.Users[0].ID != "v1" {
		t.Errorf("Expected only the volunteer, got %v", resp.Users)
	}

	if _, err := svc.ListUsers(ctx, models.ListUsersParams{Role: "wizard"}); err == nil {
		t.Fatalf("Expected error for unknown role")
	}
}

func TestAdminService_GetStatistics(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.users["s1"] = &models.User{ID: "s1", Role: models.RoleStudent}
	repo.users["v1"] = &models.User{ID: "v1", Role: models.RoleVolunteer}
	repo.students[1] = &models.StudentProfile{ID: 1, UserID: "s1"}
	repo.volunteers[1] = &models.VolunteerProfile{ID: 1, UserID: "v1", IsVerified: true}
	repo.requests[1] = &models.SupportRequest{ID: 1, StudentID: 1, Status: models.RequestPending}
	repo.requests[2] = &models.SupportRequest{ID: 2, StudentID: 1, Status: models.RequestCompleted}

	stats, err := svc.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}

	if stats.Users.Total != 2 || stats.Users.Students != 1 || stats.Users.Volunteers != 1 {
		t.Errorf("Unexpected user stats: %+v", stats.Users)
	}
	if stats.Users.VerifiedVolunteers != 1 {
		t.Errorf("Expected 1 verified volunteer, got %d", stats.Users.VerifiedVolunteers)
	}
	if stats.Requests.Total != 2 || stats.Requests.Pending != 1 || stats.Requests.Completed != 1 {
		t.Errorf("Unexpected request stats: %+v", stats.Requests)
	}
}

func TestAdminService_ExportRequests(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.requests[1] = &models.SupportRequest{
		ID: 1, StudentID: 1, Status: models.RequestPending,
		ExamDetails: models.ExamDetails{Subject: "History"},
	}

	f, err := svc.ExportRequests(ctx)
	if err != nil {
		t.Fatalf("ExportRequests failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Requests")
	if err != nil {
		t.Fatalf("Failed to read sheet: %v", err)
	}
	// Header plus one data row
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Errorf("Expected header row, got %v", rows[0])
	}
	if rows[1][4] != "History" {
		t.Errorf("Expected subject in data row, got %v", rows[1])
	}
}

func TestAdminService_ListRequests(t *testing.T) {
	ctx := context.Background()
	fx := newAdminServiceFixture(t)
	repo, svc := fx.repo, fx.service

	repo.requests[1] = &models.SupportRequest{ID: 1, StudentID: 1, Status: models.RequestPending}
	repo.requests[2] = &models.SupportRequest{ID: 2, StudentID: 1, Status: models.RequestCancelled}

	status := models.RequestPending
	resp, err := svc.ListRequests(ctx, repositories.RequestFilters{Status: &status})
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if resp.Total != 1 || resp.Requests[0].ID != 1 {
		t.Errorf("Expected only the pending request, got %+v", resp)
	}
}
