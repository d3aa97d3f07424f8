package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/validator"
)

func newVolunteerServiceFixture(t *testing.T) (*fakeRepository, VolunteerService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newFakeRepository()
	repo.users["vol-1"] = &models.User{ID: "vol-1", Email: "vol1@example.com", Role: models.RoleVolunteer}
	return repo, NewVolunteerService(repo, nil, logger, validator.New())
}

func validVolunteerProfileRequest() *CreateVolunteerProfileRequest {
	return &CreateVolunteerProfileRequest{
		Education: validator.EducationRequest{
			Degree:      "B.Sc. Mathematics",
			Institution: "City University",
			Year:        2019,
		},
		Subjects:  []string{"Mathematics", "Physics"},
		Languages: []string{"English", "Hindi"},
		Location: validator.LocationRequest{
			City:    "Pune",
			State:   "Maharashtra",
			Pincode: "411001",
		},
	}
}

func TestVolunteerService_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified profile", func(t *testing.T) {
		_, svc := newVolunteerServiceFixture(t)

		resp, err := svc.CreateProfile(ctx, validVolunteerProfileRequest(), "vol-1")
		if err != nil {
			t.Fatalf("CreateProfile failed: %v", err)
		}
		if resp.IsVerified {
			t.Errorf("New volunteers start unverified")
		}
		if resp.CompletedExams != 0 || resp.Rating != 0 {
			t.Errorf("New volunteers start with zero counters, got %d exams, rating %f",
				resp.CompletedExams, resp.Rating)
		}
	})

	t.Run("one profile per user", func(t *testing.T) {
		_, svc := newVolunteerServiceFixture(t)

		if _, err := svc.CreateProfile(ctx, validVolunteerProfileRequest(), "vol-1"); err != nil {
			t.Fatalf("First CreateProfile failed: %v", err)
		}
		_, err := svc.CreateProfile(ctx, validVolunteerProfileRequest(), "vol-1")
		if !errors.Is(err, ErrProfileExists) {
			t.Fatalf("Expected ErrProfileExists, got %v", err)
		}
	})

	t.Run("requires at least one subject and language", func(t *testing.T) {
		_, svc := newVolunteerServiceFixture(t)

		req := validVolunteerProfileRequest()
		req.Subjects = nil

		_, err := svc.CreateProfile(ctx, req, "vol-1")
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
	})
}

func TestVolunteerService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo, svc := newVolunteerServiceFixture(t)

	created, err := svc.CreateProfile(ctx, validVolunteerProfileRequest(), "vol-1")
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	// Simulate admin verification and completed work
	repo.volunteers[created.ID].IsVerified = true
	repo.volunteers[created.ID].CompletedExams = 3

	resp, err := svc.UpdateProfile(ctx, &UpdateVolunteerProfileRequest{
		Subjects: []string{"Chemistry"},
	}, "vol-1")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if len(resp.Subjects) != 1 || resp.Subjects[0] != "Chemistry" {
		t.Errorf("Expected subjects replaced, got %v", resp.Subjects)
	}
	// Moderation fields are not client-writable
	if !resp.IsVerified || resp.CompletedExams != 3 {
		t.Errorf("Update must not touch verification or counters, got verified=%v exams=%d",
			resp.IsVerified, resp.CompletedExams)
	}
}

func TestVolunteerService_GetProfile(t *testing.T) {
	ctx := context.Background()
	_, svc := newVolunteerServiceFixture(t)

	_, err := svc.GetProfile(ctx, "vol-1")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("Expected ErrProfileNotFound, got %v", err)
	}
}
