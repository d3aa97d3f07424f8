package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Hand2Hand-2025/volunteer-service/internal/events"
	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

func testSupportRequest(status models.RequestStatus) *models.SupportRequest {
	vid := uint(1)
	req := &models.SupportRequest{
		ID:        42,
		StudentID: 1,
		Status:    status,
		ExamDetails: models.ExamDetails{
			Subject: "Physics",
			Date:    time.Now().Add(48 * time.Hour),
		},
	}
	if status == models.RequestAccepted || status == models.RequestCompleted {
		req.VolunteerID = &vid
	}
	return req
}

func TestNotificationService_PublishEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockPublisher := events.NewMockEventPublisher(logger)
	mail := &captureMailer{}
	service := NewNotificationService(mockPublisher, mail, logger)

	ctx := context.Background()

	t.Run("created event", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyRequestCreated(ctx, testSupportRequest(models.RequestPending))

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventRequestCreated {
			t.Errorf("Expected event type %s, got %s", events.EventRequestCreated, published[0].Type)
		}
	})

	t.Run("event structure", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyRequestCancelled(ctx, testSupportRequest(models.RequestCancelled))

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}

		event := published[0]
		if event.ID == "" {
			t.Error("Event ID should not be empty")
		}
		if event.Source != "volunteer-service" {
			t.Errorf("Expected source 'volunteer-service', got '%s'", event.Source)
		}
		if event.Version != "1.0" {
			t.Errorf("Expected version '1.0', got '%s'", event.Version)
		}
		if event.Timestamp.IsZero() {
			t.Error("Event timestamp should not be zero")
		}

		data, ok := event.Data.(RequestEventData)
		if !ok {
			t.Fatalf("Expected RequestEventData payload, got %T", event.Data)
		}
		if data.RequestID != 42 {
			t.Errorf("Expected request ID 42, got %d", data.RequestID)
		}
	})

	t.Run("responded sends email", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyRequestResponded(ctx, testSupportRequest(models.RequestAccepted), "student@example.com")

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventRequestAccepted {
			t.Fatalf("Expected one %s event, got %v", events.EventRequestAccepted, published)
		}

		msgs := mail.sent()
		if len(msgs) != 1 {
			t.Fatalf("Expected 1 email, got %d", len(msgs))
		}
		if msgs[0].To[0].Address != "student@example.com" {
			t.Errorf("Expected email to student@example.com, got %s", msgs[0].To[0].Address)
		}
	})

	t.Run("rejected maps to rejected event", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyRequestResponded(ctx, testSupportRequest(models.RequestRejected), "student@example.com")

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventRequestRejected {
			t.Fatalf("Expected one %s event, got %v", events.EventRequestRejected, published)
		}
	})

	t.Run("missing email skips mail but keeps event", func(t *testing.T) {
		mockPublisher.ClearEvents()
		before := len(mail.sent())

		service.NotifyRequestCompleted(ctx, testSupportRequest(models.RequestCompleted), "")

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventRequestCompleted {
			t.Fatalf("Expected one %s event, got %v", events.EventRequestCompleted, published)
		}
		if after := len(mail.sent()); after != before {
			t.Errorf("No email expected without an address")
		}
	})

	t.Run("volunteer verified", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyVolunteerVerified(ctx, &models.VolunteerProfile{ID: 7, UserID: "vol-7"})

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventVolunteerVerified {
			t.Fatalf("Expected one %s event, got %v", events.EventVolunteerVerified, published)
		}
	})

	t.Run("user deleted", func(t *testing.T) {
		mockPublisher.ClearEvents()

		service.NotifyUserDeleted(ctx, "student-9")

		published := mockPublisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserDeleted {
			t.Fatalf("Expected one %s event, got %v", events.EventUserDeleted, published)
		}
	})
}
