package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/Hand2Hand-2025/volunteer-service/internal/events"
	"github.com/Hand2Hand-2025/volunteer-service/internal/mailer"
	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

// RequestEventData is the payload carried by request lifecycle events.
type RequestEventData struct {
	RequestID   uint                 `json:"request_id"`
	StudentID   uint                 `json:"student_id"`
	VolunteerID *uint                `json:"volunteer_id,omitempty"`
	Status      models.RequestStatus `json:"status"`
	Subject     string               `json:"subject"`
	ExamDate    time.Time            `json:"exam_date"`
}

type notificationService struct {
	eventPublisher events.EventPublisher
	mailer         mailer.Mailer
	logger         *slog.Logger
}

func NewNotificationService(publisher events.EventPublisher, m mailer.Mailer, logger *slog.Logger) NotificationService {
	return &notificationService{
		eventPublisher: publisher,
		mailer:         m,
		logger:         logger,
	}
}

func (s *notificationService) NotifyRequestCreated(ctx context.Context, request *models.SupportRequest) {
	s.publishRequestEvent(ctx, events.EventRequestCreated, request)
}

func (s *notificationService) NotifyRequestResponded(ctx context.Context, request *models.SupportRequest, studentEmail string) {
	eventType := events.EventRequestAccepted
	subject := "A volunteer accepted your exam support request"
	body := fmt.Sprintf(
		"Good news! A volunteer has accepted your support request for %s on %s.",
		request.ExamDetails.Subject, request.ExamDetails.Date.Format("January 2, 2006"))

	if request.Status == models.RequestRejected {
		eventType = events.EventRequestRejected
		subject = "Update on your exam support request"
		body = fmt.Sprintf(
			"Your support request for %s on %s was declined. You can file a new request at any time.",
			request.ExamDetails.Subject, request.ExamDetails.Date.Format("January 2, 2006"))
	}

	s.publishRequestEvent(ctx, eventType, request)
	s.sendStudentEmail(request, studentEmail, subject, body)
}

func (s *notificationService) NotifyRequestCompleted(ctx context.Context, request *models.SupportRequest, studentEmail string) {
	s.publishRequestEvent(ctx, events.EventRequestCompleted, request)
	s.sendStudentEmail(request, studentEmail,
		"Your exam support session is complete",
		fmt.Sprintf("Your support session for %s has been marked complete. We hope it went well!",
			request.ExamDetails.Subject))
}

func (s *notificationService) NotifyRequestCancelled(ctx context.Context, request *models.SupportRequest) {
	s.publishRequestEvent(ctx, events.EventRequestCancelled, request)
}

// NotifyVolunteerVerified announces an admin verification so downstream
// consumers (directory search, badges) can react.
func (s *notificationService) NotifyVolunteerVerified(ctx context.Context, profile *models.VolunteerProfile) {
	event := &events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventVolunteerVerified,
		Source:    events.EventSource,
		Version:   events.EventVersion,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"profile_id": profile.ID,
			"user_id":    profile.UserID,
		},
	}

	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, event); err != nil {
		s.logger.Error("Failed to publish volunteer verified event",
			"profile_id", profile.ID,
			"error", err)
	}
}

// NotifyUserDeleted announces an account removal so other services can
// drop their copies of the user's data.
func (s *notificationService) NotifyUserDeleted(ctx context.Context, userID string) {
	event := &events.Event{
		ID:        uuid.New().String(),
		Type:      events.EventUserDeleted,
		Source:    events.EventSource,
		Version:   events.EventVersion,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
		},
	}

	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, event); err != nil {
		s.logger.Error("Failed to publish user deleted event",
			"user_id", userID,
			"error", err)
	}
}

func (s *notificationService) publishRequestEvent(ctx context.Context, eventType string, request *models.SupportRequest) {
	event := &events.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    events.EventSource,
		Version:   events.EventVersion,
		Timestamp: time.Now(),
		Data: RequestEventData{
			RequestID:   request.ID,
			StudentID:   request.StudentID,
			VolunteerID: request.VolunteerID,
			Status:      request.Status,
			Subject:     request.ExamDetails.Subject,
			ExamDate:    request.ExamDetails.Date,
		},
	}

	if err := s.eventPublisher.Publish(ctx, events.TopicRequests, event); err != nil {
		s.logger.Error("Failed to publish request event",
			"event_type", eventType,
			"request_id", request.ID,
			"error", err)
	}
}

func (s *notificationService) sendStudentEmail(request *models.SupportRequest, studentEmail, subject, body string) {
	if studentEmail == "" {
		s.logger.Warn("No student email available, skipping notification",
			"request_id", request.ID)
		return
	}

	msg := &mailer.EmailMessage{
		To:          []mail.Address{{Address: studentEmail}},
		Subject:     subject,
		TextContent: body,
	}
	s.mailer.SendMessages(msg)
}
