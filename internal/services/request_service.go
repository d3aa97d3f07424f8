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

// ===== SERVICE IMPLEMENTATION =====

type requestService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	notifier  NotificationService
}

func NewRequestService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, notifier NotificationService) RequestService {
	return &requestService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		notifier:  notifier,
	}
}

// Create files a new support request for the calling student. The student
// must have a profile; without one no row is written.
func (s *requestService) Create(ctx context.Context, req *CreateRequestRequest, studentUserID string) (*RequestResponse, error) {
	s.logger.Info("Creating support request", "student_user_id", studentUserID)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, studentUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	request := &models.SupportRequest{
		StudentID: profile.ID,
		ExamDetails: models.ExamDetails{
			Subject:  req.ExamDetails.Subject,
			Date:     req.ExamDetails.Date,
			Time:     req.ExamDetails.Time,
			Duration: req.ExamDetails.Duration,
			Type:     req.ExamDetails.Type,
			Venue:    req.ExamDetails.Venue,
		},
		RequiredQualification: req.RequiredQualification,
		SpecialRequirements:   req.SpecialRequirements,
		Status:                models.RequestPending,
	}

	if err := s.repo.Request().Create(ctx, s.db, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Info("Support request created", "request_id", request.ID, "student_id", profile.ID)
	s.notifier.NotifyRequestCreated(ctx, request)

	return s.buildResponse(request, studentUserID, models.RoleStudent, profile.ID), nil
}

// GetByStudent returns the caller's own requests, newest first.
func (s *requestService) GetByStudent(ctx context.Context, studentUserID string) ([]*RequestResponse, error) {
	profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, studentUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	requests, err := s.repo.Request().GetByStudent(ctx, s.db, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student requests: %w", err)
	}

	responses := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.buildResponse(r, studentUserID, models.RoleStudent, profile.ID))
	}
	return responses, nil
}

// Cancel moves a request to cancelled. Only the owning student may cancel,
// and only while the request is not in a terminal state.
func (s *requestService) Cancel(ctx context.Context, id uint, studentUserID string) (*RequestResponse, error) {
	s.logger.Info("Cancelling support request", "request_id", id, "student_user_id", studentUserID)

	profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, studentUserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to get student profile: %w", err)
	}

	request, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.StudentID != profile.ID {
		return nil, NewPermissionError(studentUserID, id, "request", "cancel", "not the owning student")
	}

	if request.Status.IsTerminal() {
		return nil, ErrInvalidStateTransition
	}

	// pending and accepted are the only cancellable states; cancelling
	// an accepted request also releases the assigned volunteer
	ok, err := s.repo.Request().CancelIf(ctx, s.db, id,
		[]models.RequestStatus{models.RequestPending, models.RequestAccepted})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}
	if !ok {
		// Lost a race against another transition
		return nil, ErrInvalidStateTransition
	}

	updated, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}

	s.logger.Info("Support request cancelled", "request_id", id)
	s.notifier.NotifyRequestCancelled(ctx, updated)

	return s.buildResponse(updated, studentUserID, models.RoleStudent, profile.ID), nil
}

// GetVolunteerFeed returns every unassigned pending request plus
// requests already assigned to the calling volunteer.
func (s *requestService) GetVolunteerFeed(ctx context.Context, volunteerUserID string) ([]*RequestResponse, error) {
	profile, err := s.volunteerProfile(ctx, volunteerUserID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.Request().GetVolunteerFeed(ctx, s.db, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get volunteer feed: %w", err)
	}

	responses := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.buildResponse(r, volunteerUserID, models.RoleVolunteer, profile.ID))
	}
	return responses, nil
}

// GetAssignedExams returns requests assigned to the caller that are
// accepted or already completed, ordered by exam date.
func (s *requestService) GetAssignedExams(ctx context.Context, volunteerUserID string) ([]*RequestResponse, error) {
	profile, err := s.volunteerProfile(ctx, volunteerUserID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.Request().GetAssigned(ctx, s.db, profile.ID,
		[]models.RequestStatus{models.RequestAccepted, models.RequestCompleted})
	if err != nil {
		return nil, fmt.Errorf("failed to get assigned exams: %w", err)
	}

	responses := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.buildResponse(r, volunteerUserID, models.RoleVolunteer, profile.ID))
	}
	return responses, nil
}

// Respond accepts or rejects a pending request on behalf of the calling
// volunteer. Acceptance assigns the volunteer and bumps their completed
// exam counter in the same transaction; the status check is a single
// conditional update, so two concurrent accepts can never both win.
func (s *requestService) Respond(ctx context.Context, id uint, req *RespondRequest, volunteerUserID string) (*RequestResponse, error) {
	s.logger.Info("Responding to support request",
		"request_id", id,
		"volunteer_user_id", volunteerUserID,
		"status", req.Status)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Status != models.RequestAccepted && req.Status != models.RequestRejected {
		return nil, ErrInvalidStatus
	}

	profile, err := s.volunteerProfile(ctx, volunteerUserID)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.Status != models.RequestPending {
		return nil, ErrAlreadyResolved
	}

	if req.Status == models.RequestAccepted {
		err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
			ok, err := txRepo.Request().AcceptIfPending(ctx, nil, id, profile.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrAlreadyResolved
			}

			// The counter moves on acceptance, once per request.
			return txRepo.VolunteerProfile().IncrementCompletedExams(ctx, nil, profile.ID)
		})
	} else {
		ok, casErr := s.repo.Request().UpdateStatusIf(ctx, s.db, id,
			[]models.RequestStatus{models.RequestPending}, models.RequestRejected)
		if casErr != nil {
			err = casErr
		} else if !ok {
			err = ErrAlreadyResolved
		}
	}
	if err != nil {
		if err == ErrAlreadyResolved {
			return nil, err
		}
		return nil, fmt.Errorf("failed to respond to request: %w", err)
	}

	updated, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}

	s.logger.Info("Support request responded",
		"request_id", id,
		"status", updated.Status,
		"volunteer_id", profile.ID)

	s.notifier.NotifyRequestResponded(ctx, updated, s.studentEmail(ctx, updated))

	return s.buildResponse(updated, volunteerUserID, models.RoleVolunteer, profile.ID), nil
}

// Complete marks an accepted request as done. Only the assigned
// volunteer may complete it. The completed exam counter stays put; it
// already moved on acceptance.
func (s *requestService) Complete(ctx context.Context, id uint, volunteerUserID string) (*RequestResponse, error) {
	s.logger.Info("Completing support request", "request_id", id, "volunteer_user_id", volunteerUserID)

	profile, err := s.volunteerProfile(ctx, volunteerUserID)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.VolunteerID == nil || *request.VolunteerID != profile.ID {
		return nil, NewPermissionError(volunteerUserID, id, "request", "complete", "not the assigned volunteer")
	}

	ok, err := s.repo.Request().UpdateStatusIf(ctx, s.db, id,
		[]models.RequestStatus{models.RequestAccepted}, models.RequestCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to complete request: %w", err)
	}
	if !ok {
		return nil, ErrInvalidStateTransition
	}

	updated, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}

	s.logger.Info("Support request completed", "request_id", id, "volunteer_id", profile.ID)
	s.notifier.NotifyRequestCompleted(ctx, updated, s.studentEmail(ctx, updated))

	return s.buildResponse(updated, volunteerUserID, models.RoleVolunteer, profile.ID), nil
}

// GetByID returns one request. Students see only their own, volunteers
// see assigned or unassigned-pending ones, admins see everything.
func (s *requestService) GetByID(ctx context.Context, id uint, userID string, role models.UserRole) (*RequestResponse, error) {
	request, err := s.repo.Request().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	var callerProfileID uint
	switch role {
	case models.RoleAdmin:
		// Full visibility
	case models.RoleStudent:
		profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrProfileRequired
			}
			return nil, fmt.Errorf("failed to get student profile: %w", err)
		}
		callerProfileID = profile.ID
		if request.StudentID != profile.ID {
			return nil, NewPermissionError(userID, id, "request", "read", "not the owning student")
		}
	case models.RoleVolunteer:
		profile, err := s.volunteerProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		callerProfileID = profile.ID
		assigned := request.VolunteerID != nil && *request.VolunteerID == profile.ID
		open := request.VolunteerID == nil && request.Status == models.RequestPending
		if !assigned && !open {
			return nil, NewPermissionError(userID, id, "request", "read", "not assigned and not open")
		}
	default:
		return nil, NewPermissionError(userID, id, "request", "read", "unknown role")
	}

	return s.buildResponse(request, userID, role, callerProfileID), nil
}

// List returns requests scoped to the caller's role.
func (s *requestService) List(ctx context.Context, userID string, role models.UserRole, filters repositories.RequestFilters) (*RequestListResponse, error) {
	var callerProfileID uint

	switch role {
	case models.RoleAdmin:
		// Admins see everything
	case models.RoleStudent:
		profile, err := s.repo.StudentProfile().GetByUserID(ctx, s.db, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrProfileRequired
			}
			return nil, fmt.Errorf("failed to get student profile: %w", err)
		}
		callerProfileID = profile.ID
		filters.StudentID = &profile.ID
	case models.RoleVolunteer:
		profile, err := s.volunteerProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		callerProfileID = profile.ID
		filters.VolunteerID = &profile.ID
	default:
		return nil, NewPermissionError(userID, 0, "request", "list", "unknown role")
	}

	requests, total, err := s.repo.Request().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]*RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, s.buildResponse(r, userID, role, callerProfileID))
	}

	return &RequestListResponse{
		Requests: responses,
		Total:    total,
	}, nil
}

// ===== HELPERS =====

func (s *requestService) volunteerProfile(ctx context.Context, userID string) (*models.VolunteerProfile, error) {
	profile, err := s.repo.VolunteerProfile().GetByUserID(ctx, s.db, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to get volunteer profile: %w", err)
	}
	return profile, nil
}

// studentEmail resolves the owning student's email for notifications.
// Returns empty on any failure; the notifier treats that as "skip email".
func (s *requestService) studentEmail(ctx context.Context, request *models.SupportRequest) string {
	profile, err := s.repo.StudentProfile().GetByID(ctx, s.db, request.StudentID)
	if err != nil {
		s.logger.Warn("Failed to resolve student profile for notification",
			"request_id", request.ID, "error", err)
		return ""
	}

	user, err := s.repo.User().GetByID(ctx, profile.UserID)
	if err != nil {
		s.logger.Warn("Failed to resolve student user for notification",
			"request_id", request.ID, "error", err)
		return ""
	}
	return user.Email
}

func (s *requestService) buildResponse(request *models.SupportRequest, userID string, role models.UserRole, callerProfileID uint) *RequestResponse {
	resp := &RequestResponse{SupportRequest: request}

	switch role {
	case models.RoleStudent:
		resp.CanCancel = request.StudentID == callerProfileID && !request.Status.IsTerminal()
	case models.RoleVolunteer:
		resp.CanRespond = request.Status == models.RequestPending && request.VolunteerID == nil
		resp.CanComplete = request.Status == models.RequestAccepted &&
			request.VolunteerID != nil && *request.VolunteerID == callerProfileID
	}

	return resp
}
