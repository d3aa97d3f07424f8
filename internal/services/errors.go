package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes with errors.Is.
var (
	// Not found
	ErrRequestNotFound   = errors.New("support request not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrUserNotFound      = errors.New("user not found")

	// Profile guards
	ErrProfileRequired = errors.New("profile required before this action")
	ErrProfileExists   = errors.New("profile already exists for this user")

	// Lifecycle guards
	ErrAlreadyResolved        = errors.New("request has already been responded to")
	ErrInvalidStatus          = errors.New("status must be accepted or rejected")
	ErrInvalidStateTransition = errors.New("request state does not allow this transition")
)

// PermissionError carries the details of an ownership or role failure.
type PermissionError struct {
	UserID   string
	Resource string
	ID       uint
	Action   string
	Reason   string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d: %s",
		e.UserID, e.Action, e.Resource, e.ID, e.Reason)
}

func NewPermissionError(userID string, id uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		ID:       id,
		Action:   action,
		Reason:   reason,
	}
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
