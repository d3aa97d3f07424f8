package models

import (
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transition may leave s.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestRejected, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

type ExamType string

const (
	ExamWritten   ExamType = "written"
	ExamPractical ExamType = "practical"
	ExamOral      ExamType = "oral"
	ExamOnline    ExamType = "online"
	ExamOther     ExamType = "other"
)

// ExamDetails describes the exam a student needs support for. All fields
// required at creation time.
type ExamDetails struct {
	Subject  string    `json:"subject" gorm:"not null;size:200" validate:"required,max=200"`
	Date     time.Time `json:"date" gorm:"not null" validate:"required"`
	Time     string    `json:"time" gorm:"not null;size:50" validate:"required,max=50"`
	Duration string    `json:"duration" gorm:"not null;size:50" validate:"required,max=50"`
	Type     ExamType  `json:"type" gorm:"not null;size:20" validate:"required,exam_type"`
	Venue    string    `json:"venue" gorm:"not null;size:200" validate:"required,max=200"`
}

// SupportRequest is an exam-support ticket filed by a student and tracked
// through the pending/accepted/rejected/completed/cancelled lifecycle.
//
// StudentID never changes after creation. VolunteerID is set exactly when the
// request is accepted and stays set through completion; it is NULL in every
// other state. Requests are never deleted.
type SupportRequest struct {
	ID uint `json:"id" gorm:"primaryKey"`

	StudentID   uint  `json:"student_id" gorm:"not null;index"`
	VolunteerID *uint `json:"volunteer_id" gorm:"index"`

	ExamDetails ExamDetails `json:"exam_details" gorm:"embedded;embeddedPrefix:exam_"`

	RequiredQualification *string `json:"required_qualification" gorm:"type:text" validate:"omitempty,max=1000"`
	SpecialRequirements   *string `json:"special_requirements" gorm:"type:text" validate:"omitempty,max=1000"`

	Status RequestStatus `json:"status" gorm:"not null;default:pending;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Student   *StudentProfile   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Volunteer *VolunteerProfile `json:"volunteer,omitempty" gorm:"foreignKey:VolunteerID"`
}

func (SupportRequest) TableName() string {
	return "support_requests"
}
