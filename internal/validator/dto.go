package validator

import (
	"time"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

// ExamDetailsRequest carries the exam block of a request creation body.
type ExamDetailsRequest struct {
	Subject  string          `json:"subject" validate:"required,max=200"`
	Date     time.Time       `json:"date" validate:"required,future_date"`
	Time     string          `json:"time" validate:"required,max=50"`
	Duration string          `json:"duration" validate:"required,max=50"`
	Type     models.ExamType `json:"type" validate:"required,exam_type"`
	Venue    string          `json:"venue" validate:"required,max=200"`
}

// RequestCreateRequest is the body of POST /students/requests.
type RequestCreateRequest struct {
	ExamDetails           ExamDetailsRequest `json:"examDetails" validate:"required"`
	RequiredQualification *string            `json:"requiredQualification" validate:"omitempty,max=1000"`
	SpecialRequirements   *string            `json:"specialRequirements" validate:"omitempty,max=1000"`
}

// RespondRequest is the body of PUT /volunteers/requests/:id/respond.
type RespondRequest struct {
	Status models.RequestStatus `json:"status" validate:"required,response_status"`
}

// StudentProfileCreateRequest creates the one-to-one student profile.
type StudentProfileCreateRequest struct {
	DisabilityType    models.DisabilityType `json:"disabilityType" validate:"required,disability_type"`
	DisabilityDetails string                `json:"disabilityDetails" validate:"required,max=2000"`
	Location          LocationRequest       `json:"location" validate:"required"`
	EducationLevel    models.EducationLevel `json:"educationLevel" validate:"required,education_level"`
	Institution       string                `json:"institution" validate:"required,max=200"`
	RollNumber        *string               `json:"rollNumber" validate:"omitempty,max=50"`
}

// StudentProfileUpdateRequest updates mutable profile fields; all optional.
type StudentProfileUpdateRequest struct {
	DisabilityType    *models.DisabilityType `json:"disabilityType" validate:"omitempty,disability_type"`
	DisabilityDetails *string                `json:"disabilityDetails" validate:"omitempty,max=2000"`
	Location          *LocationRequest       `json:"location"`
	EducationLevel    *models.EducationLevel `json:"educationLevel" validate:"omitempty,education_level"`
	Institution       *string                `json:"institution" validate:"omitempty,max=200"`
	RollNumber        *string                `json:"rollNumber" validate:"omitempty,max=50"`
}

type LocationRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Pincode string `json:"pincode" validate:"required,max=20"`
}

type EducationRequest struct {
	Degree      string `json:"degree" validate:"required,max=100"`
	Institution string `json:"institution" validate:"required,max=200"`
	Year        int    `json:"year" validate:"required,min=1950,max=2100"`
}

// VolunteerProfileCreateRequest creates the one-to-one volunteer profile.
// Subjects and languages must be non-empty.
type VolunteerProfileCreateRequest struct {
	Education    EducationRequest          `json:"education" validate:"required"`
	Subjects     []string                  `json:"subjects" validate:"required,min=1,dive,required,max=100"`
	Languages    []string                  `json:"languages" validate:"required,min=1,dive,required,max=50"`
	Location     LocationRequest           `json:"location" validate:"required"`
	Availability []models.AvailabilitySlot `json:"availability"`
	Experience   *string                   `json:"experience" validate:"omitempty,max=2000"`
}

type VolunteerProfileUpdateRequest struct {
	Education    *EducationRequest         `json:"education"`
	Subjects     []string                  `json:"subjects" validate:"omitempty,min=1,dive,required,max=100"`
	Languages    []string                  `json:"languages" validate:"omitempty,min=1,dive,required,max=50"`
	Location     *LocationRequest          `json:"location"`
	Availability []models.AvailabilitySlot `json:"availability"`
	Experience   *string                   `json:"experience" validate:"omitempty,max=2000"`
}
