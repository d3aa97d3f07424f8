package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DisabilityType string

const (
	DisabilityVisual   DisabilityType = "visual"
	DisabilityHearing  DisabilityType = "hearing"
	DisabilityMobility DisabilityType = "mobility"
	DisabilityLearning DisabilityType = "learning"
	DisabilityOther    DisabilityType = "other"
)

type EducationLevel string

const (
	EducationHighSchool    EducationLevel = "high_school"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationPostgraduate  EducationLevel = "postgraduate"
	EducationDoctorate     EducationLevel = "doctorate"
	EducationOther         EducationLevel = "other"
)

// Location is the city/state/pincode triple shared by both profile kinds.
type Location struct {
	City    string `json:"city" gorm:"not null;size:100" validate:"required,max=100"`
	State   string `json:"state" gorm:"not null;size:100" validate:"required,max=100"`
	Pincode string `json:"pincode" gorm:"not null;size:20" validate:"required,max=20"`
}

// StudentProfile extends a student User, one-to-one. A user gets at most one.
type StudentProfile struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`

	DisabilityType    DisabilityType `json:"disability_type" gorm:"not null;size:20" validate:"required,disability_type"`
	DisabilityDetails string         `json:"disability_details" gorm:"type:text;not null" validate:"required,max=2000"`
	Location          Location       `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	EducationLevel    EducationLevel `json:"education_level" gorm:"not null;size:20" validate:"required,education_level"`
	Institution       string         `json:"institution" gorm:"not null;size:200" validate:"required,max=200"`
	RollNumber        *string        `json:"roll_number" gorm:"size:50" validate:"omitempty,max=50"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Populated from Casdoor, never stored here.
	User *User `json:"user,omitempty" gorm:"-"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// AvailabilitySlot is a day/time window a volunteer offers.
type AvailabilitySlot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type Education struct {
	Degree      string `json:"degree" gorm:"not null;size:100" validate:"required,max=100"`
	Institution string `json:"institution" gorm:"not null;size:200" validate:"required,max=200"`
	Year        int    `json:"year" gorm:"not null" validate:"required,min=1950,max=2100"`
}

// VolunteerProfile extends a volunteer User, one-to-one.
type VolunteerProfile struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`

	Education    Education                            `json:"education" gorm:"embedded;embeddedPrefix:education_"`
	Subjects     datatypes.JSONSlice[string]          `json:"subjects" gorm:"not null" validate:"required,min=1,dive,required"`
	Languages    datatypes.JSONSlice[string]          `json:"languages" gorm:"not null" validate:"required,min=1,dive,required"`
	Location     Location                             `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	Availability datatypes.JSONSlice[AvailabilitySlot] `json:"availability"`
	Experience   *string                              `json:"experience" gorm:"type:text" validate:"omitempty,max=2000"`

	Rating         float64 `json:"rating" gorm:"default:0"`
	CompletedExams int     `json:"completed_exams" gorm:"default:0"`
	IsVerified     bool    `json:"is_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User *User `json:"user,omitempty" gorm:"-"`
}

func (VolunteerProfile) TableName() string {
	return "volunteer_profiles"
}
