package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

func validRequestBody() *RequestCreateRequest {
	return &RequestCreateRequest{
		ExamDetails: ExamDetailsRequest{
			Subject:  "Mathematics",
			Date:     time.Now().Add(72 * time.Hour),
			Time:     "09:30",
			Duration: "2 hours",
			Type:     models.ExamWritten,
			Venue:    "Main Hall",
		},
	}
}

func TestValidator_RequestCreate(t *testing.T) {
	v := New()

	t.Run("valid body passes", func(t *testing.T) {
		if err := v.Validate(validRequestBody()); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	})

	t.Run("past exam date fails", func(t *testing.T) {
		body := validRequestBody()
		body.ExamDetails.Date = time.Now().Add(-time.Hour)

		err := v.Validate(body)
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("Expected ValidationErrors, got %v", err)
		}
	})

	t.Run("unknown exam type fails", func(t *testing.T) {
		body := validRequestBody()
		body.ExamDetails.Type = "interpretive_dance"

		if err := v.Validate(body); err == nil {
			t.Fatal("Expected error for unknown exam type")
		}
	})

	t.Run("missing subject fails", func(t *testing.T) {
		body := validRequestBody()
		body.ExamDetails.Subject = ""

		if err := v.Validate(body); err == nil {
			t.Fatal("Expected error for missing subject")
		}
	})
}

func TestValidator_RespondRequest(t *testing.T) {
	v := New()

	cases := []struct {
		name   string
		status models.RequestStatus
		ok     bool
	}{
		{"accepted is allowed", models.RequestAccepted, true},
		{"rejected is allowed", models.RequestRejected, true},
		{"pending is not a response", models.RequestPending, false},
		{"completed is not a response", models.RequestCompleted, false},
		{"cancelled is not a response", models.RequestCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(&RespondRequest{Status: tc.status})
			if tc.ok && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Errorf("Expected error for status %s", tc.status)
			}
		})
	}
}

func TestValidator_VolunteerProfile(t *testing.T) {
	v := New()

	valid := &VolunteerProfileCreateRequest{
		Education: EducationRequest{
			Degree:      "B.Ed.",
			Institution: "Fergusson College",
			Year:        2015,
		},
		Subjects:  []string{"English"},
		Languages: []string{"English"},
		Location: LocationRequest{
			City:    "Mumbai",
			State:   "Maharashtra",
			Pincode: "400001",
		},
	}

	if err := v.Validate(valid); err != nil {
		t.Fatalf("Expected valid profile, got %v", err)
	}

	t.Run("empty subjects fail", func(t *testing.T) {
		body := *valid
		body.Subjects = []string{}
		if err := v.Validate(&body); err == nil {
			t.Fatal("Expected error for empty subjects")
		}
	})

	t.Run("blank language fails", func(t *testing.T) {
		body := *valid
		body.Languages = []string{""}
		if err := v.Validate(&body); err == nil {
			t.Fatal("Expected error for blank language entry")
		}
	})
}

func TestValidator_StudentProfile(t *testing.T) {
	v := New()

	valid := &StudentProfileCreateRequest{
		DisabilityType:    models.DisabilityHearing,
		DisabilityDetails: "Profound hearing loss; needs a sign language interpreter",
		Location: LocationRequest{
			City:    "Delhi",
			State:   "Delhi",
			Pincode: "110001",
		},
		EducationLevel: models.EducationPostgraduate,
		Institution:    "National University",
	}

	if err := v.Validate(valid); err != nil {
		t.Fatalf("Expected valid profile, got %v", err)
	}

	t.Run("unknown education level fails", func(t *testing.T) {
		body := *valid
		body.EducationLevel = "kindergarten"
		if err := v.Validate(&body); err == nil {
			t.Fatal("Expected error for unknown education level")
		}
	})
}
