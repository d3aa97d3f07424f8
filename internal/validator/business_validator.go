package validator

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
)

// Validator wraps go-playground struct validation together with the domain
// rules used across request bodies.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all domain rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

// Validate validates any struct; returns ValidationErrors or nil.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerDomainRules() {
	// Exam type enum
	v.validate.RegisterValidation("exam_type", func(fl validator.FieldLevel) bool {
		t := models.ExamType(fl.Field().String())
		switch t {
		case models.ExamWritten, models.ExamPractical, models.ExamOral, models.ExamOnline, models.ExamOther:
			return true
		}
		return false
	})

	// Disability type enum
	v.validate.RegisterValidation("disability_type", func(fl validator.FieldLevel) bool {
		t := models.DisabilityType(fl.Field().String())
		switch t {
		case models.DisabilityVisual, models.DisabilityHearing, models.DisabilityMobility,
			models.DisabilityLearning, models.DisabilityOther:
			return true
		}
		return false
	})

	// Education level enum
	v.validate.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		l := models.EducationLevel(fl.Field().String())
		switch l {
		case models.EducationHighSchool, models.EducationUndergraduate,
			models.EducationPostgraduate, models.EducationDoctorate, models.EducationOther:
			return true
		}
		return false
	})

	// Volunteer response status: only accepted/rejected may be submitted
	v.validate.RegisterValidation("response_status", func(fl validator.FieldLevel) bool {
		s := models.RequestStatus(fl.Field().String())
		return s == models.RequestAccepted || s == models.RequestRejected
	})

	// Exam date must be in the future at creation time
	v.validate.RegisterValidation("future_date", func(fl validator.FieldLevel) bool {
		field := fl.Field()

		if field.Kind() == reflect.Ptr && field.IsNil() {
			return true // Optional field
		}

		var date time.Time
		if field.Kind() == reflect.Ptr {
			date = field.Elem().Interface().(time.Time)
		} else {
			date = field.Interface().(time.Time)
		}

		return date.After(time.Now())
	})
}
