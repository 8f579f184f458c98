package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator"

	"github.com/azaliaz/feedbackhub/internal/domain/models"
)

var (
	ErrMissingField    = errors.New("all fields are required")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrFeedbackTooLong = errors.New("feedback must be less than 1000 characters")
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// New builds a validator with the feedback_email rule registered.
func New() *validator.Validate {
	valid := validator.New()
	_ = valid.RegisterValidation("feedback_email", func(fl validator.FieldLevel) bool {
		return emailRegexp.MatchString(fl.Field().String())
	})
	return valid
}

// Check trims the payload fields and validates them. It returns the trimmed
// payload, or the first violation in field order.
func Check(valid *validator.Validate, payload models.FeedbackPayload) (models.FeedbackPayload, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	payload.Feedback = strings.TrimSpace(payload.Feedback)

	err := valid.Struct(payload)
	if err == nil {
		return payload, nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) || len(valErrs) == 0 {
		return models.FeedbackPayload{}, err
	}
	switch valErrs[0].Tag() {
	case "required":
		return models.FeedbackPayload{}, ErrMissingField
	case "feedback_email":
		return models.FeedbackPayload{}, ErrInvalidEmail
	case "max":
		return models.FeedbackPayload{}, ErrFeedbackTooLong
	}
	return models.FeedbackPayload{}, err
}
