// Package validation checks course content before it reaches persistence.
package validation

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/identity"
	"github.com/opencampus/coursehub/internal/pkg/logger"
)

// Literal substrings rejected in course descriptions. This is a denylist
// heuristic against stored markup injection, not a general HTML sanitizer:
// it blocks exactly these two patterns.
var markupDenylist = []string{"<script>", "<img"}

// SecurityObserver receives signals about rejected input for downstream
// intrusion-detection consumers. Implementations must tolerate being called
// from any goroutine.
type SecurityObserver interface {
	MarkupInjectionDetected(login string)
}

// LogObserver reports markup-injection attempts through the application log
// stream. It is the default observer.
type LogObserver struct{}

// MarkupInjectionDetected logs the signal with the offending caller's login.
func (LogObserver) MarkupInjectionDetected(login string) {
	logger.Warn().
		Str("login", login).
		Str("detectionPoint", "INPUT_VALIDATION/IE1").
		Msg("Markup injection attempt rejected")
}

// CourseValidator validates courses before create and update.
type CourseValidator struct {
	validate *validator.Validate
	observer SecurityObserver
}

// NewCourseValidator creates a validator with the given observer. A nil
// observer disables signalling.
func NewCourseValidator(observer SecurityObserver) *CourseValidator {
	return &CourseValidator{
		validate: validator.New(),
		observer: observer,
	}
}

// Validate runs structural validation followed by the content-safety check.
// A denylist hit fails with reason code "xss.attempt" on the description
// field and signals the observer with the caller's resolved login. The
// signal is fire-and-forget: it runs on its own goroutine and a panicking
// or failing observer never changes the validation outcome.
func (v *CourseValidator) Validate(ctx context.Context, course *models.Course) error {
	if err := v.validate.Struct(course); err != nil {
		return &apperrors.CustomError{
			Err:     apperrors.ErrValidationFailed,
			Message: err.Error(),
		}
	}

	if course.Description != nil && containsDeniedMarkup(*course.Description) {
		v.signal(identity.CurrentLogin(ctx))
		return apperrors.NewValidationError(apperrors.CodeXSSAttempt, "You tried XSS - stop!").
			WithField("description")
	}

	return nil
}

func containsDeniedMarkup(s string) bool {
	for _, pattern := range markupDenylist {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}

func (v *CourseValidator) signal(login string) {
	if v.observer == nil {
		return
	}
	observer := v.observer
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Msg("Security observer panicked")
			}
		}()
		observer.MarkupInjectionDetected(login)
	}()
}
