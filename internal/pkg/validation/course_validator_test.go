package validation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/identity"
)

func strPtr(s string) *string { return &s }

// recordingObserver captures signals on a channel so tests can wait for the
// fire-and-forget goroutine.
type recordingObserver struct {
	logins chan string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{logins: make(chan string, 1)}
}

func (o *recordingObserver) MarkupInjectionDetected(login string) {
	o.logins <- login
}

func (o *recordingObserver) waitForSignal(t *testing.T) string {
	t.Helper()
	select {
	case login := <-o.logins:
		return login
	case <-time.After(2 * time.Second):
		t.Fatal("expected a security signal, got none")
		return ""
	}
}

// panickingObserver misbehaves to prove observer isolation.
type panickingObserver struct{}

func (panickingObserver) MarkupInjectionDetected(string) {
	panic("observer blew up")
}

func TestValidateAcceptsCleanContent(t *testing.T) {
	v := NewCourseValidator(nil)

	err := v.Validate(context.Background(), &models.Course{
		ProgramID:   1,
		Title:       "Linear Algebra",
		Description: strPtr("Vectors, matrices and <b>bold claims</b>"),
	})
	assert.NoError(t, err)
}

func TestValidateRequiresTitle(t *testing.T) {
	v := NewCourseValidator(nil)

	err := v.Validate(context.Background(), &models.Course{ProgramID: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestValidateRejectsDeniedMarkup(t *testing.T) {
	tests := []struct {
		name        string
		description string
		rejected    bool
	}{
		{"script tag", "intro <script>alert(1)</script> text", true},
		{"img tag prefix", `<img src=x onerror=alert(1)>`, true},
		{"uppercase script passes the literal match", "<SCRIPT>alert(1)</SCRIPT>", false},
		{"mention of the word script", "we will script our demos", false},
		{"other markup", "see the <b>syllabus</b>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewCourseValidator(nil)
			err := v.Validate(context.Background(), &models.Course{
				ProgramID:   1,
				Title:       "Security 101",
				Description: strPtr(tt.description),
			})
			if !tt.rejected {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, apperrors.CodeXSSAttempt, apperrors.ReasonCode(err))

			var ce *apperrors.CustomError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "description", ce.Field)
			assert.Equal(t, "You tried XSS - stop!", ce.Message)
		})
	}
}

func TestValidateSignalsObserverWithCallerLogin(t *testing.T) {
	observer := newRecordingObserver()
	v := NewCourseValidator(observer)

	ctx := identity.NewContext(context.Background(), identity.Identity{
		Login: "mallory",
		Roles: []models.RoleType{models.RoleUser},
	})

	err := v.Validate(ctx, &models.Course{
		ProgramID:   1,
		Title:       "Security 101",
		Description: strPtr("<script>document.cookie</script>"),
	})
	require.Error(t, err)

	assert.Equal(t, "mallory", observer.waitForSignal(t))
}

func TestValidateSignalsEmptyLoginWhenUnauthenticated(t *testing.T) {
	observer := newRecordingObserver()
	v := NewCourseValidator(observer)

	err := v.Validate(context.Background(), &models.Course{
		ProgramID:   1,
		Title:       "Security 101",
		Description: strPtr("<img src=x>"),
	})
	require.Error(t, err)

	assert.Equal(t, "", observer.waitForSignal(t))
}

func TestValidateObserverFailureDoesNotChangeOutcome(t *testing.T) {
	v := NewCourseValidator(panickingObserver{})

	err := v.Validate(context.Background(), &models.Course{
		ProgramID:   1,
		Title:       "Security 101",
		Description: strPtr("<script>alert(1)</script>"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeXSSAttempt, apperrors.ReasonCode(err))

	// The validator keeps working after an observer panic.
	err = v.Validate(context.Background(), &models.Course{
		ProgramID:   1,
		Title:       "Security 101",
		Description: strPtr("clean description"),
	})
	assert.NoError(t, err)
}
