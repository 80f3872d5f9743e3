package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestCourseCreate(t *testing.T) {
	t.Run("validates before saving and indexing", func(t *testing.T) {
		store := &fakeCourseStore{}
		index := &fakeCourseIndex{}
		validator := &fakeCourseValidator{}
		svc := NewCourseService(store, index, validator)

		created, err := svc.Create(ctxAs("admin", models.RoleAdmin), &models.Course{ProgramID: 1, Title: "Algebra"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, 1, validator.calls)
		assert.Equal(t, 1, store.saveCalls)
		assert.Equal(t, 1, index.indexCalls)
	})

	t.Run("a validation failure blocks the store entirely", func(t *testing.T) {
		store := &fakeCourseStore{}
		index := &fakeCourseIndex{}
		validator := &fakeCourseValidator{
			validateFn: func(ctx context.Context, course *models.Course) error {
				return apperrors.NewValidationError(apperrors.CodeXSSAttempt, "You tried XSS - stop!").
					WithField("description")
			},
		}
		svc := NewCourseService(store, index, validator)

		_, err := svc.Create(ctxAs("admin", models.RoleAdmin), &models.Course{
			ProgramID:   1,
			Title:       "Algebra",
			Description: strPtr("<script>alert(1)</script>"),
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeXSSAttempt, apperrors.ReasonCode(err))
		assert.Zero(t, store.saveCalls)
		assert.Zero(t, index.indexCalls)
	})

	t.Run("rejects a preset id before validation", func(t *testing.T) {
		validator := &fakeCourseValidator{}
		svc := NewCourseService(&fakeCourseStore{}, &fakeCourseIndex{}, validator)

		_, err := svc.Create(ctxAs("admin", models.RoleAdmin), &models.Course{ID: 9, ProgramID: 1, Title: "Algebra"})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeIDExists, apperrors.ReasonCode(err))
		assert.Zero(t, validator.calls)
	})

	t.Run("requires the admin role", func(t *testing.T) {
		store := &fakeCourseStore{}
		svc := NewCourseService(store, &fakeCourseIndex{}, &fakeCourseValidator{})

		_, err := svc.Create(ctxAs("alice", models.RoleUser), &models.Course{ProgramID: 1, Title: "Algebra"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.Zero(t, store.saveCalls)
	})
}

func TestCourseUpdate(t *testing.T) {
	t.Run("rejects a missing id", func(t *testing.T) {
		svc := NewCourseService(&fakeCourseStore{}, &fakeCourseIndex{}, &fakeCourseValidator{})

		_, err := svc.Update(ctxAs("admin", models.RoleAdmin), &models.Course{ProgramID: 1, Title: "Algebra"})
		require.Error(t, err)
		assert.Equal(t, apperrors.CodeIDNull, apperrors.ReasonCode(err))
	})

	t.Run("revalidates content on update", func(t *testing.T) {
		store := &fakeCourseStore{}
		validator := &fakeCourseValidator{
			validateFn: func(ctx context.Context, course *models.Course) error {
				return apperrors.NewValidationError(apperrors.CodeXSSAttempt, "You tried XSS - stop!")
			},
		}
		svc := NewCourseService(store, &fakeCourseIndex{}, validator)

		_, err := svc.Update(ctxAs("admin", models.RoleAdmin), &models.Course{ID: 2, ProgramID: 1, Title: "Algebra"})
		require.Error(t, err)
		assert.Zero(t, store.saveCalls)
	})
}

func TestCourseReads(t *testing.T) {
	t.Run("list is admin-only", func(t *testing.T) {
		svc := NewCourseService(&fakeCourseStore{}, &fakeCourseIndex{}, &fakeCourseValidator{})

		_, err := svc.List(ctxAs("alice", models.RoleUser))
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		_, err = svc.List(ctxAs("root", models.RoleAdmin))
		assert.NoError(t, err)
	})

	t.Run("get is admin-only", func(t *testing.T) {
		svc := NewCourseService(&fakeCourseStore{}, &fakeCourseIndex{}, &fakeCourseValidator{})

		_, err := svc.GetByID(ctxAs("alice", models.RoleUser), 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		course, err := svc.GetByID(ctxAs("root", models.RoleAdmin), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), course.ID)
	})
}

func TestCourseDelete(t *testing.T) {
	t.Run("succeeds even when the index delete fails", func(t *testing.T) {
		store := &fakeCourseStore{}
		index := &fakeCourseIndex{
			deleteFn: func(ctx context.Context, id int64) error {
				return errStore
			},
		}
		svc := NewCourseService(store, index, &fakeCourseValidator{})

		assert.NoError(t, svc.Delete(ctxAs("admin", models.RoleAdmin), 2))
		assert.Equal(t, 1, store.deleteCalls)
	})
}

func TestCourseSearch(t *testing.T) {
	t.Run("any authenticated caller may search", func(t *testing.T) {
		store := &fakeCourseStore{
			searchFn: func(ctx context.Context, queryText string) ([]*models.Course, error) {
				return []*models.Course{{ID: 1, Title: "Algebra"}}, nil
			},
		}
		svc := NewCourseService(store, &fakeCourseIndex{}, &fakeCourseValidator{})

		courses, err := svc.Search(ctxAs("alice", models.RoleUser), "alge")
		require.NoError(t, err)
		assert.Len(t, courses, 1)
	})

	t.Run("degrades a store failure to an empty result", func(t *testing.T) {
		store := &fakeCourseStore{
			searchFn: func(ctx context.Context, queryText string) ([]*models.Course, error) {
				return nil, errStore
			},
		}
		svc := NewCourseService(store, &fakeCourseIndex{}, &fakeCourseValidator{})

		courses, err := svc.Search(ctxAs("alice", models.RoleUser), "alge")
		require.NoError(t, err)
		require.NotNil(t, courses)
		assert.Empty(t, courses)
	})
}
