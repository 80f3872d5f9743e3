package services

import (
	"context"
	"fmt"

	"github.com/opencampus/coursehub/internal/app/auth"
	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
	"github.com/opencampus/coursehub/internal/pkg/identity"
	"github.com/opencampus/coursehub/internal/pkg/logger"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, queryText string) ([]*models.Course, error)
}

// courseStore is the persistence boundary the service depends on.
type courseStore interface {
	Save(ctx context.Context, course *models.Course) error
	GetByIDWithProgram(ctx context.Context, id int64) (*models.Course, error)
	GetAllWithProgram(ctx context.Context) ([]*models.Course, error)
	Search(ctx context.Context, queryText string) ([]*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// courseIndex is the search index boundary for courses.
type courseIndex interface {
	IndexCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

// courseValidator checks content safety before persistence.
type courseValidator interface {
	Validate(ctx context.Context, course *models.Course) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store     courseStore
	index     courseIndex
	validator courseValidator
}

// NewCourseService creates a new course service instance
func NewCourseService(store courseStore, index courseIndex, validator courseValidator) CourseService {
	return &courseServiceImpl{
		store:     store,
		index:     index,
		validator: validator,
	}
}

// Create validates and persists a new course. The request must not carry an
// identifier, and the description must pass the content-safety check before
// anything reaches the store.
func (s *courseServiceImpl) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpCreate); err != nil {
		return nil, err
	}

	if course.ID != 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDExists, "A new course cannot already have an ID")
	}

	if err := s.validator.Validate(ctx, course); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	s.upsertIndex(ctx, course)
	return course, nil
}

// Update validates and persists changes to an existing course.
func (s *courseServiceImpl) Update(ctx context.Context, course *models.Course) (*models.Course, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpUpdate); err != nil {
		return nil, err
	}

	if course.ID == 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDNull, "Invalid id")
	}

	if err := s.validator.Validate(ctx, course); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, course); err != nil {
		return nil, err
	}

	s.upsertIndex(ctx, course)
	return course, nil
}

// List returns all courses with their programs loaded.
func (s *courseServiceImpl) List(ctx context.Context) ([]*models.Course, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpList); err != nil {
		return nil, err
	}

	courses, err := s.store.GetAllWithProgram(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetByID returns one course with its program loaded.
func (s *courseServiceImpl) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpGet); err != nil {
		return nil, err
	}

	return s.store.GetByIDWithProgram(ctx, id)
}

// Delete removes the course from the store, then from the search index.
// An index failure leaves the index stale; it is logged and not rolled back.
func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpDelete); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.index.DeleteCourse(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("courseID", id).Msg("Search index delete failed, index is stale")
	}
	return nil
}

// Search runs a substring match on course descriptions. The query text is
// bound as a parameter by the store. Store failures degrade to an empty
// result.
func (s *courseServiceImpl) Search(ctx context.Context, queryText string) ([]*models.Course, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityCourse, auth.OpSearch); err != nil {
		return nil, err
	}

	courses, err := s.store.Search(ctx, queryText)
	if err != nil {
		logger.Error().Err(err).Str("query", queryText).Msg("Course search failed, returning empty result")
		return []*models.Course{}, nil
	}
	return courses, nil
}

func (s *courseServiceImpl) upsertIndex(ctx context.Context, course *models.Course) {
	if err := s.index.IndexCourse(ctx, course); err != nil {
		logger.Warn().Err(err).Int64("courseID", course.ID).Msg("Search index upsert failed, index is stale")
	}
}
