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

// ReservedAdminLogin is the distinguished account that sees every
// enrollment. Note this keys on the login string, not the ADMIN role; the
// distinction is deliberate and preserved from the product's access rules
// (see DESIGN.md).
const ReservedAdminLogin = "admin"

// EnrollmentService defines the interface for enrollment-related operations
type EnrollmentService interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error)
	List(ctx context.Context) ([]*models.Enrollment, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, queryText string) ([]*models.Enrollment, error)
}

// enrollmentStore is the persistence boundary the service depends on.
type enrollmentStore interface {
	Save(ctx context.Context, enrollment *models.Enrollment) error
	GetByIDWithRelations(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAllWithRelations(ctx context.Context) ([]*models.Enrollment, error)
	GetOwnedBy(ctx context.Context, login string) ([]*models.Enrollment, error)
	Search(ctx context.Context, queryText string) ([]*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

// enrollmentIndex is the search index boundary for enrollments.
type enrollmentIndex interface {
	IndexEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	DeleteEnrollment(ctx context.Context, id int64) error
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	store enrollmentStore
	index enrollmentIndex
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(store enrollmentStore, index enrollmentIndex) EnrollmentService {
	return &enrollmentServiceImpl{
		store: store,
		index: index,
	}
}

// Create persists a new enrollment. The request must not carry an
// identifier; the store assigns one.
func (s *enrollmentServiceImpl) Create(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpCreate); err != nil {
		return nil, err
	}

	if enrollment.ID != 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDExists, "A new enrollment cannot already have an ID")
	}

	if err := s.store.Save(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	s.upsertIndex(ctx, enrollment)
	return enrollment, nil
}

// Update persists changes to an existing enrollment.
func (s *enrollmentServiceImpl) Update(ctx context.Context, enrollment *models.Enrollment) (*models.Enrollment, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpUpdate); err != nil {
		return nil, err
	}

	if enrollment.ID == 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDNull, "Invalid id")
	}

	if err := s.store.Save(ctx, enrollment); err != nil {
		return nil, err
	}

	s.upsertIndex(ctx, enrollment)
	return enrollment, nil
}

// List returns every enrollment for the reserved admin account, and only
// the caller's own rows for anyone else.
func (s *enrollmentServiceImpl) List(ctx context.Context) ([]*models.Enrollment, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpList); err != nil {
		return nil, err
	}

	if ident.Login == ReservedAdminLogin {
		return s.store.GetAllWithRelations(ctx)
	}
	return s.store.GetOwnedBy(ctx, ident.Login)
}

// GetByID returns one enrollment with relations loaded. A row that exists
// but belongs to someone else is a forbidden outcome, not a missing one:
// the caller learns the id is taken but sees nothing of the row.
func (s *enrollmentServiceImpl) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpGet); err != nil {
		return nil, err
	}

	enrollment, err := s.store.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	if ident.Login != ReservedAdminLogin &&
		enrollment.User != nil &&
		enrollment.User.Login != ident.Login {
		return nil, apperrors.NewForbiddenError("enrollment belongs to another user")
	}

	return enrollment, nil
}

// Delete removes the enrollment from the store, then from the search index.
// An index failure leaves the index stale; it is logged and not rolled back.
func (s *enrollmentServiceImpl) Delete(ctx context.Context, id int64) error {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpDelete); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.index.DeleteEnrollment(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", id).Msg("Search index delete failed, index is stale")
	}
	return nil
}

// Search runs a substring match on enrollment comments. The query text is
// bound as a parameter by the store. Store failures degrade to an empty
// result.
func (s *enrollmentServiceImpl) Search(ctx context.Context, queryText string) ([]*models.Enrollment, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityEnrollment, auth.OpSearch); err != nil {
		return nil, err
	}

	enrollments, err := s.store.Search(ctx, queryText)
	if err != nil {
		logger.Error().Err(err).Str("query", queryText).Msg("Enrollment search failed, returning empty result")
		return []*models.Enrollment{}, nil
	}
	return enrollments, nil
}

func (s *enrollmentServiceImpl) upsertIndex(ctx context.Context, enrollment *models.Enrollment) {
	if err := s.index.IndexEnrollment(ctx, enrollment); err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Search index upsert failed, index is stale")
	}
}
