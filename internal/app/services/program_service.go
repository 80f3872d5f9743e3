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

// ProgramService defines the interface for program-related operations
type ProgramService interface {
	Create(ctx context.Context, program *models.Program) (*models.Program, error)
	Update(ctx context.Context, program *models.Program) (*models.Program, error)
	List(ctx context.Context) ([]*models.Program, error)
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, queryText string) ([]*models.Program, error)
}

// programStore is the persistence boundary the service depends on.
type programStore interface {
	Save(ctx context.Context, program *models.Program) error
	GetByIDWithCourses(ctx context.Context, id int64) (*models.Program, error)
	GetAll(ctx context.Context) ([]*models.Program, error)
	Search(ctx context.Context, queryText string) ([]*models.Program, error)
	Delete(ctx context.Context, id int64) error
}

// programIndex is the search index boundary for programs.
type programIndex interface {
	IndexProgram(ctx context.Context, program *models.Program) error
	DeleteProgram(ctx context.Context, id int64) error
}

// programServiceImpl implements the ProgramService interface
type programServiceImpl struct {
	store programStore
	index programIndex
}

// NewProgramService creates a new program service instance
func NewProgramService(store programStore, index programIndex) ProgramService {
	return &programServiceImpl{
		store: store,
		index: index,
	}
}

// Create persists a new program. The request must not carry an identifier;
// the store assigns one.
func (s *programServiceImpl) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpCreate); err != nil {
		return nil, err
	}

	if program.ID != 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDExists, "A new program cannot already have an ID")
	}

	if err := s.store.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}

	s.upsertIndex(ctx, program)
	return program, nil
}

// Update persists changes to an existing program.
func (s *programServiceImpl) Update(ctx context.Context, program *models.Program) (*models.Program, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpUpdate); err != nil {
		return nil, err
	}

	if program.ID == 0 {
		return nil, apperrors.NewValidationError(apperrors.CodeIDNull, "Invalid id")
	}

	if err := s.store.Save(ctx, program); err != nil {
		return nil, err
	}

	s.upsertIndex(ctx, program)
	return program, nil
}

// List returns all programs.
func (s *programServiceImpl) List(ctx context.Context) ([]*models.Program, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpList); err != nil {
		return nil, err
	}

	programs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving programs: %w", err)
	}
	return programs, nil
}

// GetByID returns one program with its courses loaded.
func (s *programServiceImpl) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpGet); err != nil {
		return nil, err
	}

	return s.store.GetByIDWithCourses(ctx, id)
}

// Delete removes the program from the store, then from the search index.
// An index failure leaves the index stale; it is logged and not rolled back.
func (s *programServiceImpl) Delete(ctx context.Context, id int64) error {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpDelete); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.index.DeleteProgram(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("programID", id).Msg("Search index delete failed, index is stale")
	}
	return nil
}

// Search runs a substring match on program names. The query text is bound
// as a parameter by the store. Store failures degrade to an empty result.
func (s *programServiceImpl) Search(ctx context.Context, queryText string) ([]*models.Program, error) {
	ident, _ := identity.FromContext(ctx)
	if err := auth.Authorize(ident, auth.EntityProgram, auth.OpSearch); err != nil {
		return nil, err
	}

	programs, err := s.store.Search(ctx, queryText)
	if err != nil {
		logger.Error().Err(err).Str("query", queryText).Msg("Program search failed, returning empty result")
		return []*models.Program{}, nil
	}
	return programs, nil
}

func (s *programServiceImpl) upsertIndex(ctx context.Context, program *models.Program) {
	if err := s.index.IndexProgram(ctx, program); err != nil {
		logger.Warn().Err(err).Int64("programID", program.ID).Msg("Search index upsert failed, index is stale")
	}
}
