package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opencampus/coursehub/internal/app/models"
	"github.com/opencampus/coursehub/internal/pkg/apperrors"
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// Save inserts the program when it has no identifier yet and updates it
// otherwise. On insert the assigned identifier is written back to the model.
func (r *ProgramRepository) Save(ctx context.Context, program *models.Program) error {
	if program.ID == 0 {
		query := `
			INSERT INTO programs (name, description)
			VALUES ($1, $2)
			RETURNING id
		`
		if err := r.db.QueryRow(ctx, query, program.Name, program.Description).Scan(&program.ID); err != nil {
			return fmt.Errorf("error creating program: %w", err)
		}
		return nil
	}

	query := `
		UPDATE programs
		SET name = $1, description = $2
		WHERE id = $3
	`
	cmdTag, err := r.db.Exec(ctx, query, program.Name, program.Description, program.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, description
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetByIDWithCourses retrieves a program together with its courses.
func (r *ProgramRepository) GetByIDWithCourses(ctx context.Context, id int64) (*models.Program, error) {
	program, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, program_id, title, description
		FROM courses
		WHERE program_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving program courses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.ProgramID,
			&course.Title,
			&course.Description,
		); err != nil {
			return nil, err
		}
		program.Courses = append(program.Courses, &course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return program, nil
}

// GetAll retrieves all programs
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	query := `
		SELECT id, name, description
		FROM programs
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Description,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// Search returns programs whose name contains the query text. The query
// value is always bound as a parameter, never spliced into the SQL.
func (r *ProgramRepository) Search(ctx context.Context, queryText string) ([]*models.Program, error) {
	query := `
		SELECT id, name, description
		FROM programs
		WHERE name LIKE '%' || $1 || '%'
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, queryText)
	if err != nil {
		return nil, fmt.Errorf("error searching programs: %w", err)
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Description,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// Delete deletes a program by ID
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
