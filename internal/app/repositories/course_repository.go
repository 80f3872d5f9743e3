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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Save inserts the course when it has no identifier yet and updates it
// otherwise. On insert the assigned identifier is written back to the model.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	if course.ID == 0 {
		query := `
			INSERT INTO courses (program_id, title, description)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := r.db.QueryRow(ctx, query, course.ProgramID, course.Title, course.Description).Scan(&course.ID); err != nil {
			return fmt.Errorf("error creating course: %w", err)
		}
		return nil
	}

	query := `
		UPDATE courses
		SET program_id = $1, title = $2, description = $3
		WHERE id = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, course.ProgramID, course.Title, course.Description, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetByIDWithProgram retrieves a course by ID with its program loaded.
func (r *CourseRepository) GetByIDWithProgram(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.program_id, c.title, c.description,
		       p.id, p.name, p.description
		FROM courses c
		JOIN programs p ON p.id = c.program_id
		WHERE c.id = $1
	`

	var course models.Course
	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.ProgramID,
		&course.Title,
		&course.Description,
		&program.ID,
		&program.Name,
		&program.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.Program = &program
	return &course, nil
}

// GetAllWithProgram retrieves all courses with their program loaded.
func (r *CourseRepository) GetAllWithProgram(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.program_id, c.title, c.description,
		       p.id, p.name, p.description
		FROM courses c
		JOIN programs p ON p.id = c.program_id
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		var program models.Program
		if err := rows.Scan(
			&course.ID,
			&course.ProgramID,
			&course.Title,
			&course.Description,
			&program.ID,
			&program.Name,
			&program.Description,
		); err != nil {
			return nil, err
		}
		course.Program = &program
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Search returns courses whose description contains the query text. The
// query value is always bound as a parameter, never spliced into the SQL.
func (r *CourseRepository) Search(ctx context.Context, queryText string) ([]*models.Course, error) {
	query := `
		SELECT id, program_id, title, description
		FROM courses
		WHERE description LIKE '%' || $1 || '%'
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, queryText)
	if err != nil {
		return nil, fmt.Errorf("error searching courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
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
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
