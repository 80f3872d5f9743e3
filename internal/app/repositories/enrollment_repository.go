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

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

const enrollmentWithRelationsSelect = `
	SELECT e.id, e.user_id, e.program_id, e.comments, e.status, e.enrolled_at,
	       u.id, u.login, u.role_type, u.is_active, u.created_at,
	       p.id, p.name, p.description
	FROM enrollments e
	JOIN users u ON u.id = e.user_id
	JOIN programs p ON p.id = e.program_id
`

func scanEnrollmentWithRelations(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	var user models.User
	var program models.Program
	err := row.Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.ProgramID,
		&enrollment.Comments,
		&enrollment.Status,
		&enrollment.EnrolledAt,
		&user.ID,
		&user.Login,
		&user.RoleType,
		&user.IsActive,
		&user.CreatedAt,
		&program.ID,
		&program.Name,
		&program.Description,
	)
	if err != nil {
		return nil, err
	}
	enrollment.User = &user
	enrollment.Program = &program
	return &enrollment, nil
}

// Save inserts the enrollment when it has no identifier yet and updates it
// otherwise. On insert the assigned identifier is written back to the model.
func (r *EnrollmentRepository) Save(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.Status == "" {
		enrollment.Status = models.EnrollmentPending
	}

	if enrollment.ID == 0 {
		query := `
			INSERT INTO enrollments (user_id, program_id, comments, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, enrolled_at
		`
		err := r.db.QueryRow(ctx, query,
			enrollment.UserID, enrollment.ProgramID, enrollment.Comments, enrollment.Status,
		).Scan(&enrollment.ID, &enrollment.EnrolledAt)
		if err != nil {
			return fmt.Errorf("error creating enrollment: %w", err)
		}
		return nil
	}

	query := `
		UPDATE enrollments
		SET user_id = $1, program_id = $2, comments = $3, status = $4
		WHERE id = $5
	`
	cmdTag, err := r.db.Exec(ctx, query,
		enrollment.UserID, enrollment.ProgramID, enrollment.Comments, enrollment.Status, enrollment.ID)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// GetByIDWithRelations retrieves an enrollment with its user and program loaded.
func (r *EnrollmentRepository) GetByIDWithRelations(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := enrollmentWithRelationsSelect + ` WHERE e.id = $1`

	enrollment, err := scanEnrollmentWithRelations(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// GetAllWithRelations retrieves all enrollments with users and programs loaded.
func (r *EnrollmentRepository) GetAllWithRelations(ctx context.Context) ([]*models.Enrollment, error) {
	query := enrollmentWithRelationsSelect + ` ORDER BY e.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEnrollments(rows)
}

// GetOwnedBy retrieves the enrollments owned by the user with the given login.
func (r *EnrollmentRepository) GetOwnedBy(ctx context.Context, login string) ([]*models.Enrollment, error) {
	query := enrollmentWithRelationsSelect + ` WHERE u.login = $1 ORDER BY e.id`

	rows, err := r.db.Query(ctx, query, login)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEnrollments(rows)
}

// Search returns enrollments whose comments contain the query text. The
// query value is always bound as a parameter, never spliced into the SQL.
func (r *EnrollmentRepository) Search(ctx context.Context, queryText string) ([]*models.Enrollment, error) {
	query := `
		SELECT id, user_id, program_id, comments, status, enrolled_at
		FROM enrollments
		WHERE comments LIKE '%' || $1 || '%'
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, queryText)
	if err != nil {
		return nil, fmt.Errorf("error searching enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.ProgramID,
			&enrollment.Comments,
			&enrollment.Status,
			&enrollment.EnrolledAt,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

func collectEnrollments(rows pgx.Rows) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollmentWithRelations(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
