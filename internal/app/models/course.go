package models

// Course represents a course taught within a program.
type Course struct {
	ID          int64   `json:"id" db:"id"`
	ProgramID   int64   `json:"programId" db:"program_id"`
	Title       string  `json:"title" db:"title" validate:"required,max=200"`
	Description *string `json:"description,omitempty" db:"description" validate:"omitempty,max=4000"` // Nullable

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}
