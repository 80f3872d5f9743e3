package models

// Program represents a degree program offered by the school.
type Program struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name" binding:"required"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}
