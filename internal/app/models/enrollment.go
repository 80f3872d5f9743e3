package models

import "time"

// Enrollment ties a user to a program. The referenced user is the owner of
// the row; non-admin callers only ever see their own enrollments.
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"userId" db:"user_id"`
	ProgramID  int64            `json:"programId" db:"program_id"`
	Comments   *string          `json:"comments,omitempty" db:"comments"` // Nullable
	Status     EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`

	// Relations (populated when needed)
	User    *User    `json:"user,omitempty"`
	Program *Program `json:"program,omitempty"`
}

// OwnerLogin returns the login of the owning user, or "" when the relation
// has not been loaded.
func (e *Enrollment) OwnerLogin() string {
	if e.User == nil {
		return ""
	}
	return e.User.Login
}
