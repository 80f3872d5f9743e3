// Package services is the access-controlled query engine. Every read and
// write for Program, Course and Enrollment passes through here: the caller
// identity is taken from the request context, checked against the role
// policy table, and only then dispatched to the entity store and the
// search index.
//
// Services defined in this package:
// - ProgramService: programs, visible to any USER or ADMIN
// - CourseService: courses, admin-gated, content-safety validated
// - EnrollmentService: enrollments, ownership-scoped visibility
package services
