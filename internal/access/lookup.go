// Package access holds the per-resource authorization checks that run
// after a request has been authenticated and its route-level role gate
// has passed: course ownership for instructors, course enrollment for
// employees, and sub-resource membership for course-scoped URLs.
package access

import (
	"context"
	"errors"

	"lms/learning/internal/model"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrPrincipalNotFound = errors.New("principal not found")
)

// CourseLookup is the course collaborator consumed by the validators.
type CourseLookup interface {
	CourseByID(ctx context.Context, id string) (model.Course, error)
}

// PrincipalDirectory resolves a token subject to a full principal
// record. Consulted on every request; there are no sessions.
type PrincipalDirectory interface {
	PrincipalByEmail(ctx context.Context, email string) (model.Principal, error)
}
