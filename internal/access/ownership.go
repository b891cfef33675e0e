package access

import (
	"context"
	"errors"

	"lms/learning/internal/model"
)

// OwnershipValidator confirms an instructor principal owns a course
// before any mutation or sensitive read of it is served.
type OwnershipValidator struct {
	courses CourseLookup
}

func NewOwnershipValidator(courses CourseLookup) *OwnershipValidator {
	return &OwnershipValidator{courses: courses}
}

// Validate re-evaluates on every call; nothing is cached. The returned
// error is reserved for lookup faults, a missing or foreign course is a
// structured rejection.
func (v *OwnershipValidator) Validate(ctx context.Context, courseID string, principal model.Principal) (Outcome, error) {
	course, err := v.courses.CourseByID(ctx, courseID)
	if errors.Is(err, ErrCourseNotFound) {
		return RejectBadRequest("Invalid course ID"), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	if course.InstructorID != principal.ID {
		return RejectForbidden("not the instructor of this course"), nil
	}
	return Pass(), nil
}
