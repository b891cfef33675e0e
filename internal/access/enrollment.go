package access

import (
	"context"
	"errors"

	"lms/learning/internal/model"
)

// EnrollmentValidator confirms an employee principal is enrolled in a
// course. An inactive course is indistinguishable from a missing one.
type EnrollmentValidator struct {
	courses CourseLookup
}

func NewEnrollmentValidator(courses CourseLookup) *EnrollmentValidator {
	return &EnrollmentValidator{courses: courses}
}

func (v *EnrollmentValidator) Validate(ctx context.Context, courseID string, principal model.Principal) (Outcome, error) {
	course, err := v.courses.CourseByID(ctx, courseID)
	if errors.Is(err, ErrCourseNotFound) {
		return RejectBadRequest("Invalid course ID"), nil
	}
	if err != nil {
		return Outcome{}, err
	}
	if course.Status == model.CourseInactive {
		return RejectBadRequest("Invalid course ID"), nil
	}
	if !course.Enrolled(principal.ID) {
		return RejectForbidden("not enrolled in this course"), nil
	}
	return Pass(), nil
}
