package access

import (
	"context"
	"errors"
	"log"

	"lms/learning/internal/model"
)

// PropertyValidator answers whether a sub-resource id belongs to a
// course's child collection. The course membership is the single source
// of truth; a sub-resource id is never trusted in isolation.
type PropertyValidator struct {
	courses CourseLookup
	logf    func(format string, args ...interface{})
}

func NewPropertyValidator(courses CourseLookup) *PropertyValidator {
	return &PropertyValidator{courses: courses, logf: log.Printf}
}

// IsMember returns true iff exactly one member of the course's
// collection for the given kind carries the property id. A missing
// course or an unrecognized kind is non-membership, never a grant.
func (v *PropertyValidator) IsMember(ctx context.Context, courseID string, kind model.PropertyKind, propertyID string) (bool, error) {
	course, err := v.courses.CourseByID(ctx, courseID)
	if errors.Is(err, ErrCourseNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var collection []string
	switch kind {
	case model.PropertyAssignment:
		collection = course.Assignments
	case model.PropertyCourseMaterial:
		collection = course.CourseMaterials
	default:
		v.logf("property validator: unknown property kind %q for course %s", kind, courseID)
		return false, nil
	}

	matches := 0
	for _, id := range collection {
		if id == propertyID {
			matches++
		}
	}
	return matches == 1, nil
}
