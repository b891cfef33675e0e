package model

import "strings"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
	RoleEmployee   Role = "EMPLOYEE"
)

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleInstructor:
		return RoleInstructor, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusRejected Status = "REJECTED"
)

type Principal struct {
	ID        string
	Email     string
	Role      Role
	Status    Status
	FirstName string
	LastName  string
}

type CourseStatus string

const (
	CourseActive   CourseStatus = "ACTIVE"
	CourseInactive CourseStatus = "INACTIVE"
)

type Course struct {
	ID              string
	InstructorID    string
	Status          CourseStatus
	Enrollments     []string
	Assignments     []string
	CourseMaterials []string
}

// Enrolled reports whether the given employee id appears in the
// course's enrollment set.
func (c Course) Enrolled(employeeID string) bool {
	for _, id := range c.Enrollments {
		if id == employeeID {
			return true
		}
	}
	return false
}

// PropertyKind names a child collection of a course. Unrecognized input
// is only representable as the zero value, which every consumer treats
// as non-membership.
type PropertyKind string

const (
	PropertyAssignment     PropertyKind = "assignment"
	PropertyCourseMaterial PropertyKind = "courseMaterial"
)

func ParsePropertyKind(value string) (PropertyKind, bool) {
	switch PropertyKind(value) {
	case PropertyAssignment:
		return PropertyAssignment, true
	case PropertyCourseMaterial:
		return PropertyCourseMaterial, true
	default:
		return "", false
	}
}
