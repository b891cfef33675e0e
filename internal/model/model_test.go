package model

import "testing"

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"ADMIN":        RoleAdmin,
		"admin":        RoleAdmin,
		" Instructor ": RoleInstructor,
		"EMPLOYEE":     RoleEmployee,
	}
	for input, expect := range cases {
		role, ok := ParseRole(input)
		if !ok || role != expect {
			t.Fatalf("expected %s to parse as %s", input, expect)
		}
	}
	if _, ok := ParseRole("superuser"); ok {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestParsePropertyKind(t *testing.T) {
	if kind, ok := ParsePropertyKind("assignment"); !ok || kind != PropertyAssignment {
		t.Fatalf("expected assignment kind")
	}
	if kind, ok := ParsePropertyKind("courseMaterial"); !ok || kind != PropertyCourseMaterial {
		t.Fatalf("expected courseMaterial kind")
	}
	if _, ok := ParsePropertyKind("announcement"); ok {
		t.Fatalf("expected unknown kind to fail")
	}
}

func TestCourseEnrolled(t *testing.T) {
	course := Course{Enrollments: []string{"10", "12"}}
	if !course.Enrolled("10") {
		t.Fatalf("expected employee 10 to be enrolled")
	}
	if course.Enrolled("11") {
		t.Fatalf("expected employee 11 to be absent")
	}
}
