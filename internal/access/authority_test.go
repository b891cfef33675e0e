package access

import (
	"testing"

	"lms/learning/internal/model"
)

func TestAuthorityTableRequiredFor(t *testing.T) {
	table := DefaultAuthorityTable()

	cases := map[string]Authority{
		"/admin/users":           AuthorityAdmin,
		"/instructor/course/101": AuthorityInstructor,
		"/employee/course/101":   AuthorityEmployee,
		"/public/health":         AuthorityAnyone,
		"/public/auth/login":     AuthorityAnyone,
		"/auth/me":               AuthorityAuthenticated,
		"/somewhere/else":        AuthorityAuthenticated,
	}
	for path, want := range cases {
		if got := table.RequiredFor(path); got != want {
			t.Fatalf("RequiredFor(%s) = %s, want %s", path, got, want)
		}
	}
}

func TestAuthorityTableMostSpecificFirst(t *testing.T) {
	table := NewAuthorityTable(map[string]Authority{
		"/api":       AuthorityAuthenticated,
		"/api/admin": AuthorityAdmin,
	})
	if got := table.RequiredFor("/api/admin/users"); got != AuthorityAdmin {
		t.Fatalf("expected longer prefix to win, got %s", got)
	}
	if got := table.RequiredFor("/api/reports"); got != AuthorityAuthenticated {
		t.Fatalf("expected shorter prefix match, got %s", got)
	}
}

func TestAuthorityPermits(t *testing.T) {
	admin := &model.Principal{ID: "1", Role: model.RoleAdmin}
	instructor := &model.Principal{ID: "2", Role: model.RoleInstructor}
	employee := &model.Principal{ID: "3", Role: model.RoleEmployee}

	if !AuthorityAnyone.Permits(nil) {
		t.Fatalf("anyone must permit anonymous callers")
	}
	if AuthorityAuthenticated.Permits(nil) {
		t.Fatalf("authenticated must reject anonymous callers")
	}
	if !AuthorityAuthenticated.Permits(employee) {
		t.Fatalf("authenticated must permit any principal")
	}
	if !AuthorityAdmin.Permits(admin) || AuthorityAdmin.Permits(instructor) {
		t.Fatalf("admin authority must gate on role")
	}
	if !AuthorityInstructor.Permits(instructor) || AuthorityInstructor.Permits(employee) {
		t.Fatalf("instructor authority must gate on role")
	}
	if !AuthorityEmployee.Permits(employee) || AuthorityEmployee.Permits(admin) {
		t.Fatalf("employee authority must gate on role")
	}
}
