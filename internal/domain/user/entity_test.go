package user

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"student":  RoleStudent,
		" Company": RoleCompany,
		"ADMIN":    RoleAdmin,
	}
	for in, want := range cases {
		got, err := ParseRole(in)
		if err != nil {
			t.Fatalf("ParseRole(%q) unexpected err: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseRole("recruiter"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestSelfRegisterable(t *testing.T) {
	if !RoleStudent.SelfRegisterable() || !RoleCompany.SelfRegisterable() {
		t.Fatalf("student and company must be self registerable")
	}
	if RoleAdmin.SelfRegisterable() {
		t.Fatalf("admin must not be self registerable")
	}
}
