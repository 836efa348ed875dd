package model

import "testing"

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role Role
		min  Role
		want bool
	}{
		{RoleUser, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleRoot, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleRoot, false},
		{RoleRoot, RoleUser, true},
		{RoleRoot, RoleAdmin, true},
		{RoleRoot, RoleRoot, true},
	}

	for _, c := range cases {
		if got := c.role.AtLeast(c.min); got != c.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", c.role, c.min, got, c.want)
		}
	}
}

func TestUnknownRoleNeverPasses(t *testing.T) {
	unknown := Role("SUPERVISOR")
	if unknown.AtLeast(RoleUser) {
		t.Error("unknown role should not clear the lowest floor")
	}
	if unknown.Valid() {
		t.Error("unknown role should not validate")
	}
}
