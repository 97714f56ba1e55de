package policy_test

import (
	"testing"

	"github.com/tazhibayda/idea-service/internal/domain"
	"github.com/tazhibayda/idea-service/internal/policy"
)

func TestCapabilityTable(t *testing.T) {
	cases := []struct {
		role   domain.UserRole
		action policy.Action
		want   bool
	}{
		{domain.RoleAdmin, policy.SignupUser, true},
		{domain.RoleQAM, policy.SignupUser, false},
		{domain.RoleStaff, policy.SignupUser, false},

		{domain.RoleAdmin, policy.ListUsers, true},
		{domain.RoleQAM, policy.ListUsers, true},
		{domain.RoleQAC, policy.ListUsers, false},

		{domain.RoleAdmin, policy.ManageDepartment, true},
		{domain.RoleQAM, policy.ManageDepartment, false},

		{domain.RoleQAM, policy.ManageCategory, true},
		{domain.RoleQAM, policy.CreateThread, true},
		{domain.RoleStaff, policy.CreateThread, false},

		{domain.RoleStaff, policy.SubmitIdea, true},
		{domain.RoleAdmin, policy.SubmitIdea, false},
		{domain.RoleQAC, policy.SubmitIdea, false},
	}
	for _, c := range cases {
		if got := policy.Can(c.role, c.action); got != c.want {
			t.Errorf("Can(%s, %s)=%v, want %v", c.role, c.action, got, c.want)
		}
	}
}

func TestCanTouchComment(t *testing.T) {
	if !policy.CanTouchComment(domain.RoleStaff, true) {
		t.Error("author must touch own comment")
	}
	if policy.CanTouchComment(domain.RoleStaff, false) {
		t.Error("stranger must not")
	}
	if !policy.CanTouchComment(domain.RoleAdmin, false) {
		t.Error("admin may touch any comment")
	}
}
