// Package policy is the single place role checks live. Handlers ask
// Can(role, action) instead of repeating role equality checks inline.
package policy

import "github.com/tazhibayda/idea-service/internal/domain"

type Action string

const (
	SignupUser       Action = "user.signup"
	DeactivateUser   Action = "user.deactivate"
	ListUsers        Action = "user.list"
	ChangeDepartment Action = "user.change_department"

	ManageDepartment Action = "department.manage"
	ManageCategory   Action = "category.manage"
	CreateThread     Action = "thread.create"

	SubmitIdea Action = "idea.submit"
)

var allowed = map[Action][]domain.UserRole{
	SignupUser:       {domain.RoleAdmin},
	DeactivateUser:   {domain.RoleAdmin},
	ListUsers:        {domain.RoleAdmin, domain.RoleQAM},
	ChangeDepartment: {domain.RoleAdmin},

	ManageDepartment: {domain.RoleAdmin},
	ManageCategory:   {domain.RoleAdmin, domain.RoleQAM},
	CreateThread:     {domain.RoleAdmin, domain.RoleQAM},

	SubmitIdea: {domain.RoleStaff},
}

func Can(role domain.UserRole, action Action) bool {
	for _, r := range allowed[action] {
		if r == role {
			return true
		}
	}
	return false
}

// CanTouchComment: the author always may, an admin may for anyone.
func CanTouchComment(role domain.UserRole, actorIsAuthor bool) bool {
	return actorIsAuthor || role == domain.RoleAdmin
}
