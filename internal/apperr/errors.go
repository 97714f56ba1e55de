// Package apperr holds the fixed domain error taxonomy. Codes are part of
// the API contract and must stay stable; clients branch on them.
package apperr

import "net/http"

type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

func newErr(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusBadRequest}
}

func forbidden(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusForbidden}
}

var (
	ErrUserExisted             = newErr("01", "User existed")
	ErrUserNotExist            = newErr("02", "User not found")
	ErrWrongPassword           = newErr("03", "Email or password incorrect")
	ErrAccountNotActivated     = newErr("04", "Account is not activated")
	ErrEmailNotSent            = newErr("05", "Internal email server error, email not sent")
	ErrCodeExpired             = newErr("06", "Code expired")
	ErrAdminOnly               = forbidden("07", "Required admin permission")
	ErrCodeInvalid             = newErr("08", "Code invalid")
	ErrAccountNotInactive      = newErr("09", "Account activated or locked/deleted")
	ErrUnknownData             = newErr("010", "Unknown parameters passed")
	ErrCodeRequestTooSoon      = newErr("011", "Cannot request new code yet")
	ErrAccountActivated        = newErr("012", "Account activated")
	ErrInvalidToken            = &Error{Code: "013", Message: "Invalid Authorization Token", Status: http.StatusUnauthorized}
	ErrAccountLockedOrDeleted  = newErr("014", "Account locked or deleted")
	ErrDepartmentExisted       = newErr("015", "Department existed")
	ErrThreadExisted           = newErr("016", "Thread existed")
	ErrCategoryExisted         = newErr("017", "Category existed")
	ErrNotAdminOrQAM           = forbidden("018", "Not an Admin or Quality Assurance Manager")
	ErrIdeaExisted             = newErr("019", "Idea existed")
	ErrThreadNotExisted        = newErr("020", "Thread not existed")
	ErrThreadExpired           = newErr("021", "Thread expired")
	ErrCategoryNotExisted      = newErr("022", "Category not existed")
	ErrIdeaNotExisted          = newErr("023", "Idea not existed")
	ErrCommentNotExisted       = newErr("024", "Comment not existed")
	ErrDeleteOtherComment      = forbidden("025", "Cannot delete others' comment")
	ErrEditOtherComment        = forbidden("026", "Cannot edit others' comment")
	ErrDepartmentNotExisted    = newErr("027", "Department not existed")
	ErrAlreadyInDepartment     = newErr("028", "User already in this department")
	ErrNotificationNotExist    = newErr("029", "Notification not exist")
	ErrReadOtherNotification   = forbidden("030", "Cannot read others' notification")
	ErrDepartmentActive        = newErr("031", "Department already active")
	ErrDepartmentInactive      = newErr("032", "Department already inactive")
	ErrOnlyStaffSubmitIdea     = forbidden("033", "Only staff can submit new idea")
	ErrDepartmentForQAMOrAdmin = newErr("034", "Cannot assign department to Admin or Quality Assurance Manager")
	ErrNotQAM                  = forbidden("035", "Not a Quality Assurance Manager")
	ErrCategorySameName        = newErr("036", "Cannot update category name to its same name")
	ErrCategoryInactive        = newErr("037", "Category inactive")

	ErrForbidden    = &Error{Code: "403", Message: "Authorization forbidden", Status: http.StatusForbidden}
	ErrUnauthorized = &Error{Code: "401", Message: "Unauthorized", Status: http.StatusUnauthorized}
)
