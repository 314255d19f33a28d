package service

import "errors"

var (
	ErrUserAlreadyExist     = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrRegistrationDenied   = errors.New("registration denied by risk screening")
	ErrDeliveryFailed       = errors.New("email delivery failed")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrInvalidTokenPurpose  = errors.New("invalid token purpose")
	ErrTokenNotFound        = errors.New("verification token not found or expired")
	ErrEmailAlreadyVerified = errors.New("email already verified")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrVerificationResent   = errors.New("email not verified, verification link sent again")
	ErrMissingFields        = errors.New("token and passwords are required")
	ErrPasswordsMismatch    = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters long")

	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrNotWorkspaceMember   = errors.New("not a member of this workspace")
	ErrMemberNotInWorkspace = errors.New("project member is not a member of this workspace")
	ErrProjectNotFound      = errors.New("project not found")
	ErrNotProjectMember     = errors.New("not a member of this project")
	ErrInvalidDateRange     = errors.New("due date must not be before start date")
	ErrAssigneeNotMember    = errors.New("assignee is not a member of this project")
)
