package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode        = 1001
	UserAlreadyExistsMessage     = "User already exists"
	UserNotFoundCode             = 1002
	UserNotFoundMessage          = "User not found"
	RegistrationDeniedCode       = 1003
	RegistrationDeniedMessage    = "Invalid email address"
	EmailDeliveryFailedCode      = 1004
	EmailDeliveryFailedMessage   = "Failed to send verification email"
	InvalidTokenCode             = 1005
	InvalidTokenMessage          = "Invalid or expired token"
	InvalidTokenPurposeCode      = 1006
	InvalidTokenPurposeMessage   = "Invalid token purpose"
	TokenNotFoundCode            = 1007
	TokenNotFoundMessage         = "Invalid or expired token"
	EmailAlreadyVerifiedCode     = 1008
	EmailAlreadyVerifiedMessage  = "Email already verified"
	InvalidCredentialsCode       = 1009
	InvalidCredentialsMessage    = "Invalid email or password"
	EmailNotVerifiedCode         = 1010
	EmailNotVerifiedMessage      = "Email not verified. Please check your email for the verification link."
	VerificationResentCode       = 1011
	VerificationResentMessage    = "Email not verified. Verification link sent again to your email."
	MissingFieldsCode            = 1012
	MissingFieldsMessage         = "Token and passwords are required"
	PasswordsMismatchCode        = 1013
	PasswordsMismatchMessage     = "Passwords do not match"
	PasswordTooShortCode         = 1014
	PasswordTooShortMessage      = "Password must be at least 6 characters long"
	NoTokenProvidedCode          = 1015
	NoTokenProvidedMessage       = "No token provided"
	ForbiddenCode                = 1016
	ForbiddenMessage             = "Invalid or expired token"
	EmailNotVerifiedResetCode    = 1017
	EmailNotVerifiedResetMessage = "Please verify your email first"
	UnauthorizedCode             = 1018
	UnauthorizedMessage          = "Unauthorized"
	ResetDeliveryFailedCode      = 1019
	ResetDeliveryFailedMessage   = "Failed to send reset password email"

	WorkspaceNotFoundCode       = 2001
	WorkspaceNotFoundMessage    = "Workspace not found or access denied"
	NotWorkspaceMemberCode      = 2002
	NotWorkspaceMemberMessage   = "You are not a member of this workspace"
	MemberNotInWorkspaceCode    = 2003
	MemberNotInWorkspaceMessage = "Project member is not a member of this workspace"
	ProjectNotFoundCode         = 2004
	ProjectNotFoundMessage      = "Project not found"
	NotProjectMemberCode        = 2005
	NotProjectMemberMessage     = "You are not a member of this project"
	InvalidDateRangeCode        = 2006
	InvalidDateRangeMessage     = "Due date must not be before start date"
	AssigneeNotMemberCode       = 2007
	AssigneeNotMemberMessage    = "Assignee is not a member of this project"
	InvalidIDCode               = 2008
	InvalidIDMessage            = "Invalid id"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
	InvalidRequestCode     = 6001
	InvalidRequestMessage  = "Invalid request body"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	UserAlreadyExistsCode:     UserAlreadyExistsMessage,
	UserNotFoundCode:          UserNotFoundMessage,
	RegistrationDeniedCode:    RegistrationDeniedMessage,
	EmailDeliveryFailedCode:   EmailDeliveryFailedMessage,
	InvalidTokenCode:          InvalidTokenMessage,
	InvalidTokenPurposeCode:   InvalidTokenPurposeMessage,
	TokenNotFoundCode:         TokenNotFoundMessage,
	EmailAlreadyVerifiedCode:  EmailAlreadyVerifiedMessage,
	InvalidCredentialsCode:    InvalidCredentialsMessage,
	EmailNotVerifiedCode:      EmailNotVerifiedMessage,
	VerificationResentCode:    VerificationResentMessage,
	MissingFieldsCode:         MissingFieldsMessage,
	PasswordsMismatchCode:     PasswordsMismatchMessage,
	PasswordTooShortCode:      PasswordTooShortMessage,
	NoTokenProvidedCode:       NoTokenProvidedMessage,
	UnauthorizedCode:          UnauthorizedMessage,
	ResetDeliveryFailedCode:   ResetDeliveryFailedMessage,
	ForbiddenCode:             ForbiddenMessage,
	EmailNotVerifiedResetCode: EmailNotVerifiedResetMessage,

	WorkspaceNotFoundCode:    WorkspaceNotFoundMessage,
	NotWorkspaceMemberCode:   NotWorkspaceMemberMessage,
	MemberNotInWorkspaceCode: MemberNotInWorkspaceMessage,
	ProjectNotFoundCode:      ProjectNotFoundMessage,
	NotProjectMemberCode:     NotProjectMemberMessage,
	InvalidDateRangeCode:     InvalidDateRangeMessage,
	AssigneeNotMemberCode:    AssigneeNotMemberMessage,
	InvalidIDCode:            InvalidIDMessage,

	InvalidRequestCode: InvalidRequestMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	if msg, ok := errorMessages[code]; ok {
		errorStruct.ErrorCode = code
		errorStruct.ErrorMessage = msg
	}

	return errorStruct
}
