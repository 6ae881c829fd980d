package message

const (
	InvalidUser   = "Invalid username/password."
	InvalidInput  = "Invalid input."
	Forbidden     = "You are not allowed to perform this action."
	NotFound      = "Resource not found."
	ServerError   = "An unexpected error occurred."
	ResetSent     = "A password reset link was sent to your email."
	ResetSuccess  = "Password reset successful."
	RequestCancel = "Request cancelled or timeout."

	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
