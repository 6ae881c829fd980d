package auth

const (
	MsgLoggedIn         = "Logged in."
	MsgLoggedOut        = "Logged out."
	MsgRefreshed        = "Token refreshed."
	MsgNotVerified      = "Email not yet verified."
	MsgVerifySuccess    = "Verification complete. You can now login."
	MsgRegisterSuccess  = "Thank you for registering. A verification link was sent to your email."
	MsgReVerifySuccess  = "If the account exists and is not yet verified, a verification link was sent to your email."
	MsgUserExists       = "User already exists."
	MsgAlreadyVerified  = "Email already verified."
	MsgAdminOnly        = "Only administrators can perform this action."
	MsgInvalidLinkToken = "The link is invalid or has expired."
)
