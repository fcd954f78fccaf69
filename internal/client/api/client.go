package api

import "context"

// StatusTwoFactorRequired is the login status announcing the OTP step.
const StatusTwoFactorRequired = "2fa_required"

type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	VerifyOTP(ctx context.Context, tempToken, otp string) (*VerifyOTPResponse, error)
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
	ForgotPassword(ctx context.Context, email string) (*MessageResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error)
	Ping(ctx context.Context) error
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status    string `json:"status"`
	TempToken string `json:"tempToken"`
}

type VerifyOTPRequest struct {
	TempToken string `json:"tempToken"`
	OTP       string `json:"otp"`
}

// UserPayload is the user object as the backend serialises it.
type UserPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type VerifyOTPResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupResponse is the created user. Token is set only by backends that
// issue a session on signup.
type SignupResponse struct {
	UserPayload
	Token string `json:"token,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
