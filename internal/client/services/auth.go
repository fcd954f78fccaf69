// Package services contains the client's application services: the
// authentication flow and the local notification feed.
package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/lostfound/internal/client/api"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

const (
	msgLoginFailed   = "Login failed"
	msgInvalidOTP    = "Invalid or expired OTP"
	msgSignupFailed  = "Failed to create account"
	msgForgotFailed  = "Failed to send reset email. Please try again."
	msgResetFailed   = "Failed to reset password. Please try again."
	msgInvalidToken  = "Invalid or missing token"
	msgPasswordsDiff = "Passwords do not match"
)

// AuthService drives the two-step sign-in flow.
//
// Contract:
//   - Restore: derive the initial state from the persisted session.
//   - Login: submit credentials; on success a PendingLogin is held.
//   - VerifyOTP: exchange the pending temp token and OTP for a session.
//   - Signup: create an account and sign in as it.
//   - Logout: drop the session locally.
//   - UpdateUser: replace the identity of the current session.
//   - ForgotPassword, ResetPassword: password recovery.
//
// Only one backend call may be in flight at a time; a second one fails with
// ErrBusy.
type AuthService interface {
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) (string, error)
	VerifyOTP(ctx context.Context, tempToken, otp string) error
	Signup(ctx context.Context, username, email, password, role string) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, identity models.Identity) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword, confirm string) (string, error)
	Ping(ctx context.Context) error

	CurrentUser() *models.Identity
	State() State
	Pending() *models.PendingLogin
}

// SessionStore is the durable half of the session.
type SessionStore interface {
	Save(ctx context.Context, identity models.Identity, token string) error
	SaveIdentity(ctx context.Context, identity models.Identity) error
	Load(ctx context.Context) (*models.Identity, string, error)
	Clear(ctx context.Context) error
}

type authService struct {
	client   api.Client
	sessions SessionStore
	log      logging.Logger

	inFlight atomic.Bool

	mu       sync.RWMutex
	state    State
	identity *models.Identity
	pending  *models.PendingLogin
}

// NewAuthService constructs an AuthService in the Anonymous state. Call
// Restore to pick up a persisted session.
func NewAuthService(client api.Client, sessions SessionStore, log logging.Logger) AuthService {
	return &authService{
		client:   client,
		sessions: sessions,
		log:      log.With("component", "auth"),
	}
}

func (a *authService) begin() error {
	if !a.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (a *authService) end() { a.inFlight.Store(false) }

// Restore trusts whatever session is persisted; the first authenticated
// backend call is what would reveal a stale token.
func (a *authService) Restore(ctx context.Context) error {
	identity, _, err := a.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = nil
	if identity == nil {
		a.identity = nil
		a.state = StateAnonymous
		return nil
	}
	a.identity = identity
	a.state = StateAuthenticated
	a.log.Info(ctx, "session restored", "user_id", identity.UserID, "state", a.state)
	return nil
}

// Login submits credentials. On success the state moves to
// StateCredentialsSubmitted and the temp token for VerifyOTP is returned.
//
// Input problems are reported as *ValidationError without contacting the
// backend. A rejection is an *AuthError carrying the backend message or
// "Login failed"; an unreachable backend is a *TransportError. Fails with
// ErrAlreadyAuthenticated when a session is active and ErrBusy when another
// call is in flight. On any error the state is unchanged.
func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", &ValidationError{Field: "password", Message: "Required"}
	}
	if err := a.begin(); err != nil {
		return "", err
	}
	defer a.end()

	if a.State() == StateAuthenticated {
		return "", ErrAlreadyAuthenticated
	}

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login rejected", "email", email, "error", err)
		return "", classify(err, msgLoginFailed)
	}
	if resp.Status != api.StatusTwoFactorRequired || resp.TempToken == "" {
		a.log.Warn(ctx, "unexpected login response", "email", email, "status", resp.Status)
		return "", &AuthError{Message: msgUnexpectedResponse}
	}

	a.mu.Lock()
	a.pending = &models.PendingLogin{TempToken: resp.TempToken}
	a.state = StateCredentialsSubmitted
	a.mu.Unlock()

	a.log.Info(ctx, "credentials accepted, otp required", "email", email, "state", StateCredentialsSubmitted)
	return resp.TempToken, nil
}

// VerifyOTP exchanges the temp token and a six digit code for a session,
// persists it and moves to StateAuthenticated. A rejected code keeps the
// pending login so the user can try again; its error is an *AuthError with
// the backend message or "Invalid or expired OTP".
func (a *authService) VerifyOTP(ctx context.Context, tempToken, otp string) error {
	otp = strings.TrimSpace(otp)
	if err := validateOTP(otp); err != nil {
		return err
	}
	if tempToken == "" {
		return &ValidationError{Field: "tempToken", Message: "Sign in with your email and password first"}
	}

	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	resp, err := a.client.VerifyOTP(ctx, tempToken, otp)
	if err != nil {
		a.log.Info(ctx, "otp rejected", "error", err)
		return classify(err, msgInvalidOTP)
	}

	identity := identityFromPayload(resp.User)
	if resp.Token == "" || !identity.Valid() {
		a.log.Warn(ctx, "verify-otp response is missing the token or user")
		return &AuthError{Message: msgUnexpectedResponse}
	}
	if err := a.sessions.Save(ctx, identity, resp.Token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.authenticated(ctx, identity)
	return nil
}

// Signup creates an account and signs in as it. When the backend issues no
// token a local placeholder is stored instead. Errors follow Login, with
// "Failed to create account" as the fallback message.
func (a *authService) Signup(ctx context.Context, username, email, password, role string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	r, err := validateSignup(username, email, password, role)
	if err != nil {
		return err
	}
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()

	if a.State() == StateAuthenticated {
		return ErrAlreadyAuthenticated
	}

	resp, err := a.client.Signup(ctx, api.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(r),
	})
	if err != nil {
		a.log.Info(ctx, "signup rejected", "email", email, "error", err)
		return classify(err, msgSignupFailed)
	}

	identity := identityFromPayload(resp.UserPayload)
	if !identity.Valid() {
		a.log.Warn(ctx, "signup response is missing user fields")
		return &AuthError{Message: msgUnexpectedResponse}
	}

	token := resp.Token
	if token == "" {
		// The backend does not issue a session on signup; the placeholder keeps
		// the user signed in locally until the first authenticated call.
		token = fmt.Sprintf("local-%d", identity.UserID)
		a.log.Warn(ctx, "backend issued no token on signup, storing a local placeholder", "user_id", identity.UserID)
	}
	if err := a.sessions.Save(ctx, identity, token); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	a.authenticated(ctx, identity)
	return nil
}

func (a *authService) authenticated(ctx context.Context, identity models.Identity) {
	a.mu.Lock()
	a.identity = &identity
	a.pending = nil
	a.state = StateAuthenticated
	a.mu.Unlock()

	a.log.Info(ctx, "signed in", "user_id", identity.UserID, "state", StateAuthenticated)
}

// Logout always resets the in-memory session. A storage failure is returned
// for reporting only.
func (a *authService) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.identity = nil
	a.pending = nil
	a.state = StateAnonymous
	a.mu.Unlock()

	if err := a.sessions.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear persisted session", "error", err)
		return err
	}
	a.log.Info(ctx, "signed out", "state", StateAnonymous)
	return nil
}

// UpdateUser replaces the identity of the active session in memory and in
// storage. It returns ErrNotAuthenticated outside StateAuthenticated and a
// *ValidationError for an incomplete identity. The token is left as is.
func (a *authService) UpdateUser(ctx context.Context, identity models.Identity) error {
	if a.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	if !identity.Valid() {
		return &ValidationError{Field: "user", Message: "All profile fields are required"}
	}
	if err := a.sessions.SaveIdentity(ctx, identity); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	a.mu.Lock()
	a.identity = &identity
	a.mu.Unlock()

	a.log.Info(ctx, "profile updated", "user_id", identity.UserID)
	return nil
}

// ForgotPassword asks the backend to mail a reset link and returns its
// confirmation message. The session state is not touched.
func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}

	if err := a.begin(); err != nil {
		return "", err
	}
	defer a.end()

	resp, err := a.client.ForgotPassword(ctx, email)
	if err != nil {
		return "", classify(err, msgForgotFailed)
	}
	a.log.Info(ctx, "password reset requested", "email", email)
	return resp.Message, nil
}

// ResetPassword sets a new password using a token from the reset mail. The
// token must be present and both passwords must match before the backend is
// called. Returns the backend's confirmation message.
func (a *authService) ResetPassword(ctx context.Context, token, newPassword, confirm string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", &ValidationError{Field: "token", Message: msgInvalidToken}
	}
	if newPassword == "" {
		return "", &ValidationError{Field: "password", Message: "Required"}
	}
	if newPassword != confirm {
		return "", &ValidationError{Field: "confirm", Message: msgPasswordsDiff}
	}

	if err := a.begin(); err != nil {
		return "", err
	}
	defer a.end()

	resp, err := a.client.ResetPassword(ctx, token, newPassword)
	if err != nil {
		return "", classify(err, msgResetFailed)
	}
	a.log.Info(ctx, "password reset")
	return resp.Message, nil
}

// Ping proxies a liveness check to the backend. It does not take the
// in-flight slot.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// CurrentUser returns a copy of the signed-in identity, or nil.
func (a *authService) CurrentUser() *models.Identity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return nil
	}
	cp := *a.identity
	return &cp
}

// State reports the current position in the sign-in flow.
func (a *authService) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Pending returns a copy of the login awaiting its code, or nil.
func (a *authService) Pending() *models.PendingLogin {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.pending == nil {
		return nil
	}
	cp := *a.pending
	return &cp
}

func identityFromPayload(u api.UserPayload) models.Identity {
	return models.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     models.Role(strings.ToUpper(strings.TrimSpace(u.Role))),
	}
}
