package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/dmitrijs2005/lostfound/internal/client/api"
	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
	"github.com/dmitrijs2005/lostfound/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs answers text prompts from texts and password prompts from
// passwords, in order.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ *bufio.Reader, prompt string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, fmt.Errorf("unexpected password prompt %q", prompt)
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	state    services.State
	identity *models.Identity
	pending  *models.PendingLogin

	loginEmail, loginPass string
	loginErr              error

	verifyOTPs []string
	// verifyErrs is consumed one per VerifyOTP call; nil or exhausted means success.
	verifyErrs []error

	signupArgs []string
	signupErr  error

	logoutErr error
	updated   *models.Identity

	forgotEmail string
	forgotMsg   string
	resetArgs   []string
	resetErr    error

	pingErr error
}

var bob = models.Identity{UserID: 1, Username: "bob", Email: "a@b.com", Role: models.RoleUser}

func (f *fakeAuth) Restore(ctx context.Context) error { return nil }

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return "", f.loginErr
	}
	f.pending = &models.PendingLogin{TempToken: "abc"}
	f.state = services.StateCredentialsSubmitted
	return "abc", nil
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, tempToken, otp string) error {
	f.verifyOTPs = append(f.verifyOTPs, tempToken+":"+otp)
	if len(f.verifyErrs) > 0 {
		err := f.verifyErrs[0]
		f.verifyErrs = f.verifyErrs[1:]
		if err != nil {
			return err
		}
	}
	id := bob
	f.identity, f.pending, f.state = &id, nil, services.StateAuthenticated
	return nil
}

func (f *fakeAuth) Signup(ctx context.Context, username, email, password, role string) error {
	f.signupArgs = []string{username, email, password, role}
	if f.signupErr != nil {
		return f.signupErr
	}
	f.identity = &models.Identity{UserID: 7, Username: username, Email: email, Role: models.Role(role)}
	f.state = services.StateAuthenticated
	return nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.identity, f.pending, f.state = nil, nil, services.StateAnonymous
	return f.logoutErr
}

func (f *fakeAuth) UpdateUser(ctx context.Context, identity models.Identity) error {
	f.updated = &identity
	f.identity = &identity
	return nil
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.forgotEmail = email
	return f.forgotMsg, nil
}

func (f *fakeAuth) ResetPassword(ctx context.Context, token, newPassword, confirm string) (string, error) {
	f.resetArgs = []string{token, newPassword, confirm}
	return "Password reset successfully", f.resetErr
}

func (f *fakeAuth) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeAuth) CurrentUser() *models.Identity {
	if f.identity == nil {
		return nil
	}
	cp := *f.identity
	return &cp
}

func (f *fakeAuth) State() services.State { return f.state }
func (f *fakeAuth) Pending() *models.PendingLogin { return f.pending }

type fakeNotifier struct {
	prefs    models.NotificationPreferences
	items    []models.NotificationItem
	cleared  bool
	setCalls int
}

func (n *fakeNotifier) Preferences(ctx context.Context) (models.NotificationPreferences, error) {
	return n.prefs, nil
}

func (n *fakeNotifier) SetPreferences(ctx context.Context, p models.NotificationPreferences) error {
	n.prefs = p
	n.setCalls++
	return nil
}

func (n *fakeNotifier) Append(ctx context.Context, message string) (models.NotificationItem, error) {
	it := models.NotificationItem{ID: int64(len(n.items) + 1), Message: message, Timestamp: "2024-03-01T12:00:00.000Z"}
	n.items = append(n.items, it)
	return it, nil
}

func (n *fakeNotifier) List(ctx context.Context) ([]models.NotificationItem, error) {
	return n.items, nil
}

func (n *fakeNotifier) Clear(ctx context.Context) error {
	n.items = nil
	n.cleared = true
	return nil
}

func newTestApp(f *fakeAuth) (*App, *fakeNotifier) {
	n := &fakeNotifier{prefs: models.DefaultNotificationPreferences()}
	return &App{authService: f, notifications: n, log: logging.Nop(), out: io.Discard}, n
}

func signedIn() *fakeAuth {
	id := bob
	return &fakeAuth{state: services.StateAuthenticated, identity: &id}
}

func TestLogin_PasswordThenOTP(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"a@b.com", "123456"}, "pw")

	f := &fakeAuth{}
	a, n := newTestApp(f)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "a@b.com", f.loginEmail)
	assert.Equal(t, "pw", f.loginPass)
	assert.Equal(t, []string{"abc:123456"}, f.verifyOTPs)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, *out, "Welcome back, bob!")
	require.Len(t, n.items, 1)
	assert.Equal(t, "Signed in as bob.", n.items[0].Message)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"a@b.com"}, "pw")

	f := &fakeAuth{loginErr: &services.AuthError{Message: "Invalid credentials"}}
	a, n := newTestApp(f)

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, *out, "Invalid credentials")
	assert.Empty(t, f.verifyOTPs)
	assert.Empty(t, n.items)
}

func TestLogin_OTPRetriesAfterRejection(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"a@b.com", "12", "000000", "123456"}, "pw")

	f := &fakeAuth{verifyErrs: []error{
		&services.ValidationError{Field: "otp", Message: "OTP must be 6 digits"},
		&services.AuthError{Message: "Invalid or expired OTP"},
	}}
	a, _ := newTestApp(f)

	require.NoError(t, a.Login(context.Background()))
	assert.Len(t, f.verifyOTPs, 3)
	assert.Contains(t, *out, "OTP must be 6 digits")
	assert.Contains(t, *out, "Invalid or expired OTP")
	assert.True(t, a.isLoggedIn())
}

func TestLogin_EmptyOTPLeavesSignInPending(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"a@b.com", ""}, "pw")

	f := &fakeAuth{}
	a, _ := newTestApp(f)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, services.StateCredentialsSubmitted, f.state)
	assert.Contains(t, *out, "Sign in is still pending. Type 'otp' to enter the code.")
	assert.Equal(t, "(otp pending)", a.getStatus())

	stubInputs(t, []string{"123456"})
	require.NoError(t, a.VerifyOTP(context.Background()))
	assert.True(t, a.isLoggedIn())
}

func TestLogin_TransportErrorStopsRetrying(t *testing.T) {
	captureOutput(t)
	stubInputs(t, []string{"a@b.com", "123456"}, "pw")

	f := &fakeAuth{verifyErrs: []error{&services.TransportError{Err: api.ErrUnavailable}}}
	a, _ := newTestApp(f)

	err := a.Login(context.Background())
	var tErr *services.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Len(t, f.verifyOTPs, 1)
}

func TestVerifyOTP_NothingPending(t *testing.T) {
	out := captureOutput(t)
	a, _ := newTestApp(&fakeAuth{})

	require.NoError(t, a.VerifyOTP(context.Background()))
	assert.Contains(t, *out, "No sign in is pending. Use 'login' first.")
}

func TestSignup_DefaultsRoleToUser(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"amy", "amy@x.io", ""}, "secret1")

	f := &fakeAuth{}
	a, n := newTestApp(f)

	require.NoError(t, a.Signup(context.Background()))
	assert.Equal(t, []string{"amy", "amy@x.io", "secret1", "USER"}, f.signupArgs)
	assert.Contains(t, *out, "Account created. Signed in as amy.")
	require.Len(t, n.items, 1)
}

func TestSignup_ValidationErrorShown(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"amy", "amy@x.io", "ADMIN"}, "123")

	f := &fakeAuth{signupErr: &services.ValidationError{Field: "password", Message: "Must be at least 6 characters"}}
	a, _ := newTestApp(f)

	require.Error(t, a.Signup(context.Background()))
	assert.Contains(t, *out, "Must be at least 6 characters")
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	f := signedIn()
	a, _ := newTestApp(f)

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, *out, "Signed out.")
}

func TestLogout_StorageErrorStillSignsOut(t *testing.T) {
	captureOutput(t)
	f := signedIn()
	f.logoutErr = errors.New("disk gone")
	a, _ := newTestApp(f)

	require.Error(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestWhoami(t *testing.T) {
	out := captureOutput(t)

	a, _ := newTestApp(&fakeAuth{})
	require.NoError(t, a.Whoami(context.Background()))
	assert.Contains(t, *out, "Not signed in.")

	a, _ = newTestApp(signedIn())
	require.NoError(t, a.Whoami(context.Background()))
	assert.Contains(t, *out, "id: 1\nusername: bob\nemail: a@b.com\nrole: USER")
}

func TestProfile_UpdatesChangedFields(t *testing.T) {
	captureOutput(t)
	stubInputs(t, []string{"robert", ""})

	f := signedIn()
	a, n := newTestApp(f)

	require.NoError(t, a.Profile(context.Background()))
	require.NotNil(t, f.updated)
	assert.Equal(t, models.Identity{UserID: 1, Username: "robert", Email: "a@b.com", Role: models.RoleUser}, *f.updated)
	require.Len(t, n.items, 1)
}

func TestProfile_NoChanges(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"", ""})

	f := signedIn()
	a, _ := newTestApp(f)

	require.NoError(t, a.Profile(context.Background()))
	assert.Nil(t, f.updated)
	assert.Contains(t, *out, "Nothing changed.")
}

func TestProfile_RequiresSignIn(t *testing.T) {
	out := captureOutput(t)
	a, _ := newTestApp(&fakeAuth{})

	require.ErrorIs(t, a.Profile(context.Background()), services.ErrNotAuthenticated)
	assert.Contains(t, *out, "Not signed in.")
}

func TestForgotPassword(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"a@b.com"})

	f := &fakeAuth{forgotMsg: "Password reset link sent to email"}
	a, n := newTestApp(f)

	require.NoError(t, a.ForgotPassword(context.Background()))
	assert.Equal(t, "a@b.com", f.forgotEmail)
	assert.Contains(t, *out, "Password reset link sent to email")
	require.Len(t, n.items, 1)
}

func TestResetPassword(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"rt"}, "newpass", "newpass")

	f := &fakeAuth{}
	a, _ := newTestApp(f)

	require.NoError(t, a.ResetPassword(context.Background()))
	assert.Equal(t, []string{"rt", "newpass", "newpass"}, f.resetArgs)
	assert.Contains(t, *out, "Password reset successfully")
}

func TestReport_Kinds(t *testing.T) {
	out := captureOutput(t)
	a, _ := newTestApp(&fakeAuth{})
	ctx := context.Background()

	_ = a.report(ctx, services.ErrBusy)
	_ = a.report(ctx, &services.TransportError{Err: api.ErrUnavailable})
	_ = a.report(ctx, services.ErrAlreadyAuthenticated)
	_ = a.report(ctx, errors.New("boom"))

	assert.Equal(t, []string{
		"Please wait, a request is still in progress.",
		"Unable to reach the server, please try again.",
		"Already signed in, log out first.",
		"Error: boom",
	}, *out)
}
