package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// maxOTPAttempts bounds how often the code prompt repeats after a rejected code.
const maxOTPAttempts = 3

// report prints err the way the user should see it and returns it unchanged.
func (a *App) report(ctx context.Context, err error) error {
	var (
		vErr *services.ValidationError
		aErr *services.AuthError
		tErr *services.TransportError
	)
	switch {
	case errors.As(err, &vErr):
		printlnFn(vErr.Message)
	case errors.As(err, &aErr):
		printlnFn(aErr.Message)
	case errors.As(err, &tErr):
		printlnFn(tErr.Error())
	case errors.Is(err, services.ErrBusy):
		printlnFn("Please wait, a request is still in progress.")
	case errors.Is(err, services.ErrAlreadyAuthenticated), errors.Is(err, services.ErrNotAuthenticated):
		printlnFn(capitalize(err.Error()) + ".")
	default:
		a.log.Error(ctx, "command failed", "error", err)
		printlnFn("Error:", err)
	}
	return err
}

// notify appends to the local feed. A failure is logged, never shown.
func (a *App) notify(ctx context.Context, msg string) {
	if _, err := a.notifications.Append(ctx, msg); err != nil {
		a.log.Warn(ctx, "failed to record notification", "error", err)
	}
}

// Signup prompts for the account fields and creates the account. On success
// the new account is signed in.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password (at least 6 characters)", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	role, err := getSimpleText(a.reader, "Role (USER or ADMIN, empty for USER)", a.out)
	if err != nil {
		return err
	}
	if role == "" {
		role = "USER"
	}

	if err := a.authService.Signup(ctx, username, email, string(password), role); err != nil {
		return a.report(ctx, err)
	}

	u := a.authService.CurrentUser()
	printlnFn(fmt.Sprintf("Account created. Signed in as %s.", u.Username))
	a.notify(ctx, fmt.Sprintf("Welcome, %s! Your account has been created.", u.Username))
	return nil
}

// Login prompts for email and password, then for the one-time code that the
// backend sends out.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.authService.Login(ctx, email, string(password)); err != nil {
		return a.report(ctx, err)
	}

	printlnFn("A one-time code has been sent to your email.")
	return a.VerifyOTP(ctx)
}

// VerifyOTP prompts for the one-time code of the pending sign in. An empty
// answer leaves the sign in pending so it can be resumed with "otp".
func (a *App) VerifyOTP(ctx context.Context) error {
	pending := a.authService.Pending()
	if pending == nil {
		printlnFn("No sign in is pending. Use 'login' first.")
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < maxOTPAttempts; attempt++ {
		otp, err := getSimpleText(a.reader, "Enter the 6-digit code", a.out)
		if err != nil {
			return err
		}
		if otp == "" {
			printlnFn("Sign in is still pending. Type 'otp' to enter the code.")
			return nil
		}

		lastErr = a.authService.VerifyOTP(ctx, pending.TempToken, otp)
		if lastErr == nil {
			u := a.authService.CurrentUser()
			printlnFn(fmt.Sprintf("Welcome back, %s!", u.Username))
			a.notify(ctx, fmt.Sprintf("Signed in as %s.", u.Username))
			return nil
		}
		_ = a.report(ctx, lastErr)

		var vErr *services.ValidationError
		var aErr *services.AuthError
		if !errors.As(lastErr, &vErr) && !errors.As(lastErr, &aErr) {
			return lastErr
		}
	}
	return lastErr
}

// Logout signs out locally. The in-memory session is gone even if removing
// the stored copy fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		printlnFn("Signed out, but the stored session could not be removed:", err)
		return err
	}
	printlnFn("Signed out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		printlnFn("Not signed in.")
		return nil
	}
	printlnFn(fmt.Sprintf("id: %d\nusername: %s\nemail: %s\nrole: %s", u.UserID, u.Username, u.Email, u.Role))
	return nil
}

// Profile edits the local copy of the signed-in identity. Empty answers keep
// the current value.
func (a *App) Profile(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		return a.report(ctx, services.ErrNotAuthenticated)
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s]", u.Username), a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", u.Email), a.out)
	if err != nil {
		return err
	}

	updated := *u
	if username != "" {
		updated.Username = username
	}
	if email != "" {
		updated.Email = email
	}
	if updated == *u {
		printlnFn("Nothing changed.")
		return nil
	}

	if err := a.authService.UpdateUser(ctx, updated); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Profile updated.")
	a.notify(ctx, "Your profile has been updated.")
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter the email of your account", a.out)
	if err != nil {
		return err
	}

	msg, err := a.authService.ForgotPassword(ctx, email)
	if err != nil {
		return a.report(ctx, err)
	}
	if msg == "" {
		msg = "Check your email for a reset link."
	}
	printlnFn(msg)
	a.notify(ctx, fmt.Sprintf("Password reset requested for %s.", strings.TrimSpace(email)))
	return nil
}

func (a *App) ResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter the reset token from the email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter new password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	confirm, err := getPassword(a.reader, "Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	msg, err := a.authService.ResetPassword(ctx, token, string(password), string(confirm))
	if err != nil {
		return a.report(ctx, err)
	}
	if msg == "" {
		msg = "Password has been reset."
	}
	printlnFn(msg)
	printlnFn("You can now sign in with your new password.")
	a.notify(ctx, "Your password has been reset.")
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
