package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	VerifyOTP(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Open(ctx context.Context, path string) error
	Views(ctx context.Context) error
	Notifications(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
	Settings(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: signup, login, otp, forgot, reset, views, open <path>, notifications, exit"
	helpSignedIn  = "Available commands: whoami, profile, logout, views, open <path>, notifications, clear-notifications, settings [newItems|claimUpdates on|off], exit"
)

// runREPL starts a simple read-eval-print loop for the lost and found CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help                 show available commands
//	  - signup               create an account and sign in
//	  - login                submit email and password, then the one-time code
//	  - otp                  re-enter the one-time code for a pending sign in
//	  - forgot               request a password reset email
//	  - reset                set a new password with a reset token
//	  - exit | quit          leave the program
//
//	Signed in:
//	  - whoami               show the current identity
//	  - profile              edit username and email
//	  - logout               sign out
//	  - clear-notifications  empty the notification feed
//	  - settings             show or change notification settings
//
//	Always:
//	  - views                list views and whether they are accessible
//	  - open <path>          navigate to a view
//	  - notifications        show the notification feed
//
// Errors returned by command handlers are ignored here; handlers report them
// to the user themselves. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lf %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "otp":
			_ = a.VerifyOTP(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "views":
			_ = a.Views(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "notifications":
			_ = a.Notifications(ctx)

		case "clear-notifications":
			_ = a.ClearNotifications(ctx)

		case "settings":
			_ = a.Settings(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
