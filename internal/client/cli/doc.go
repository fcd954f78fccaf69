// Package cli provides the interactive lost and found command-line client.
//
// It wires configuration, local storage, the REST API client and the
// application services into a REPL. Typical flow: restore the persisted
// session, start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Sign up, two-step sign in (password, then a one-time code), sign out
//   - Profile edits and password recovery
//   - Role-gated navigation between views
//   - Local notification feed and notification settings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
