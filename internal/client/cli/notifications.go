package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/services"
)

func (a *App) Notifications(ctx context.Context) error {
	items, err := a.notifications.List(ctx)
	if err != nil {
		return a.report(ctx, err)
	}
	if len(items) == 0 {
		printlnFn("No notifications.")
		return nil
	}
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		printlnFn(fmt.Sprintf("#%d %s  %s", it.ID, it.Timestamp, it.Message))
	}
	return nil
}

func (a *App) ClearNotifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(ctx, services.ErrNotAuthenticated)
	}
	if err := a.notifications.Clear(ctx); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Notifications cleared.")
	return nil
}

// Settings prints the notification toggles, or flips one when called as
// "settings <newItems|claimUpdates> <on|off>".
func (a *App) Settings(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.report(ctx, services.ErrNotAuthenticated)
	}

	p, err := a.notifications.Preferences(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	if len(args) == 0 {
		printSettings(p)
		return nil
	}
	if len(args) != 2 {
		printlnFn("Usage: settings [newItems|claimUpdates on|off]")
		return nil
	}

	on, err := parseToggle(args[1])
	if err != nil {
		printlnFn(err.Error())
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "newitems":
		p.NewItems = on
	case "claimupdates":
		p.ClaimUpdates = on
	default:
		printlnFn("Unknown setting:", args[0])
		return nil
	}

	if err := a.notifications.SetPreferences(ctx, p); err != nil {
		return a.report(ctx, err)
	}
	printlnFn("Settings saved.")
	printSettings(p)
	return nil
}

func printSettings(p models.NotificationPreferences) {
	printlnFn(fmt.Sprintf("newItems: %s\nclaimUpdates: %s", toggle(p.NewItems), toggle(p.ClaimUpdates)))
}

func toggle(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var errBadToggle = errors.New("expected on or off")

func parseToggle(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, errBadToggle
	}
}
