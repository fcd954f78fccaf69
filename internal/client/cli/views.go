package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lostfound/internal/client/guard"
)

// Open navigates to path, applying the route guard.
func (a *App) Open(ctx context.Context, path string) error {
	u := a.authService.CurrentUser()

	v, known := guard.Lookup(path)
	d := guard.Resolve(u, path)
	a.log.Debug(ctx, "route resolved", "path", path, "decision", d.String())

	switch {
	case d.Allow:
		printlnFn(fmt.Sprintf("== %s (%s) ==", v.Title, v.Path))
	case !known:
		printlnFn(fmt.Sprintf("No such view %q, redirected to %s.", path, d.RedirectTo))
	case d.RedirectTo == guard.PathLogin:
		printlnFn(fmt.Sprintf("%s requires signing in, redirected to %s.", v.Title, d.RedirectTo))
	default:
		printlnFn(fmt.Sprintf("%s is not available to your role, redirected to %s.", v.Title, d.RedirectTo))
	}
	return nil
}

// Views lists the navigation table with the current identity's access.
func (a *App) Views(ctx context.Context) error {
	u := a.authService.CurrentUser()
	for _, v := range guard.Views {
		mark := " "
		if !guard.Resolve(u, v.Path).Allow {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("[%s] %-18s %s", mark, v.Path, v.Title))
	}
	return nil
}
