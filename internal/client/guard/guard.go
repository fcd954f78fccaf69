// Package guard decides whether the current identity may open a view.
package guard

import (
	"strings"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
)

const (
	PathLogin = "/login"
	PathHome  = "/"
)

// Decision is the outcome of an authorization check. When Allow is false,
// RedirectTo names the view to show instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(path string) Decision { return Decision{RedirectTo: path} }

func (d Decision) String() string {
	if d.Allow {
		return "allow"
	}
	return "redirect " + d.RedirectTo
}

// Authorize gates a view on identity. A nil identity is sent to the login
// view, a role outside required is sent home. No required roles means any
// signed-in identity is enough.
func Authorize(identity *models.Identity, required ...models.Role) Decision {
	if identity == nil {
		return redirect(PathLogin)
	}
	if len(required) > 0 && !identity.HasRole(required...) {
		return redirect(PathHome)
	}
	return allow()
}

// Access describes who may open a view.
type Access struct {
	// Protected views need a signed-in identity.
	Protected bool
	// Roles narrows a protected view; empty means any role.
	Roles []models.Role
}

// View is one entry of the navigation table.
type View struct {
	Path   string
	Title  string
	Access Access
}

var (
	public    = Access{}
	signedIn  = Access{Protected: true}
	adminOnly = Access{Protected: true, Roles: []models.Role{models.RoleAdmin}}
)

// Views lists every view the client knows about, in menu order.
var Views = []View{
	{Path: "/", Title: "Home", Access: public},
	{Path: "/lost-items", Title: "Lost items", Access: public},
	{Path: "/found-items", Title: "Found items", Access: public},
	{Path: "/report-found", Title: "Report a found item", Access: public},
	{Path: "/report-missing", Title: "Report a missing item", Access: public},
	{Path: "/faqs", Title: "FAQs", Access: public},
	{Path: "/account", Title: "My account", Access: signedIn},
	{Path: "/notifications", Title: "Notification settings", Access: signedIn},
	{Path: "/messaging", Title: "Messages", Access: signedIn},
	{Path: "/claim-confirmation/:id", Title: "Claim confirmation", Access: public},
	{Path: "/manage-claims", Title: "Manage claims", Access: adminOnly},
	{Path: "/view-users", Title: "View users", Access: adminOnly},
	{Path: PathLogin, Title: "Sign in", Access: public},
	{Path: "/signup", Title: "Sign up", Access: public},
	{Path: "/forgot-password", Title: "Forgot password", Access: public},
	{Path: "/reset-password", Title: "Reset password", Access: public},
}

// Lookup finds the view registered for path. Trailing slashes and a query
// string are ignored. A ":name" segment in a registered path matches any
// single non-empty segment.
func Lookup(path string) (View, bool) {
	path, _, _ = strings.Cut(path, "?")
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		path = "/"
	}
	for _, v := range Views {
		if match(v.Path, path) {
			return v, true
		}
	}
	return View{}, false
}

func match(pattern, path string) bool {
	if !strings.Contains(pattern, "/:") {
		return pattern == path
	}
	want := strings.Split(pattern, "/")
	got := strings.Split(path, "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

// Resolve decides what happens when identity navigates to path. Unknown paths
// fall through to the login view.
func Resolve(identity *models.Identity, path string) Decision {
	v, ok := Lookup(path)
	if !ok {
		return redirect(PathLogin)
	}
	if !v.Access.Protected {
		return allow()
	}
	return Authorize(identity, v.Access.Roles...)
}
