package guard

import (
	"testing"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/stretchr/testify/assert"
)

var (
	user  = &models.Identity{UserID: 1, Username: "bob", Email: "a@b.com", Role: models.RoleUser}
	admin = &models.Identity{UserID: 2, Username: "amy", Email: "amy@x.io", Role: models.RoleAdmin}
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		identity *models.Identity
		required []models.Role
		want     Decision
	}{
		{"anonymous", nil, []models.Role{models.RoleAdmin}, Decision{RedirectTo: PathLogin}},
		{"anonymous any role", nil, nil, Decision{RedirectTo: PathLogin}},
		{"wrong role", user, []models.Role{models.RoleAdmin}, Decision{RedirectTo: PathHome}},
		{"right role", admin, []models.Role{models.RoleAdmin}, Decision{Allow: true}},
		{"one of several", user, []models.Role{models.RoleAdmin, models.RoleUser}, Decision{Allow: true}},
		{"any role", user, nil, Decision{Allow: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.identity, tt.required...))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path     string
		identity *models.Identity
		want     Decision
	}{
		{"/", nil, Decision{Allow: true}},
		{"/faqs", nil, Decision{Allow: true}},
		{"/login", nil, Decision{Allow: true}},
		{"/account", nil, Decision{RedirectTo: PathLogin}},
		{"/account", user, Decision{Allow: true}},
		{"/notifications/", user, Decision{Allow: true}},
		{"/manage-claims", nil, Decision{RedirectTo: PathLogin}},
		{"/manage-claims", user, Decision{RedirectTo: PathHome}},
		{"/manage-claims", admin, Decision{Allow: true}},
		{"/view-users?page=2", admin, Decision{Allow: true}},
		{"/view-users", user, Decision{RedirectTo: PathHome}},
		{"/nope", admin, Decision{RedirectTo: PathLogin}},
		{"/messaging", nil, Decision{RedirectTo: PathLogin}},
		{"/messaging", user, Decision{Allow: true}},
		{"/claim-confirmation/7", nil, Decision{Allow: true}},
		{"/claim-confirmation/7", user, Decision{Allow: true}},
		{"/claim-confirmation/7/extra", user, Decision{RedirectTo: PathLogin}},
		{"/claim-confirmation", user, Decision{RedirectTo: PathLogin}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.identity, tt.path))
		})
	}
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("")
	assert.True(t, ok)
	assert.Equal(t, "/", v.Path)

	_, ok = Lookup("/does-not-exist")
	assert.False(t, ok)

	v, ok = Lookup("/claim-confirmation/42?from=mail")
	assert.True(t, ok)
	assert.Equal(t, "Claim confirmation", v.Title)
}

func TestViews_PathsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, v := range Views {
		assert.False(t, seen[v.Path], "duplicate view %s", v.Path)
		seen[v.Path] = true
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allow", Decision{Allow: true}.String())
	assert.Equal(t, "redirect /login", Decision{RedirectTo: PathLogin}.String())
}
