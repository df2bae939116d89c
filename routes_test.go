package authgate

import "testing"

func TestRouteTablePublicMatching(t *testing.T) {
	table := newRouteTable(RouteConfig{
		PublicRoutes: []string{"/login", "/pwd/reset", "/swagger-ui/*", "/v3/api-docs/*"},
		DefaultRole:  "USER",
	})

	public := []string{
		"/login",
		"/pwd/reset",
		"/swagger-ui",
		"/swagger-ui/index.html",
		"/v3/api-docs/swagger-config",
	}
	for _, path := range public {
		if !table.IsPublic(path) {
			t.Fatalf("IsPublic(%q) = false, want true", path)
		}
	}

	private := []string{
		"/",
		"/loginx",
		"/login/extra",
		"/profile",
		"/swagger-uix",
	}
	for _, path := range private {
		if table.IsPublic(path) {
			t.Fatalf("IsPublic(%q) = true, want false", path)
		}
	}
}

func TestRouteTableMostSpecificWins(t *testing.T) {
	table := newRouteTable(RouteConfig{
		RequiredRoles: map[string][]string{
			"/admin/*":       {"ADMIN"},
			"/admin/audit/*": {"AUDITOR"},
			"/admin/audit":   {"CHIEF_AUDITOR"},
		},
		DefaultRole: "USER",
	})

	cases := []struct {
		path string
		want string
	}{
		{"/admin", "ADMIN"},
		{"/admin/users", "ADMIN"},
		{"/admin/audit", "CHIEF_AUDITOR"},
		{"/admin/audit/logs", "AUDITOR"},
		{"/profile", "USER"},
	}
	for _, tc := range cases {
		got := table.RequiredRoles(tc.path)
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("RequiredRoles(%q) = %v, want [%s]", tc.path, got, tc.want)
		}
	}
}

func TestRouteTableAuthorize(t *testing.T) {
	table := newRouteTable(RouteConfig{
		PublicRoutes: []string{"/login"},
		RequiredRoles: map[string][]string{
			"/admin/*": {"ADMIN", "ROOT"},
		},
		DefaultRole: "USER",
	})

	admin := Principal{Subject: "u1", Roles: []string{"ADMIN"}}
	user := Principal{Subject: "u2", Roles: []string{"USER"}}
	none := Principal{Subject: "u3"}

	if !table.Authorize(admin, "/admin/users") {
		t.Fatal("ADMIN denied on /admin/users")
	}
	if table.Authorize(user, "/admin/users") {
		t.Fatal("USER allowed on /admin/users")
	}
	if !table.Authorize(user, "/profile") {
		t.Fatal("USER denied on default-role route")
	}
	if table.Authorize(none, "/profile") {
		t.Fatal("principal with no roles allowed on default-role route")
	}
	// Public routes bypass role checks entirely.
	if !table.Authorize(none, "/login") {
		t.Fatal("public route denied")
	}
}

func TestPrincipalRoleChecks(t *testing.T) {
	p := Principal{Subject: "u1", Roles: []string{"USER", "ADMIN"}}

	if !p.HasRole("ADMIN") {
		t.Fatal("HasRole(ADMIN) = false")
	}
	if p.HasRole("admin") {
		t.Fatal("role names must match exactly")
	}
	if !p.HasAnyRole([]string{"ROOT", "USER"}) {
		t.Fatal("HasAnyRole missed an intersection")
	}
	if p.HasAnyRole(nil) {
		t.Fatal("HasAnyRole(nil) = true")
	}
}
