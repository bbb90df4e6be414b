package authz

import (
	"net/http"
	"testing"

	"claimdesk/internal/models"
)

func TestRequiredForFirstMatchWins(t *testing.T) {
	p := Default()

	cases := []struct {
		method, path string
		role         models.Role
		want         bool
	}{
		// специфичное правило AGENT перекрывает публичный /agent/
		{http.MethodPut, "/agent/queries/respond/42", models.RoleEmployee, false},
		{http.MethodPut, "/agent/queries/respond/42", models.RoleAgent, true},
		{http.MethodGet, "/agent/queries/pending/7", models.RoleHr, false},
		{http.MethodGet, "/agent/queries/pending/7", models.RoleAgent, true},

		{http.MethodPost, "/agent/availability", models.RoleEmployee, false},
		{http.MethodPost, "/agent/availability", models.RoleAgent, true},

		{"PUT", "/hr/claims/3/approve", models.RoleEmployee, false},
		{"PUT", "/hr/claims/3/approve", models.RoleHr, true},

		{http.MethodPost, "/admin/policies", models.RoleHr, false},
		{http.MethodPost, "/admin/policies", models.RoleAdmin, true},

		{http.MethodPost, "/employee/claims", models.RoleAgent, false},
		{http.MethodPost, "/employee/claims", models.RoleEmployee, true},
	}
	for _, c := range cases {
		req := p.RequiredFor(c.method, c.path)
		if got := req.SatisfiedBy(c.role); got != c.want {
			t.Errorf("%s %s as %s: got %v, want %v", c.method, c.path, c.role, got, c.want)
		}
	}
}

func TestRequiredForPublicRoutes(t *testing.T) {
	p := Default()
	public := []struct{ method, path string }{
		{http.MethodGet, "/healthz"},
		{http.MethodPost, "/auth/login"},
		{http.MethodPost, "/auth/register"},
		{http.MethodPost, "/agent/login"},
		{http.MethodPost, "/hr/login"},
		{http.MethodPost, "/admin/login"},
		{http.MethodGet, "/policies"},
		{http.MethodGet, "/agent"},
		{http.MethodGet, "/agent/5/availability"},
		{http.MethodGet, "/agent/availability/all"},
		{http.MethodGet, "/agent/available"},
	}
	for _, c := range public {
		if !p.RequiredFor(c.method, c.path).IsPublic() {
			t.Errorf("%s %s: expected public", c.method, c.path)
		}
	}
}

func TestRequiredForDefaultsToAuthenticated(t *testing.T) {
	p := Default()
	req := p.RequiredFor(http.MethodGet, "/something/else")
	if req.IsPublic() {
		t.Fatal("unknown route must not be public")
	}
	// любая роль проходит, но аутентификация обязательна
	for _, role := range []models.Role{models.RoleAdmin, models.RoleHr, models.RoleAgent, models.RoleEmployee} {
		if !req.SatisfiedBy(role) {
			t.Errorf("any authenticated role must satisfy default, %s does not", role)
		}
	}
}

func TestSetAvailabilityGetStaysPublic(t *testing.T) {
	// POST гейтится ролью AGENT, GET по тому же префиксу остаётся читаемым
	p := Default()
	if p.RequiredFor(http.MethodGet, "/agent/availability/all").IsPublic() != true {
		t.Error("GET /agent/availability/all must be public")
	}
	if p.RequiredFor(http.MethodPost, "/agent/availability").SatisfiedBy(models.RoleEmployee) {
		t.Error("POST /agent/availability must require AGENT")
	}
}
