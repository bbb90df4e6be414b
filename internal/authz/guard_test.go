package authz

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"claimdesk/internal/models"
	"claimdesk/internal/token"
)

func testGuard(t *testing.T) (*Guard, *token.Codec) {
	t.Helper()
	c := token.New("guard-test-secret", time.Hour)
	return NewGuard(c, Default()), c
}

func bearerReq(method, path, tok string) *http.Request {
	r := httptest.NewRequest(method, path, nil)
	if tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	return r
}

func TestAuthorizeMissingCredential(t *testing.T) {
	g, _ := testGuard(t)
	_, err := g.Authorize(bearerReq(http.MethodPost, "/employee/claims", ""))
	if !errors.Is(err, ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential, got %v", err)
	}

	// неверная схема — тоже missing
	r := httptest.NewRequest(http.MethodPost, "/employee/claims", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if _, err := g.Authorize(r); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("expected ErrMissingCredential for non-bearer scheme, got %v", err)
	}
}

func TestAuthorizeInvalidToken(t *testing.T) {
	g, _ := testGuard(t)
	_, err := g.Authorize(bearerReq(http.MethodPost, "/employee/claims", "not-a-token"))
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthorizeRoleMismatch(t *testing.T) {
	g, c := testGuard(t)
	tok, err := c.Issue("emp@corp.test", models.RoleEmployee)
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Authorize(bearerReq(http.MethodPut, "/agent/queries/respond/42", tok))
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthorizeSuccess(t *testing.T) {
	g, c := testGuard(t)
	tok, err := c.Issue("agent@corp.test", models.RoleAgent)
	if err != nil {
		t.Fatal(err)
	}
	p, err := g.Authorize(bearerReq(http.MethodPut, "/agent/queries/respond/42", tok))
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if p == nil || p.Subject != "agent@corp.test" || p.Role != models.RoleAgent {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestAuthorizePublicRouteWithoutToken(t *testing.T) {
	g, _ := testGuard(t)
	p, err := g.Authorize(bearerReq(http.MethodPost, "/auth/login", ""))
	if err != nil || p != nil {
		t.Errorf("public route: got (%v, %v), want (nil, nil)", p, err)
	}
}

func TestMiddlewareStatusCodes(t *testing.T) {
	g, c := testGuard(t)
	agentTok, _ := c.Issue("agent@corp.test", models.RoleAgent)
	empTok, _ := c.Issue("emp@corp.test", models.RoleEmployee)

	var gotPrincipal *Principal
	h := g.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFrom(r.Context()); ok {
			gotPrincipal = &p
		}
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name string
		req  *http.Request
		want int
	}{
		{"no token", bearerReq(http.MethodPut, "/agent/queries/respond/1", ""), http.StatusUnauthorized},
		{"bad token", bearerReq(http.MethodPut, "/agent/queries/respond/1", "xx"), http.StatusUnauthorized},
		{"wrong role", bearerReq(http.MethodPut, "/agent/queries/respond/1", empTok), http.StatusForbidden},
		{"agent ok", bearerReq(http.MethodPut, "/agent/queries/respond/1", agentTok), http.StatusOK},
		{"public", bearerReq(http.MethodGet, "/healthz", ""), http.StatusOK},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, tc.req)
		if rec.Code != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, rec.Code, tc.want)
		}
	}

	if gotPrincipal == nil || gotPrincipal.Subject != "agent@corp.test" {
		t.Errorf("principal not attached to context: %+v", gotPrincipal)
	}
}
