package authz

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"claimdesk/internal/models"
	"claimdesk/internal/token"
)

var (
	ErrMissingCredential = errors.New("missing bearer credential")
	ErrInvalidToken      = errors.New("invalid token")
	ErrForbidden         = errors.New("forbidden")
)

const bearerPrefix = "Bearer "

// Guard — единственная точка проверки доступа: достаёт bearer-токен,
// проверяет его кодеком и сверяет роль с таблицей Policy.
type Guard struct {
	codec  *token.Codec
	policy *Policy
}

func NewGuard(c *token.Codec, p *Policy) *Guard {
	return &Guard{codec: c, policy: p}
}

// Authorize возвращает принципала запроса либо одну из ошибок
// ErrMissingCredential / ErrInvalidToken / ErrForbidden.
// Для public-маршрутов принципала нет (nil, nil).
func (g *Guard) Authorize(r *http.Request) (*Principal, error) {
	req := g.policy.RequiredFor(r.Method, r.URL.Path)
	if req.IsPublic() {
		return nil, nil
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return nil, ErrMissingCredential
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
	if raw == "" {
		return nil, ErrMissingCredential
	}

	id, err := g.codec.Verify(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !req.SatisfiedBy(id.Role) {
		return nil, ErrForbidden
	}
	return &Principal{Subject: id.Subject, Role: id.Role}, nil
}

// Middleware завершает запрос 401/403 до бизнес-логики
// либо кладёт принципала в контекст.
func (g *Guard) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := g.Authorize(r)
			switch {
			case errors.Is(err, ErrMissingCredential):
				models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized",
					"authorization header missing or malformed", nil)
				return
			case errors.Is(err, ErrInvalidToken):
				models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized",
					err.Error(), nil)
				return
			case errors.Is(err, ErrForbidden):
				models.WriteProblem(w, http.StatusForbidden, "Forbidden",
					"role not allowed for this resource", nil)
				return
			case err != nil:
				models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error",
					"authorization failed", nil)
				return
			}
			if p != nil {
				r = r.WithContext(WithPrincipal(r.Context(), *p))
			}
			next.ServeHTTP(w, r)
		})
	}
}
