package authz

import (
	"context"

	"claimdesk/internal/models"
)

// Principal — аутентифицированная личность одного запроса.
// Живёт только в контексте запроса; никакого общего security-контекста
// на поток (как было в исходной системе) здесь нет.
type Principal struct {
	Subject string // email учётки
	Role    models.Role
}

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
