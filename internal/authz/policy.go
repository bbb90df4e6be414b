package authz

import (
	"net/http"
	"strings"

	"claimdesk/internal/models"
)

// Requirement — что требуется от запроса: ничего (public),
// любая аутентификация или конкретная роль.
type Requirement struct {
	kind reqKind
	role models.Role
}

type reqKind int

const (
	kindPublic reqKind = iota
	kindAnyAuthenticated
	kindRole
)

func Public() Requirement           { return Requirement{kind: kindPublic} }
func AnyAuthenticated() Requirement { return Requirement{kind: kindAnyAuthenticated} }
func RoleOf(r models.Role) Requirement {
	return Requirement{kind: kindRole, role: r}
}

func (q Requirement) IsPublic() bool { return q.kind == kindPublic }

// SatisfiedBy — проверка роли против требования.
func (q Requirement) SatisfiedBy(role models.Role) bool {
	switch q.kind {
	case kindPublic, kindAnyAuthenticated:
		return true
	default:
		return q.role == role
	}
}

// Rule — одно правило маршрутизации доступа.
// Prefix с завершающим "/" матчится как префикс пути, без — точно.
// Пустой Method — любой метод.
type Rule struct {
	Method string
	Prefix string
	Req    Requirement
}

func (rl Rule) matches(method, path string) bool {
	if rl.Method != "" && rl.Method != method {
		return false
	}
	if strings.HasSuffix(rl.Prefix, "/") {
		return strings.HasPrefix(path, rl.Prefix)
	}
	return path == rl.Prefix
}

// Policy — упорядоченная таблица правил, первый матч выигрывает.
// Более специфичные правила обязаны стоять раньше широких: например,
// "/agent/queries/respond/" (AGENT) стоит выше публичного "/agent/".
type Policy struct {
	rules []Rule
}

func NewPolicy(rules []Rule) *Policy { return &Policy{rules: rules} }

// Default — итоговая (ужесточённая) таблица доступа. Мутирующие заявку
// и отвечающие на запросы маршруты никогда не публичны.
func Default() *Policy {
	return NewPolicy([]Rule{
		{http.MethodGet, "/healthz", Public()},
		{http.MethodGet, "/readyz", Public()},

		{"", "/auth/register", Public()},
		{"", "/auth/login", Public()},
		{http.MethodGet, "/auth/employees", RoleOf(models.RoleHr)},

		{"", "/agent/register", Public()},
		{"", "/agent/login", Public()},
		{"", "/agent/queries/respond/", RoleOf(models.RoleAgent)},
		{"", "/agent/queries/pending/", RoleOf(models.RoleAgent)},
		{"", "/agent/queries/all/", RoleOf(models.RoleAgent)},
		{http.MethodPost, "/agent/availability", RoleOf(models.RoleAgent)},
		// чтение списка агентов и их доступности — свободное
		{"", "/agent/", Public()},
		{http.MethodGet, "/agent", Public()},

		{"", "/hr/login", Public()},
		{"", "/hr/", RoleOf(models.RoleHr)},

		{"", "/admin/login", Public()},
		{"", "/admin/", RoleOf(models.RoleAdmin)},

		{http.MethodGet, "/policies", Public()},

		{"", "/employee/", RoleOf(models.RoleEmployee)},
	})
}

// RequiredFor — чистый lookup требования для пути.
// Нет правила — значит любой аутентифицированный.
func (p *Policy) RequiredFor(method, path string) Requirement {
	for _, rl := range p.rules {
		if rl.matches(method, path) {
			return rl.Req
		}
	}
	return AnyAuthenticated()
}
