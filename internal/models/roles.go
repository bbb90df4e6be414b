package models

// Role — плоская роль учётной записи. Других уровней доступа нет.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHr       Role = "HR"
	RoleAgent    Role = "AGENT"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid сообщает, известна ли роль системе.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleHr, RoleAgent, RoleEmployee:
		return true
	}
	return false
}
