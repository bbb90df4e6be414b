package models

import "time"

const (
	QueryStatusPending  = "pending"
	QueryStatusResolved = "resolved"
)

// EmployeeQuery — вопрос сотрудника конкретному агенту.
// pending -> resolved (отвечает только назначенный агент), других переходов нет.
type EmployeeQuery struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `json:"employee,omitempty"`

	AgentID uint  `gorm:"index;not null" json:"agent_id"`
	Agent   Agent `json:"agent,omitempty"`

	QueryText string  `gorm:"type:text;not null" json:"query_text"`
	Response  *string `gorm:"type:text" json:"response,omitempty"`
	Status    string  `gorm:"size:32;not null;default:pending" json:"status"`
}
