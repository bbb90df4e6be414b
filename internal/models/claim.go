package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ClaimStatusPending  = "Pending"
	ClaimStatusApproved = "Approved"
	ClaimStatusRejected = "Rejected"
)

// Claim — заявка сотрудника на выплату по полису.
// Статусная машина: Pending -> Approved | Rejected, оба конечные.
type Claim struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Status      string  `gorm:"size:32;not null;default:Pending" json:"status"`
	Remarks     string  `gorm:"type:text" json:"remarks"`
	ClaimDate   time.Time `json:"claim_date"`

	EmployeeID uint     `gorm:"index;not null" json:"employee_id"`
	Employee   Employee `json:"employee,omitempty"`

	PolicyID uint   `gorm:"index;not null" json:"policy_id"`
	Policy   Policy `json:"policy,omitempty"`

	// Назначается балансировщиком один раз при создании; NULL — HR-ов не было.
	AssignedHrID *uint `gorm:"index" json:"assigned_hr_id,omitempty"`
	AssignedHr   *Hr   `json:"assigned_hr,omitempty"`

	// Пути к загруженным документам (в порядке загрузки).
	Documents datatypes.JSONSlice[string] `json:"documents"`
}
