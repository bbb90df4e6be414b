package models

import "time"

const PolicyStatusActive = "Active"

// Policy — страховой полис, против которого подаются заявки.
type Policy struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PolicyName        string    `gorm:"size:255;not null" json:"policy_name"`
	PolicyType        string    `gorm:"size:128;not null" json:"policy_type"` // Health, Life, Accident, ...
	ProviderName      string    `gorm:"size:255;not null" json:"provider_name"`
	CoverageAmount    float64   `gorm:"not null" json:"coverage_amount"`
	MonthlyPremium    float64   `gorm:"not null" json:"monthly_premium"`
	RenewalDate       time.Time `json:"renewal_date"`
	PolicyStatus      string    `gorm:"size:64;not null;default:Active" json:"policy_status"`
	PolicyDescription string    `gorm:"type:text" json:"policy_description"`
}
