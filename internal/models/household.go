package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseholdStatus represents the lifecycle status of a household record.
type HouseholdStatus string

const (
	HouseholdStatusActive   HouseholdStatus = "active"
	HouseholdStatusInactive HouseholdStatus = "inactive"
)

// Household represents a registered dwelling unit and its occupants.
// TotalMonthlyIncome is derived: it always equals the sum of the members'
// monthly incomes and is never set directly by clients.
type Household struct {
	ID                  uint             `gorm:"primaryKey" json:"household_id"`
	HouseholdNationalID string           `gorm:"size:50;uniqueIndex" json:"household_national_id"`
	RegistrationDate    time.Time        `gorm:"type:date;not null" json:"registration_date"`
	Address             string           `gorm:"type:text;not null" json:"address"`
	PrimaryPhone        string           `gorm:"size:20" json:"primary_phone,omitempty"`
	SecondaryPhone      string           `gorm:"size:20" json:"secondary_phone,omitempty"`
	DwellingType        string           `gorm:"size:50" json:"dwelling_type,omitempty"`
	OwnershipStatus     string           `gorm:"size:50" json:"ownership_status,omitempty"`
	MonthlyRent         *decimal.Decimal `gorm:"type:numeric(10,2)" json:"monthly_rent,omitempty"`
	NumberOfRooms       int              `json:"number_of_rooms"`
	HasElectricity      bool             `json:"has_electricity"`
	HasWater            bool             `json:"has_water"`
	HasSanitation       bool             `json:"has_sanitation"`
	TotalMonthlyIncome  decimal.Decimal  `gorm:"type:numeric(12,2)" json:"total_monthly_income"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Status              HouseholdStatus  `gorm:"size:20;default:'active'" json:"status"`
	RegisteredBy        uint             `json:"registered_by"`

	Members []HouseholdMember `gorm:"foreignKey:HouseholdID" json:"members,omitempty"`
}
