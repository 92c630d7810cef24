package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HouseholdMember represents one occupant of a household. A member belongs
// to exactly one household; its national ID is unique across all members.
type HouseholdMember struct {
	ID                 uint             `gorm:"primaryKey" json:"member_id"`
	HouseholdID        uint             `gorm:"not null;index" json:"household_id"`
	NationalID         string           `gorm:"size:50;uniqueIndex" json:"national_id"`
	FirstName          string           `gorm:"size:50;not null" json:"first_name"`
	LastName           string           `gorm:"size:50;not null" json:"last_name"`
	DateOfBirth        time.Time        `gorm:"type:date;not null" json:"date_of_birth"`
	Gender             string           `gorm:"size:20" json:"gender,omitempty"`
	PhoneNumber        string           `gorm:"size:20" json:"phone_number,omitempty"`
	RelationshipToHead string           `gorm:"size:50" json:"relationship_to_head,omitempty"`
	MaritalStatus      string           `gorm:"size:20" json:"marital_status,omitempty"`
	EducationLevel     string           `gorm:"size:50" json:"education_level,omitempty"`
	EmploymentStatus   string           `gorm:"size:50" json:"employment_status,omitempty"`
	MonthlyIncome      *decimal.Decimal `gorm:"type:numeric(10,2)" json:"monthly_income,omitempty"`
	IsHouseholdHead    bool             `gorm:"default:false" json:"is_household_head"`
	DisabilityStatus   string           `gorm:"size:50" json:"disability_status,omitempty"`
}
