package services

import (
	"time"

	"github.com/shopspring/decimal"

	"socialregistry/internal/authz"
	"socialregistry/internal/models"
	"socialregistry/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string, role models.Role) (*models.User, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateUser(id uint, fields UserUpdateFields) (*models.User, error)
}

// UserUpdateFields holds the optional fields of a partial user update.
// Nil fields are left untouched.
type UserUpdateFields struct {
	Email    *string
	Role     *models.Role
	IsActive *bool
}

// MemberInput describes one household member at registration time.
type MemberInput struct {
	NationalID         string
	FirstName          string
	LastName           string
	DateOfBirth        time.Time
	Gender             string
	PhoneNumber        string
	RelationshipToHead string
	MaritalStatus      string
	EducationLevel     string
	EmploymentStatus   string
	MonthlyIncome      *decimal.Decimal
	IsHouseholdHead    bool
	DisabilityStatus   string
}

// HouseholdInput describes a household registration request: the household
// base fields plus its members in input order.
type HouseholdInput struct {
	HouseholdNationalID string
	Address             string
	PrimaryPhone        string
	SecondaryPhone      string
	DwellingType        string
	OwnershipStatus     string
	MonthlyRent         *decimal.Decimal
	NumberOfRooms       int
	HasElectricity      bool
	HasWater            bool
	HasSanitation       bool
	Members             []MemberInput
}

// HouseholdUpdateFields holds the optional fields of a partial household
// update. Nil fields are left untouched. The derived total income is not
// updatable here.
type HouseholdUpdateFields struct {
	Address         *string
	PrimaryPhone    *string
	SecondaryPhone  *string
	DwellingType    *string
	OwnershipStatus *string
	MonthlyRent     *decimal.Decimal
	NumberOfRooms   *int
	HasElectricity  *bool
	HasWater        *bool
	HasSanitation   *bool
	Status          *models.HouseholdStatus
}

// MemberUpdateFields holds the optional fields of a partial member update.
type MemberUpdateFields struct {
	FirstName          *string
	LastName           *string
	Gender             *string
	PhoneNumber        *string
	RelationshipToHead *string
	MaritalStatus      *string
	EducationLevel     *string
	EmploymentStatus   *string
	MonthlyIncome      *decimal.Decimal
	IsHouseholdHead    *bool
	DisabilityStatus   *string
}

// SearchFilter holds the optional household search filters. Every provided
// filter is a case-insensitive substring match; filters combine with AND.
type SearchFilter struct {
	NationalID string
	Phone      string
	MemberName string
}

// HouseholdServicer defines the contract for household-related business logic.
// All operations take the authenticated principal; write operations enforce
// the role policy before touching the store.
type HouseholdServicer interface {
	Register(p authz.Principal, input HouseholdInput) (*models.Household, error)
	Get(p authz.Principal, id uint) (*models.Household, error)
	List(p authz.Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Household], error)
	Update(p authz.Principal, id uint, fields HouseholdUpdateFields) (*models.Household, error)
	UpdateMember(p authz.Principal, householdID, memberID uint, fields MemberUpdateFields) (*models.HouseholdMember, error)
	Search(p authz.Principal, filter SearchFilter) ([]models.Household, error)
}
