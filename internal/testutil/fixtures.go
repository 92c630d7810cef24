package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"socialregistry/internal/authz"
	"socialregistry/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with the given role, a hashed
// password ("password123"), and a unique username.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@test.com", n),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// Principal builds the authz principal for a user fixture.
func Principal(user *models.User) authz.Principal {
	return authz.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		IsActive: user.IsActive,
	}
}

// CreateTestHousehold creates a household with a unique national ID and no members.
func CreateTestHousehold(t *testing.T, db *gorm.DB, registeredBy uint) *models.Household {
	t.Helper()

	household := &models.Household{
		HouseholdNationalID: fmt.Sprintf("HH-TEST-%d", nextID()),
		RegistrationDate:    time.Now(),
		Address:             "12 Test Street",
		TotalMonthlyIncome:  decimal.Zero,
		Status:              models.HouseholdStatusActive,
		RegisteredBy:        registeredBy,
	}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	return household
}

// CreateTestMember creates a member of the given household. income may be
// nil for a member with no recorded income.
func CreateTestMember(t *testing.T, db *gorm.DB, householdID uint, income *decimal.Decimal) *models.HouseholdMember {
	t.Helper()

	n := nextID()
	member := &models.HouseholdMember{
		HouseholdID:   householdID,
		NationalID:    fmt.Sprintf("NID-TEST-%d", n),
		FirstName:     fmt.Sprintf("First%d", n),
		LastName:      fmt.Sprintf("Last%d", n),
		DateOfBirth:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyIncome: income,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// Money parses a decimal amount for use in fixtures and assertions.
func Money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// MoneyPtr parses a decimal amount and returns a pointer to it.
func MoneyPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := Money(t, s)
	return &d
}
