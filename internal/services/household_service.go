package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"socialregistry/internal/authz"
	apperrors "socialregistry/internal/errors"
	"socialregistry/internal/models"
	"socialregistry/internal/pagination"
)

// householdService handles household registration, updates, and search.
type householdService struct {
	db *gorm.DB
}

// NewHouseholdService creates a new HouseholdServicer.
func NewHouseholdService(db *gorm.DB) HouseholdServicer {
	return &householdService{db: db}
}

// Register registers a household together with its members as one atomic
// unit. The registration date and registering user are server-determined.
// The household's total monthly income is the exact decimal sum of the
// members' incomes, treating absent incomes as zero.
func (s *householdService) Register(p authz.Principal, input HouseholdInput) (*models.Household, error) {
	if !authz.Can(p, authz.ActionHouseholdCreate) {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to register households")
	}

	if input.HouseholdNationalID == "" || input.Address == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "household national ID and address are required")
	}
	for _, m := range input.Members {
		if m.NationalID == "" || m.FirstName == "" || m.LastName == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "member national ID, first name and last name are required")
		}
	}

	var count int64
	s.db.Model(&models.Household{}).
		Where("household_national_id = ?", input.HouseholdNationalID).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateHouseholdID
	}

	household := &models.Household{
		HouseholdNationalID: input.HouseholdNationalID,
		RegistrationDate:    time.Now(),
		Address:             input.Address,
		PrimaryPhone:        input.PrimaryPhone,
		SecondaryPhone:      input.SecondaryPhone,
		DwellingType:        input.DwellingType,
		OwnershipStatus:     input.OwnershipStatus,
		MonthlyRent:         input.MonthlyRent,
		NumberOfRooms:       input.NumberOfRooms,
		HasElectricity:      input.HasElectricity,
		HasWater:            input.HasWater,
		HasSanitation:       input.HasSanitation,
		TotalMonthlyIncome:  decimal.Zero,
		Status:              models.HouseholdStatusActive,
		RegisteredBy:        p.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(household).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		total := decimal.Zero
		for _, m := range input.Members {
			var memberCount int64
			if err := tx.Model(&models.HouseholdMember{}).
				Where("national_id = ?", m.NationalID).
				Count(&memberCount).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if memberCount > 0 {
				return apperrors.ErrDuplicateMemberID
			}

			member := models.HouseholdMember{
				HouseholdID:        household.ID,
				NationalID:         m.NationalID,
				FirstName:          m.FirstName,
				LastName:           m.LastName,
				DateOfBirth:        m.DateOfBirth,
				Gender:             m.Gender,
				PhoneNumber:        m.PhoneNumber,
				RelationshipToHead: m.RelationshipToHead,
				MaritalStatus:      m.MaritalStatus,
				EducationLevel:     m.EducationLevel,
				EmploymentStatus:   m.EmploymentStatus,
				MonthlyIncome:      m.MonthlyIncome,
				IsHouseholdHead:    m.IsHouseholdHead,
				DisabilityStatus:   m.DisabilityStatus,
			}
			if err := tx.Create(&member).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}

			if m.MonthlyIncome != nil {
				total = total.Add(*m.MonthlyIncome)
			}
		}

		if err := tx.Model(household).Update("total_monthly_income", total).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(household.ID)
}

// Get retrieves a household by ID with its members.
func (s *householdService) Get(p authz.Principal, id uint) (*models.Household, error) {
	if !authz.Can(p, authz.ActionHouseholdRead) {
		return nil, apperrors.ErrForbidden
	}
	return s.load(id)
}

// List retrieves a page of households in insertion order, members included.
func (s *householdService) List(p authz.Principal, page pagination.PageRequest) (*pagination.PageResponse[models.Household], error) {
	if !authz.Can(p, authz.ActionHouseholdList) {
		return nil, apperrors.ErrForbidden
	}

	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Household{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var households []models.Household
	if err := s.db.Preload("Members").
		Scopes(pagination.Paginate(page)).
		Find(&households).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(households, page.Skip, page.Limit, totalItems)
	return &result, nil
}

// Update applies a partial update to the household base fields. Members and
// the derived total income are untouched; the update timestamp refreshes.
func (s *householdService) Update(p authz.Principal, id uint, fields HouseholdUpdateFields) (*models.Household, error) {
	if !authz.Can(p, authz.ActionHouseholdUpdate) {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to update households")
	}

	var household models.Household
	if err := s.db.First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if fields.Address != nil {
		household.Address = *fields.Address
	}
	if fields.PrimaryPhone != nil {
		household.PrimaryPhone = *fields.PrimaryPhone
	}
	if fields.SecondaryPhone != nil {
		household.SecondaryPhone = *fields.SecondaryPhone
	}
	if fields.DwellingType != nil {
		household.DwellingType = *fields.DwellingType
	}
	if fields.OwnershipStatus != nil {
		household.OwnershipStatus = *fields.OwnershipStatus
	}
	if fields.MonthlyRent != nil {
		household.MonthlyRent = fields.MonthlyRent
	}
	if fields.NumberOfRooms != nil {
		household.NumberOfRooms = *fields.NumberOfRooms
	}
	if fields.HasElectricity != nil {
		household.HasElectricity = *fields.HasElectricity
	}
	if fields.HasWater != nil {
		household.HasWater = *fields.HasWater
	}
	if fields.HasSanitation != nil {
		household.HasSanitation = *fields.HasSanitation
	}
	if fields.Status != nil {
		household.Status = *fields.Status
	}

	if err := s.db.Save(&household).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.load(household.ID)
}

// UpdateMember applies a partial update to a member under the given
// household, then recomputes the household's total monthly income from all
// current members. The recomputation runs on every member update, whatever
// field changed, so the stored total can never drift from the member rows.
func (s *householdService) UpdateMember(p authz.Principal, householdID, memberID uint, fields MemberUpdateFields) (*models.HouseholdMember, error) {
	if !authz.Can(p, authz.ActionMemberUpdate) {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to update household members")
	}

	var member models.HouseholdMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Both IDs must match: a member ID under a different household is
		// treated as not found.
		if err := tx.Where("id = ? AND household_id = ?", memberID, householdID).
			First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMemberNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if fields.FirstName != nil {
			member.FirstName = *fields.FirstName
		}
		if fields.LastName != nil {
			member.LastName = *fields.LastName
		}
		if fields.Gender != nil {
			member.Gender = *fields.Gender
		}
		if fields.PhoneNumber != nil {
			member.PhoneNumber = *fields.PhoneNumber
		}
		if fields.RelationshipToHead != nil {
			member.RelationshipToHead = *fields.RelationshipToHead
		}
		if fields.MaritalStatus != nil {
			member.MaritalStatus = *fields.MaritalStatus
		}
		if fields.EducationLevel != nil {
			member.EducationLevel = *fields.EducationLevel
		}
		if fields.EmploymentStatus != nil {
			member.EmploymentStatus = *fields.EmploymentStatus
		}
		if fields.MonthlyIncome != nil {
			member.MonthlyIncome = fields.MonthlyIncome
		}
		if fields.IsHouseholdHead != nil {
			member.IsHouseholdHead = *fields.IsHouseholdHead
		}
		if fields.DisabilityStatus != nil {
			member.DisabilityStatus = *fields.DisabilityStatus
		}

		if err := tx.Save(&member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var members []models.HouseholdMember
		if err := tx.Where("household_id = ?", householdID).Find(&members).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		total := decimal.Zero
		for _, m := range members {
			if m.MonthlyIncome != nil {
				total = total.Add(*m.MonthlyIncome)
			}
		}

		if err := tx.Model(&models.Household{}).
			Where("id = ?", householdID).
			Update("total_monthly_income", total).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Search filters households by national ID, phone, or member name. Each
// provided filter is a case-insensitive substring match and filters combine
// with AND. With no filters the whole table is returned, unpaginated.
func (s *householdService) Search(p authz.Principal, filter SearchFilter) ([]models.Household, error) {
	if !authz.Can(p, authz.ActionHouseholdSearch) {
		return nil, apperrors.ErrForbidden
	}

	query := s.db.Model(&models.Household{}).Preload("Members")

	if filter.NationalID != "" {
		query = query.Where("LOWER(household_national_id) LIKE ?", containsPattern(filter.NationalID))
	}
	if filter.Phone != "" {
		pat := containsPattern(filter.Phone)
		query = query.Where("(LOWER(primary_phone) LIKE ? OR LOWER(secondary_phone) LIKE ?)", pat, pat)
	}
	if filter.MemberName != "" {
		pat := containsPattern(filter.MemberName)
		query = query.
			Joins("JOIN household_members ON household_members.household_id = households.id").
			Where("(LOWER(household_members.first_name) LIKE ? OR LOWER(household_members.last_name) LIKE ?)", pat, pat).
			Distinct("households.*")
	}

	var households []models.Household
	if err := query.Find(&households).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if households == nil {
		households = []models.Household{}
	}
	return households, nil
}

// load fetches a household with its members.
func (s *householdService) load(id uint) (*models.Household, error) {
	var household models.Household
	if err := s.db.Preload("Members").First(&household, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrHouseholdNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &household, nil
}

// containsPattern builds a lowercase LIKE pattern matching substrings.
func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
