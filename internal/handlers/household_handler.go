package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "socialregistry/internal/errors"
	"socialregistry/internal/models"
	"socialregistry/internal/pagination"
	"socialregistry/internal/services"
)

// HouseholdHandler handles household registration, lookup, update, and search.
type HouseholdHandler struct {
	householdService services.HouseholdServicer
}

// NewHouseholdHandler creates a new HouseholdHandler.
func NewHouseholdHandler(householdService services.HouseholdServicer) *HouseholdHandler {
	return &HouseholdHandler{householdService: householdService}
}

// MemberRequest represents one member in a household registration payload.
type MemberRequest struct {
	NationalID         string           `json:"national_id" binding:"required,max=50"`
	FirstName          string           `json:"first_name" binding:"required,max=50"`
	LastName           string           `json:"last_name" binding:"required,max=50"`
	DateOfBirth        string           `json:"date_of_birth" binding:"required"`
	Gender             string           `json:"gender" binding:"omitempty,gender"`
	PhoneNumber        string           `json:"phone_number" binding:"max=20"`
	RelationshipToHead string           `json:"relationship_to_head" binding:"max=50"`
	MaritalStatus      string           `json:"marital_status" binding:"omitempty,marital_status"`
	EducationLevel     string           `json:"education_level" binding:"max=50"`
	EmploymentStatus   string           `json:"employment_status" binding:"max=50"`
	MonthlyIncome      *decimal.Decimal `json:"monthly_income"`
	IsHouseholdHead    bool             `json:"is_household_head"`
	DisabilityStatus   string           `json:"disability_status" binding:"max=50"`
}

// RegisterHouseholdRequest represents the household registration payload.
type RegisterHouseholdRequest struct {
	HouseholdNationalID string           `json:"household_national_id" binding:"required,max=50"`
	Address             string           `json:"address" binding:"required"`
	PrimaryPhone        string           `json:"primary_phone" binding:"max=20"`
	SecondaryPhone      string           `json:"secondary_phone" binding:"max=20"`
	DwellingType        string           `json:"dwelling_type" binding:"max=50"`
	OwnershipStatus     string           `json:"ownership_status" binding:"omitempty,ownership_status"`
	MonthlyRent         *decimal.Decimal `json:"monthly_rent"`
	NumberOfRooms       int              `json:"number_of_rooms" binding:"gte=0"`
	HasElectricity      bool             `json:"has_electricity"`
	HasWater            bool             `json:"has_water"`
	HasSanitation       bool             `json:"has_sanitation"`
	Members             []MemberRequest  `json:"members" binding:"dive"`
}

// UpdateHouseholdRequest represents a partial household update payload.
type UpdateHouseholdRequest struct {
	Address         *string          `json:"address" binding:"omitempty,min=1"`
	PrimaryPhone    *string          `json:"primary_phone" binding:"omitempty,max=20"`
	SecondaryPhone  *string          `json:"secondary_phone" binding:"omitempty,max=20"`
	DwellingType    *string          `json:"dwelling_type" binding:"omitempty,max=50"`
	OwnershipStatus *string          `json:"ownership_status" binding:"omitempty,ownership_status"`
	MonthlyRent     *decimal.Decimal `json:"monthly_rent"`
	NumberOfRooms   *int             `json:"number_of_rooms" binding:"omitempty,gte=0"`
	HasElectricity  *bool            `json:"has_electricity"`
	HasWater        *bool            `json:"has_water"`
	HasSanitation   *bool            `json:"has_sanitation"`
	Status          *string          `json:"status" binding:"omitempty,household_status"`
}

// UpdateMemberRequest represents a partial member update payload.
type UpdateMemberRequest struct {
	FirstName          *string          `json:"first_name" binding:"omitempty,min=1,max=50"`
	LastName           *string          `json:"last_name" binding:"omitempty,min=1,max=50"`
	Gender             *string          `json:"gender" binding:"omitempty,gender"`
	PhoneNumber        *string          `json:"phone_number" binding:"omitempty,max=20"`
	RelationshipToHead *string          `json:"relationship_to_head" binding:"omitempty,max=50"`
	MaritalStatus      *string          `json:"marital_status" binding:"omitempty,marital_status"`
	EducationLevel     *string          `json:"education_level" binding:"omitempty,max=50"`
	EmploymentStatus   *string          `json:"employment_status" binding:"omitempty,max=50"`
	MonthlyIncome      *decimal.Decimal `json:"monthly_income"`
	IsHouseholdHead    *bool            `json:"is_household_head"`
	DisabilityStatus   *string          `json:"disability_status" binding:"omitempty,max=50"`
}

// SearchHouseholdsRequest holds the household search query parameters.
type SearchHouseholdsRequest struct {
	NationalID string `form:"national_id"`
	Phone      string `form:"phone"`
	MemberName string `form:"member_name"`
}

// parseDate accepts dates in RFC 3339 or plain YYYY-MM-DD form.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
	}
	return parsed, err
}

// RegisterHousehold handles household registration with members.
// @Summary     Register a household
// @Description Register a household and its members as one atomic unit; the household total income is computed from the members
// @Tags        households
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RegisterHouseholdRequest true "Household and members"
// @Success     201 {object} models.Household "Registered household with members and total income"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate national ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Role not allowed to register households"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /households/ [post]
func (h *HouseholdHandler) RegisterHousehold(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RegisterHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.HouseholdInput{
		HouseholdNationalID: req.HouseholdNationalID,
		Address:             req.Address,
		PrimaryPhone:        req.PrimaryPhone,
		SecondaryPhone:      req.SecondaryPhone,
		DwellingType:        req.DwellingType,
		OwnershipStatus:     req.OwnershipStatus,
		MonthlyRent:         req.MonthlyRent,
		NumberOfRooms:       req.NumberOfRooms,
		HasElectricity:      req.HasElectricity,
		HasWater:            req.HasWater,
		HasSanitation:       req.HasSanitation,
	}
	for _, m := range req.Members {
		dob, err := parseDate(m.DateOfBirth)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date_of_birth format"))
			return
		}
		input.Members = append(input.Members, services.MemberInput{
			NationalID:         m.NationalID,
			FirstName:          m.FirstName,
			LastName:           m.LastName,
			DateOfBirth:        dob,
			Gender:             m.Gender,
			PhoneNumber:        m.PhoneNumber,
			RelationshipToHead: m.RelationshipToHead,
			MaritalStatus:      m.MaritalStatus,
			EducationLevel:     m.EducationLevel,
			EmploymentStatus:   m.EmploymentStatus,
			MonthlyIncome:      m.MonthlyIncome,
			IsHouseholdHead:    m.IsHouseholdHead,
			DisabilityStatus:   m.DisabilityStatus,
		})
	}

	household, err := h.householdService.Register(principal, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"household": household})
}

// GetHousehold returns a household by ID with its members.
// @Summary     Get household by ID
// @Tags        households
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Household ID"
// @Success     200 {object} models.Household "Household with members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Household not found"
// @Router      /households/{id} [get]
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	householdID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	household, err := h.householdService.Get(principal, householdID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"household": household})
}

// ListHouseholds returns a page of households in insertion order.
// @Summary     List households
// @Tags        households
// @Produce     json
// @Security    BearerAuth
// @Param       skip  query int false "Rows to skip (default 0)"
// @Param       limit query int false "Page size (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.Household] "Paginated households"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /households/ [get]
func (h *HouseholdHandler) ListHouseholds(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.householdService.List(principal, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateHousehold applies a partial update to household base fields.
// @Summary     Update household
// @Description Partial update of household base fields; members and the derived total income are untouched
// @Tags        households
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Household ID"
// @Param       request body UpdateHouseholdRequest true "Fields to update"
// @Success     200 {object} models.Household "Updated household"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Role not allowed to update households"
// @Failure     404 {object} ErrorResponse "Household not found"
// @Router      /households/{id} [put]
func (h *HouseholdHandler) UpdateHousehold(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	householdID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateHouseholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.HouseholdUpdateFields{
		Address:         req.Address,
		PrimaryPhone:    req.PrimaryPhone,
		SecondaryPhone:  req.SecondaryPhone,
		DwellingType:    req.DwellingType,
		OwnershipStatus: req.OwnershipStatus,
		MonthlyRent:     req.MonthlyRent,
		NumberOfRooms:   req.NumberOfRooms,
		HasElectricity:  req.HasElectricity,
		HasWater:        req.HasWater,
		HasSanitation:   req.HasSanitation,
	}
	if req.Status != nil {
		status := models.HouseholdStatus(*req.Status)
		fields.Status = &status
	}

	household, err := h.householdService.Update(principal, householdID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"household": household})
}

// UpdateMember applies a partial update to a household member and recomputes
// the household's total monthly income.
// @Summary     Update household member
// @Description Partial member update; the owning household's total income is always recomputed
// @Tags        households
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path int true "Household ID"
// @Param       member_id path int true "Member ID"
// @Param       request body UpdateMemberRequest true "Fields to update"
// @Success     200 {object} models.HouseholdMember "Updated member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Role not allowed to update members"
// @Failure     404 {object} ErrorResponse "Member not found under this household"
// @Router      /households/{id}/members/{member_id} [put]
func (h *HouseholdHandler) UpdateMember(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	householdID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	memberID, err := parsePathID(c, "member_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.MemberUpdateFields{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Gender:             req.Gender,
		PhoneNumber:        req.PhoneNumber,
		RelationshipToHead: req.RelationshipToHead,
		MaritalStatus:      req.MaritalStatus,
		EducationLevel:     req.EducationLevel,
		EmploymentStatus:   req.EmploymentStatus,
		MonthlyIncome:      req.MonthlyIncome,
		IsHouseholdHead:    req.IsHouseholdHead,
		DisabilityStatus:   req.DisabilityStatus,
	}

	member, err := h.householdService.UpdateMember(principal, householdID, memberID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// SearchHouseholds filters households by national ID, phone, or member name.
// @Summary     Search households
// @Description Case-insensitive substring filters, AND-combined; no filters returns everything
// @Tags        households
// @Produce     json
// @Security    BearerAuth
// @Param       national_id query string false "Household national ID substring"
// @Param       phone       query string false "Primary or secondary phone substring"
// @Param       member_name query string false "Member first or last name substring"
// @Success     200 {object} []models.Household "Matching households"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /households/search/ [get]
func (h *HouseholdHandler) SearchHouseholds(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SearchHouseholdsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	households, err := h.householdService.Search(principal, services.SearchFilter{
		NationalID: req.NationalID,
		Phone:      req.Phone,
		MemberName: req.MemberName,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"households": households})
}
