package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialregistry/internal/authz"
	apperrors "socialregistry/internal/errors"
	"socialregistry/internal/models"
	"socialregistry/internal/pagination"
	"socialregistry/internal/services"
)

// UserHandler handles user account requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the request payload for creating a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"required,user_role"`
}

// UpdateUserRequest represents the request payload for a partial user update.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Role     *string `json:"role" binding:"omitempty,user_role"`
	IsActive *bool   `json:"is_active"`
}

// CreateUser handles user creation.
// @Summary     Create a user
// @Description Register a new user account with a role
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} models.User "User created"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate username"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/ [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetMe returns the authenticated principal's own record.
// @Summary     Get own user record
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.User "Own user record"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(principal.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers returns a page of users; admin only.
// @Summary     List users
// @Description Admin-only paginated user list
// @Tags        users
// @Produce     json
// @Security    BearerAuth
// @Param       skip  query int false "Rows to skip (default 0)"
// @Param       limit query int false "Page size (default 100, max 500)"
// @Success     200 {object} pagination.PageResponse[models.User] "Paginated users"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Router      /users/ [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !authz.Can(principal, authz.ActionUserList) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to view all users"))
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.userService.ListUsers(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateUser applies a partial update to a user record; self or admin only.
// @Summary     Update user
// @Description Partial update of a user record. Users may update themselves; admins may update anyone.
// @Tags        users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body UpdateUserRequest true "Fields to update"
// @Success     200 {object} models.User "Updated user"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Forbidden"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	principal, err := getPrincipal(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	userID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !authz.CanAccessUser(principal, userID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to update this user"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.UserUpdateFields{
		Email:    req.Email,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		fields.Role = &role
	}

	user, err := h.userService.UpdateUser(userID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
