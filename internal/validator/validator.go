// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("gender", validateGender)
		_ = v.RegisterValidation("marital_status", validateMaritalStatus)
		_ = v.RegisterValidation("ownership_status", validateOwnershipStatus)
		_ = v.RegisterValidation("household_status", validateHouseholdStatus)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "case_worker", "viewer":
		return true
	}
	return false
}

func validateGender(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "male", "female", "other":
		return true
	}
	return false
}

func validateMaritalStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "single", "married", "divorced", "widowed":
		return true
	}
	return false
}

func validateOwnershipStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "owned", "rented", "occupied", "other":
		return true
	}
	return false
}

func validateHouseholdStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive":
		return true
	}
	return false
}
