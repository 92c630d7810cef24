package models

import "time"

// Role is the access role assigned to a user account.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCaseWorker Role = "case_worker"
	RoleViewer     Role = "viewer"
)

// User represents a registry user account in the database.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"user_id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"size:20;not null" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}
