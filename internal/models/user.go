package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleEmployee UserRole = "employee"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name         string   `gorm:"size:100;not null" json:"name"`
	Email        string   `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:20;default:'employee'" json:"role"`
	Active       bool     `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
