package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Role         Role   `gorm:"not null;default:USER" json:"role"`

	CompanyID *uint    `json:"companyId"`
	Company   *Company `json:"-"` // preload only for profile endpoints

	// Provisional-password handling: company admins create users with a
	// generated password that must be changed within 48h.
	IsBlocked            bool       `json:"isBlocked"`
	MustChangePassword   bool       `json:"mustChangePassword"`
	ProvisionalExpiresAt *time.Time `json:"-"`

	Orders []Order `json:"-"`
}
