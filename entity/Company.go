package entity

import (
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Rut          string `json:"rut"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`

	Users  []User  `json:"-"`
	Orders []Order `json:"-"`

	// Allow-list rows; presence = product enabled for this company.
	AllowedProducts []CompanyProduct `json:"-"`
}
