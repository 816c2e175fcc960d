package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status OrderStatus `gorm:"not null;default:SUBMITTED" json:"status"`

	// Emergency surcharge snapshot taken at creation time; later changes to
	// the global fee never touch existing orders.
	Emergency bool     `json:"emergency"`
	ExtraCost *float64 `json:"extraCost"`

	Note *string `json:"note"`

	UserID uint `gorm:"not null" json:"userId"`
	User   User `json:"-"` // preload only when customer detail is needed

	CompanyID uint    `gorm:"not null" json:"companyId"`
	Company   Company `json:"-"`

	Items      []OrderItem      `json:"items"`
	StatusLogs []OrderStatusLog `json:"-"` // loaded explicitly for timelines
}
