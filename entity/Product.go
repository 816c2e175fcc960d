package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	Detail   string `json:"detail"`
	ImageURL string `json:"imageUrl"`

	CategoryID uint     `json:"categoryId"`
	Category   Category `json:"-"` // preload only when the category name is needed

	OrderItems []OrderItem `json:"-"`
}
