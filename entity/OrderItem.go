package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null" json:"quantity"`

	// ProductTitle is a snapshot taken at order time; renaming or deleting the
	// product later must not alter historical orders.
	ProductTitle string `gorm:"not null" json:"productTitle"`

	OrderID uint  `gorm:"not null" json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `gorm:"not null" json:"productId"`
	Product   Product `json:"-"`
}
