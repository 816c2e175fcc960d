package entity

import (
	"gorm.io/gorm"
)

// OrderStatusLog is append-only. One row is written when the order is created
// (From = nil) and one per legal transition; entries ordered by CreatedAt
// reconstruct the exact status sequence of the order.
type OrderStatusLog struct {
	gorm.Model
	OrderID uint  `gorm:"not null;index" json:"orderId"`
	Order   Order `json:"-"`

	From *OrderStatus `json:"from"`
	To   OrderStatus  `gorm:"not null" json:"to"`

	ChangedBy uint `gorm:"not null" json:"changedBy"`

	// Optional human-readable reason, used for cancellations.
	Note *string `json:"note,omitempty"`
}
