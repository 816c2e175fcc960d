package entity

// OrderStatus is the lifecycle state of an order. Legal transitions are
// decided by services.CanTransition, not by enum ordering.
type OrderStatus string

const (
	StatusSubmitted OrderStatus = "SUBMITTED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusEnRoute   OrderStatus = "EN_ROUTE"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusPreparing, StatusEnRoute, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
