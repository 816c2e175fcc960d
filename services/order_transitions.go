package services

import (
	"github.com/cristianbbs/kolder-backend/entity"
)

// Legal status graph. DELIVERED and CANCELLED have no outgoing edges.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusSubmitted: {entity.StatusPreparing, entity.StatusCancelled},
	entity.StatusPreparing: {entity.StatusEnRoute, entity.StatusCancelled},
	entity.StatusEnRoute:   {entity.StatusDelivered, entity.StatusCancelled},
	entity.StatusDelivered: {},
	entity.StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal move. Self-loops are
// never legal.
func CanTransition(from, to entity.OrderStatus) bool {
	if from == to {
		return false
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsFinalStatus reports whether no further transition is possible. Callers
// must report this as ORDER_FINAL_STATE, distinct from a mid-flow illegal jump.
func IsFinalStatus(s entity.OrderStatus) bool {
	return s == entity.StatusDelivered || s == entity.StatusCancelled
}
