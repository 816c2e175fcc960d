package services

import (
	"testing"

	"github.com/cristianbbs/kolder-backend/entity"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []entity.OrderStatus{
	entity.StatusSubmitted,
	entity.StatusPreparing,
	entity.StatusEnRoute,
	entity.StatusDelivered,
	entity.StatusCancelled,
}

func TestCanTransition_FullGrid(t *testing.T) {
	legal := map[entity.OrderStatus]map[entity.OrderStatus]bool{
		entity.StatusSubmitted: {entity.StatusPreparing: true, entity.StatusCancelled: true},
		entity.StatusPreparing: {entity.StatusEnRoute: true, entity.StatusCancelled: true},
		entity.StatusEnRoute:   {entity.StatusDelivered: true, entity.StatusCancelled: true},
		entity.StatusDelivered: {},
		entity.StatusCancelled: {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			assert.Equal(t, legal[from][to], CanTransition(from, to), "CanTransition(%s, %s)", from, to)
		}
	}
}

func TestCanTransition_NoSelfLoops(t *testing.T) {
	for _, s := range allStatuses {
		assert.False(t, CanTransition(s, s), "CanTransition(%s, %s)", s, s)
	}
}

func TestIsFinalStatus(t *testing.T) {
	want := map[entity.OrderStatus]bool{
		entity.StatusSubmitted: false,
		entity.StatusPreparing: false,
		entity.StatusEnRoute:   false,
		entity.StatusDelivered: true,
		entity.StatusCancelled: true,
	}
	for s, w := range want {
		assert.Equal(t, w, IsFinalStatus(s), "IsFinalStatus(%s)", s)
	}
}
