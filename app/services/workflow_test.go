package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vastrakart/go-storefront/app/models"
)

func TestOrderFlowTransitions(t *testing.T) {
	flow := NewOrderFlow()

	assert.True(t, flow.CanTransition(models.OrderStatusPending, models.OrderStatusProcessing))
	assert.True(t, flow.CanTransition(models.OrderStatusPending, models.OrderStatusCancelled))
	assert.True(t, flow.CanTransition(models.OrderStatusProcessing, models.OrderStatusShipped))
	assert.True(t, flow.CanTransition(models.OrderStatusProcessing, models.OrderStatusCancelled))
	assert.True(t, flow.CanTransition(models.OrderStatusShipped, models.OrderStatusDelivered))

	// No skipping ahead, no going back, no cancelling after shipment.
	assert.False(t, flow.CanTransition(models.OrderStatusPending, models.OrderStatusShipped))
	assert.False(t, flow.CanTransition(models.OrderStatusShipped, models.OrderStatusCancelled))
	assert.False(t, flow.CanTransition(models.OrderStatusDelivered, models.OrderStatusPending))
	assert.False(t, flow.CanTransition(models.OrderStatusCancelled, models.OrderStatusProcessing))
}

func TestOrderFlowTerminalStates(t *testing.T) {
	flow := NewOrderFlow()
	assert.True(t, flow.Terminal(models.OrderStatusDelivered))
	assert.True(t, flow.Terminal(models.OrderStatusCancelled))
	assert.False(t, flow.Terminal(models.OrderStatusPending))
}

func TestOrderFlowKnownStatuses(t *testing.T) {
	flow := NewOrderFlow()
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		assert.True(t, flow.Known(status), status)
	}
	assert.False(t, flow.Known("archived"))
	assert.False(t, flow.Known(""))
}

func TestReturnFlowTransitions(t *testing.T) {
	flow := NewReturnFlow()

	assert.True(t, flow.CanTransition(models.ReturnStatusPending, models.ReturnStatusApproved))
	assert.True(t, flow.CanTransition(models.ReturnStatusPending, models.ReturnStatusRejected))
	assert.True(t, flow.CanTransition(models.ReturnStatusApproved, models.ReturnStatusRefunded))
	assert.True(t, flow.CanTransition(models.ReturnStatusApproved, models.ReturnStatusReturned))

	// Rejected is terminal; a rejected return cannot be reopened.
	assert.False(t, flow.CanTransition(models.ReturnStatusRejected, models.ReturnStatusApproved))
	assert.False(t, flow.CanTransition(models.ReturnStatusRejected, models.ReturnStatusPending))
	assert.False(t, flow.CanTransition(models.ReturnStatusRefunded, models.ReturnStatusReturned))
	assert.False(t, flow.CanTransition(models.ReturnStatusPending, models.ReturnStatusRefunded))
}

func TestReturnFlowTerminalStates(t *testing.T) {
	flow := NewReturnFlow()
	assert.True(t, flow.Terminal(models.ReturnStatusRejected))
	assert.True(t, flow.Terminal(models.ReturnStatusRefunded))
	assert.True(t, flow.Terminal(models.ReturnStatusReturned))
	assert.False(t, flow.Terminal(models.ReturnStatusPending))
	assert.False(t, flow.Terminal(models.ReturnStatusApproved))
}
