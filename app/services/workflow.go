package services

import "github.com/vastrakart/go-storefront/app/models"

// StatusFlow is an explicit state machine over status strings: a transition
// is legal only when its edge is present in the table. Anything else is
// rejected, including re-entering a previous state.
type StatusFlow struct {
	edges map[string][]string
}

func NewStatusFlow(edges map[string][]string) *StatusFlow {
	return &StatusFlow{edges: edges}
}

func (f *StatusFlow) CanTransition(from, to string) bool {
	for _, next := range f.edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a state has no outgoing edges.
func (f *StatusFlow) Terminal(status string) bool {
	return len(f.edges[status]) == 0
}

// Known reports whether a status appears anywhere in the table.
func (f *StatusFlow) Known(status string) bool {
	if _, ok := f.edges[status]; ok {
		return true
	}
	for _, targets := range f.edges {
		for _, t := range targets {
			if t == status {
				return true
			}
		}
	}
	return false
}

// NewOrderFlow builds the order lifecycle: pending → processing → shipped →
// delivered, with cancellation possible until the order ships.
func NewOrderFlow() *StatusFlow {
	return NewStatusFlow(map[string][]string{
		models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
		models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
		models.OrderStatusShipped:    {models.OrderStatusDelivered},
	})
}

// NewReturnFlow builds the return lifecycle. Rejected, refunded, and returned
// are terminal; a rejected return cannot be reopened.
func NewReturnFlow() *StatusFlow {
	return NewStatusFlow(map[string][]string{
		models.ReturnStatusPending:  {models.ReturnStatusApproved, models.ReturnStatusRejected},
		models.ReturnStatusApproved: {models.ReturnStatusRefunded, models.ReturnStatusReturned},
	})
}
