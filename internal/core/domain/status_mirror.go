package domain

// lifecycleMirror maps fine-grained fulfillment statuses onto the order-level
// vocabulary. Every status has an explicit row; MirrorOrderLifecycle falls
// back to the raw value for anything added later without a row.
var lifecycleMirror = map[FulfillmentStatus]OrderLifecycle{
	StatusPending:          LifecycleSubmitted,
	StatusSourcing:         LifecycleSourcing,
	StatusSourced:          LifecycleSourcing,
	StatusPacking:          LifecyclePacking,
	StatusPacked:           LifecyclePacking,
	StatusReadyForDispatch: LifecycleReadyToShip,
	StatusDispatched:       LifecycleShipped,
	StatusShipped:          LifecycleShipped,
	StatusOutForDelivery:   LifecycleShipped,
	StatusDelivered:        LifecycleDelivered,
	StatusRTOInitiated:     LifecycleRTO,
	StatusRTODelivered:     LifecycleRTO,
	StatusReturned:         LifecycleReturned,
	StatusCancelled:        LifecycleCancelled,
	StatusFailed:           LifecycleFailed,
}

// MirrorOrderLifecycle returns the order-level lifecycle for s.
func MirrorOrderLifecycle(s FulfillmentStatus) OrderLifecycle {
	if l, ok := lifecycleMirror[s]; ok {
		return l
	}
	return OrderLifecycle(s)
}
