package domain

import "fmt"

// FulfillmentStatus is the internal lifecycle state of a fulfillment job.
type FulfillmentStatus string

const (
	StatusPending          FulfillmentStatus = "pending"
	StatusSourcing         FulfillmentStatus = "sourcing"
	StatusSourced          FulfillmentStatus = "sourced"
	StatusPacking          FulfillmentStatus = "packing"
	StatusPacked           FulfillmentStatus = "packed"
	StatusReadyForDispatch FulfillmentStatus = "ready_for_dispatch"
	StatusDispatched       FulfillmentStatus = "dispatched"
	StatusShipped          FulfillmentStatus = "shipped"
	StatusOutForDelivery   FulfillmentStatus = "out_for_delivery"
	StatusDelivered        FulfillmentStatus = "delivered"
	StatusRTOInitiated     FulfillmentStatus = "rto_initiated"
	StatusRTODelivered     FulfillmentStatus = "rto_delivered"
	StatusReturned         FulfillmentStatus = "returned"
	StatusCancelled        FulfillmentStatus = "cancelled"
	StatusFailed           FulfillmentStatus = "failed"
)

// mainTrack is the forward path in order. Skipping ahead is allowed.
var mainTrack = []FulfillmentStatus{
	StatusPending,
	StatusSourcing,
	StatusSourced,
	StatusPacking,
	StatusPacked,
	StatusReadyForDispatch,
	StatusDispatched,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

// returnTrack is the RTO branch in order.
var returnTrack = []FulfillmentStatus{
	StatusRTOInitiated,
	StatusRTODelivered,
	StatusReturned,
}

var validFulfillmentStatuses = append(append(append([]FulfillmentStatus{}, mainTrack...), returnTrack...),
	StatusCancelled, StatusFailed)

// String implements fmt.Stringer.
func (s FulfillmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known FulfillmentStatus.
func (s FulfillmentStatus) IsValid() bool {
	for _, candidate := range validFulfillmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition may leave s.
func (s FulfillmentStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned || s == StatusCancelled
}

// ParseFulfillmentStatus converts raw input into a FulfillmentStatus.
func ParseFulfillmentStatus(value string) (FulfillmentStatus, error) {
	for _, candidate := range validFulfillmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment status %q", value)
}

// FulfillmentStatuses returns every known status.
func FulfillmentStatuses() []FulfillmentStatus {
	return append([]FulfillmentStatus(nil), validFulfillmentStatuses...)
}

// ValidTransitions returns the statuses reachable from s in one step.
// Terminal and unknown statuses yield an empty, non-nil slice.
func ValidTransitions(s FulfillmentStatus) []FulfillmentStatus {
	if s.IsTerminal() {
		return []FulfillmentStatus{}
	}
	if s == StatusFailed {
		return []FulfillmentStatus{StatusPending, StatusCancelled}
	}
	if i := indexOf(mainTrack, s); i >= 0 {
		next := append([]FulfillmentStatus{}, mainTrack[i+1:]...)
		return append(next, StatusRTOInitiated, StatusCancelled, StatusFailed)
	}
	if i := indexOf(returnTrack, s); i >= 0 {
		next := append([]FulfillmentStatus{}, returnTrack[i+1:]...)
		return append(next, StatusCancelled, StatusFailed)
	}
	return []FulfillmentStatus{}
}

// CanTransition reports whether from -> to is a legal single step.
func CanTransition(from, to FulfillmentStatus) bool {
	return indexOf(ValidTransitions(from), to) >= 0
}

// StatusStrings renders statuses for error payloads.
func StatusStrings(statuses []FulfillmentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func indexOf(list []FulfillmentStatus, s FulfillmentStatus) int {
	for i, candidate := range list {
		if candidate == s {
			return i
		}
	}
	return -1
}
