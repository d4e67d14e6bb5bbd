package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTransitions(t *testing.T) {
	tests := []struct {
		from FulfillmentStatus
		want []FulfillmentStatus
	}{
		{StatusPending, []FulfillmentStatus{
			StatusSourcing, StatusSourced, StatusPacking, StatusPacked, StatusReadyForDispatch,
			StatusDispatched, StatusShipped, StatusOutForDelivery, StatusDelivered,
			StatusRTOInitiated, StatusCancelled, StatusFailed,
		}},
		{StatusPacked, []FulfillmentStatus{
			StatusReadyForDispatch, StatusDispatched, StatusShipped, StatusOutForDelivery, StatusDelivered,
			StatusRTOInitiated, StatusCancelled, StatusFailed,
		}},
		{StatusOutForDelivery, []FulfillmentStatus{
			StatusDelivered, StatusRTOInitiated, StatusCancelled, StatusFailed,
		}},
		{StatusRTOInitiated, []FulfillmentStatus{
			StatusRTODelivered, StatusReturned, StatusCancelled, StatusFailed,
		}},
		{StatusRTODelivered, []FulfillmentStatus{
			StatusReturned, StatusCancelled, StatusFailed,
		}},
		{StatusFailed, []FulfillmentStatus{StatusPending, StatusCancelled}},
		{StatusDelivered, []FulfillmentStatus{}},
		{StatusReturned, []FulfillmentStatus{}},
		{StatusCancelled, []FulfillmentStatus{}},
		{FulfillmentStatus("teleported"), []FulfillmentStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got := ValidTransitions(tt.from)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from FulfillmentStatus
		to   FulfillmentStatus
		want bool
	}{
		{"forward one step", StatusPending, StatusSourcing, true},
		{"skip ahead", StatusPending, StatusPacked, true},
		{"backwards", StatusPacked, StatusSourcing, false},
		{"self", StatusPacked, StatusPacked, false},
		{"failed to pending", StatusFailed, StatusPending, true},
		{"failed to sourcing", StatusFailed, StatusSourcing, false},
		{"failed to failed", StatusFailed, StatusFailed, false},
		{"delivered is terminal", StatusDelivered, StatusSourcing, false},
		{"delivered to rto", StatusDelivered, StatusRTOInitiated, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"returned is terminal", StatusReturned, StatusFailed, false},
		{"rto from shipped", StatusShipped, StatusRTOInitiated, true},
		{"rto branch skip", StatusRTOInitiated, StatusReturned, true},
		{"rto back to main track", StatusRTOInitiated, StatusDelivered, false},
		{"rto delivered back", StatusRTODelivered, StatusRTOInitiated, false},
		{"cancel from out for delivery", StatusOutForDelivery, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidTransitions_NeverTargetsSelfOrOutsideVocabulary(t *testing.T) {
	for _, from := range FulfillmentStatuses() {
		for _, to := range ValidTransitions(from) {
			assert.NotEqual(t, from, to, "self transition from %s", from)
			assert.True(t, to.IsValid(), "unknown target %s from %s", to, from)
		}
	}
}

func TestValidTransitions_NeverMovesBackwards(t *testing.T) {
	tracks := [][]FulfillmentStatus{
		{
			StatusPending, StatusSourcing, StatusSourced, StatusPacking, StatusPacked,
			StatusReadyForDispatch, StatusDispatched, StatusShipped, StatusOutForDelivery, StatusDelivered,
		},
		{StatusRTOInitiated, StatusRTODelivered, StatusReturned},
	}
	position := func(track []FulfillmentStatus, s FulfillmentStatus) int {
		for i, candidate := range track {
			if candidate == s {
				return i
			}
		}
		return -1
	}

	for _, from := range FulfillmentStatuses() {
		for _, to := range ValidTransitions(from) {
			for _, track := range tracks {
				fromPos, toPos := position(track, from), position(track, to)
				if toPos < 0 {
					continue
				}
				if fromPos < 0 {
					// entering a track is only allowed at its head, or failed -> pending to retry
					ok := toPos == 0 || (from == StatusFailed && to == StatusPending)
					assert.True(t, ok, "%s -> %s enters mid-track", from, to)
					continue
				}
				assert.Greater(t, toPos, fromPos, "%s -> %s moves backwards", from, to)
			}
		}
	}
}

func TestValidTransitions_DoesNotShareBackingArray(t *testing.T) {
	first := ValidTransitions(StatusPending)
	first[0] = StatusDelivered

	assert.Equal(t, StatusSourcing, ValidTransitions(StatusPending)[0])
}

func TestIsTerminal(t *testing.T) {
	terminal := map[FulfillmentStatus]bool{
		StatusDelivered: true,
		StatusReturned:  true,
		StatusCancelled: true,
	}
	for _, s := range FulfillmentStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), string(s))
	}
}

func TestParseFulfillmentStatus(t *testing.T) {
	s, err := ParseFulfillmentStatus("ready_for_dispatch")
	require.NoError(t, err)
	assert.Equal(t, StatusReadyForDispatch, s)

	_, err = ParseFulfillmentStatus("READY_FOR_DISPATCH")
	assert.Error(t, err)

	_, err = ParseFulfillmentStatus("")
	assert.Error(t, err)

	assert.Len(t, FulfillmentStatuses(), 15)
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"pending", "cancelled"}, StatusStrings([]FulfillmentStatus{StatusPending, StatusCancelled}))
	assert.Equal(t, []string{}, StatusStrings(nil))
}
