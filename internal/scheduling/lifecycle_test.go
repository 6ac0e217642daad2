package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []AppointmentStatus{
	StatusScheduled, StatusConfirmed, StatusCompleted,
	StatusCancelled, StatusNoShow, StatusRescheduled,
}

func TestTransitionMatrix(t *testing.T) {
	legal := map[AppointmentStatus][]AppointmentStatus{
		StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, StatusScheduled.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusNoShow.Terminal())
	assert.True(t, StatusRescheduled.Terminal())
}

func TestCheckTransitionErrorNamesBothStatuses(t *testing.T) {
	err := CheckTransition(StatusCompleted, StatusConfirmed)
	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusCompleted, transitionErr.From)
	assert.Equal(t, StatusConfirmed, transitionErr.To)
	assert.Contains(t, err.Error(), "COMPLETED")
	assert.Contains(t, err.Error(), "CONFIRMED")
}

func TestDoubleCancelIsIllegal(t *testing.T) {
	require.NoError(t, CheckTransition(StatusScheduled, StatusCancelled))

	err := CheckTransition(StatusCancelled, StatusCancelled)
	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
}
