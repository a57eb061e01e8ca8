package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trimconnect/salon-booking-api/internal/httperr"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow,
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = ParseStatus("")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusConfirmed))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow},
		StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := CanTransition(from, to)

			if from == to {
				assert.True(t, httperr.IsBusiness(err, "status_unchanged"),
					"%s -> %s", from, to)
				continue
			}

			ok := false
			for _, target := range allowed[from] {
				if target == to {
					ok = true
				}
			}

			if ok {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_transition"),
					"%s -> %s", from, to)
			}
		}
	}
}

func TestCanTransitionTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range allStatuses {
		if !IsTerminal(from) {
			continue
		}
		for _, to := range allStatuses {
			if from == to {
				continue
			}
			assert.Error(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanRequest(t *testing.T) {
	// customers may only request cancellation
	assert.NoError(t, CanRequest(ActorCustomer, StatusCancelled))
	for _, to := range []Status{StatusConfirmed, StatusCompleted, StatusNoShow, StatusPending} {
		assert.True(t,
			httperr.IsBusiness(CanRequest(ActorCustomer, to), "transition_not_allowed"),
			"customer -> %s", to)
	}

	// the salon side manages the full lifecycle
	for _, to := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.NoError(t, CanRequest(ActorSalon, to), "salon -> %s", to)
	}
	assert.Error(t, CanRequest(ActorSalon, StatusPending))

	// the system only confirms, via payments
	assert.NoError(t, CanRequest(ActorSystem, StatusConfirmed))
	assert.Error(t, CanRequest(ActorSystem, StatusCancelled))
	assert.Error(t, CanRequest(ActorSystem, StatusCompleted))
}
