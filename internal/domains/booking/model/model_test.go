package model_test

import (
	"testing"
	"time"

	"afristay/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	all := []model.Status{
		model.StatusPending, model.StatusApproved, model.StatusRejected,
		model.StatusPaid, model.StatusCompleted, model.StatusCancelled,
	}

	allowed := map[model.Status][]model.Status{
		model.StatusPending:  {model.StatusApproved, model.StatusRejected, model.StatusCancelled},
		model.StatusApproved: {model.StatusPaid, model.StatusCancelled},
		model.StatusPaid:     {model.StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false

			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}

			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, model.StatusRejected.Terminal())
	assert.True(t, model.StatusCompleted.Terminal())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.StatusPending.Terminal())
	assert.False(t, model.StatusPaid.Terminal())
}

func TestReceiptNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want string
	}{
		{id: "3f2a9c1e-7b44-4d1a-9e0f-1234567890ab", want: "RCP-3F2A9C1E"},
		{id: "abc", want: "RCP-ABC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, model.ReceiptNumber(tt.id))
		assert.Equal(t, tt.want, model.Booking{ID: tt.id}.ReceiptNumber())
	}
}

func TestNights(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, model.Nights(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 1, model.Booking{StartDate: start, EndDate: start.AddDate(0, 0, 1)}.Nights())

	// a DST shift keeps whole days
	assert.Equal(t, 2, model.Nights(start, start.Add(47*time.Hour)))
}
