package live_test

import (
	"encoding/json"
	"testing"
	"time"

	"afristay/infras/live"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *live.Client) (map[string]string, bool) {
	t.Helper()

	select {
	case payload, ok := <-c.Send:
		if !ok {
			return nil, false
		}

		event := map[string]string{}
		require.NoError(t, json.Unmarshal(payload, &event))

		return event, true
	case <-time.After(50 * time.Millisecond):
		return nil, false
	}
}

func TestHub_BroadcastRoutesByAudience(t *testing.T) {
	hub := live.NewHub()

	admin := live.NewClient("c-admin", "admin-1", true)
	owner := live.NewClient("c-owner", "owner-1", false)
	otherOwner := live.NewClient("c-other", "owner-2", false)
	guest := live.NewClient("c-guest", "user-1", false)

	for _, c := range []*live.Client{admin, owner, otherOwner, guest} {
		hub.Register(c)
	}

	hub.Broadcast(live.Event{
		Type:      "booking.approved",
		BookingID: "booking-1",
		ListingID: "listing-1",
		Status:    "approved",
		OwnerID:   "owner-1",
		UserID:    "user-1",
	})

	for _, c := range []*live.Client{admin, owner, guest} {
		event, ok := receive(t, c)
		require.True(t, ok, c.ID)
		assert.Equal(t, "booking-1", event["booking_id"])
		assert.Equal(t, "approved", event["status"])
		assert.NotContains(t, event, "OwnerID")
	}

	_, ok := receive(t, otherOwner)
	assert.False(t, ok)
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub := live.NewHub()
	slow := live.NewClient("c-slow", "", true)
	hub.Register(slow)

	for range 40 {
		hub.Broadcast(live.Event{Type: "booking.created", BookingID: "booking-1"})
	}

	require.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_UnregisterTwice(t *testing.T) {
	hub := live.NewHub()
	c := live.NewClient("c-1", "owner-1", false)
	hub.Register(c)

	hub.Unregister(c.ID)
	hub.Unregister(c.ID)

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.Len())
}
