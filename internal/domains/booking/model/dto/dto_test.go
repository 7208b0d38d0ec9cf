package dto_test

import (
	"net/http"
	"testing"
	"time"

	"afristay/internal/domains/booking/model"
	"afristay/internal/domains/booking/model/dto"
	"afristay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_Dates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "2025-06-01", end: "2025-06-04"},
		{name: "same day", start: "2025-06-01", end: "2025-06-01", wantErr: true},
		{name: "end before start", start: "2025-06-04", end: "2025-06-01", wantErr: true},
		{name: "bad start", start: "06/01/2025", end: "2025-06-04", wantErr: true},
		{name: "bad end", start: "2025-06-01", end: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := dto.CreateBookingRequest{StartDate: tt.start, EndDate: tt.end}

			_, _, err := req.Dates()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	t.Parallel()

	req := dto.CreateBookingRequest{
		ListingID:     "listing-1",
		StartDate:     "2025-06-01",
		EndDate:       "2025-06-04",
		PaymentMethod: "mobile_money",
	}

	start, end, err := req.Dates()
	require.NoError(t, err)

	booking := req.ToModel("user-1", start, end, 25000)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, booking.PaymentStatus)
	assert.Equal(t, model.PaymentMethodMobileMoney, booking.PaymentMethod)
	assert.InDelta(t, 75000, booking.TotalAmount, 0.001)
}

func TestReceiptResponse_FromModel(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var res dto.ReceiptResponse
	res.FromModel(model.Booking{
		ID:          "9a1b2c3d-0000-0000-0000-000000000000",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		TotalAmount: 50000,
		Currency:    "RWF",
		Status:      model.StatusApproved,
	})

	assert.Equal(t, "RCP-9A1B2C3D", res.ReceiptNumber)
	assert.Equal(t, 2, res.Nights)
	assert.InDelta(t, 25000, res.NightlyPrice, 0.001)
	assert.Equal(t, "2025-06-03", res.EndDate)
}

func TestBookingQuery_ToFilterGroup(t *testing.T) {
	t.Parallel()

	empty := dto.BookingQuery{}.ToFilterGroup()
	where, _ := empty.GetWhereClause()
	assert.Empty(t, where)

	filter := dto.BookingQuery{Status: "approved,paid", OwnerID: "owner-1"}.ToFilterGroup()
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.status IN")
	assert.Contains(t, where, "listings.owner_id = :owner_id")
	assert.Equal(t, "approved", args["status_0"])
	assert.Equal(t, "owner-1", args["owner_id"])
}
