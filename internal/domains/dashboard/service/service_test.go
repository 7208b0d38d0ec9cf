package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	bookingMocks "afristay/internal/domains/booking/mocks"
	"afristay/internal/domains/dashboard/model/dto"
	"afristay/internal/domains/dashboard/service"
	listingMocks "afristay/internal/domains/listing/mocks"
	profileMocks "afristay/internal/domains/profile/mocks"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	bookings *bookingMocks.MockBooking
	listings *listingMocks.MockListing
	profiles *profileMocks.MockProfile
	svc      service.Dashboard
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		listings: listingMocks.NewMockListing(ctrl),
		profiles: profileMocks.NewMockProfile(ctrl),
	}

	cfg := &config.Config{}
	cfg.Booking.DefaultCurrency = "RWF"

	f.svc = service.New(f.bookings, f.listings, f.profiles, cfg, mocks.NewOtel())

	return f
}

func where(filter gDto.FilterGroup) (string, map[string]any) {
	return filter.GetWhereClause()
}

func TestCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		caller session.Session
		setup  func(t *testing.T, f fixture)
		want   dto.CountsResponse
	}{
		{
			name:   "admin sees global counts",
			caller: session.Session{UserID: "a1", Role: session.RoleAdmin},
			setup: func(t *testing.T, f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gDto.FilterGroup{}).Return(12, nil)
				f.listings.EXPECT().Count(gomock.Any(), gDto.FilterGroup{}).Return(7, nil)
				f.bookings.EXPECT().Count(gomock.Any(), gDto.FilterGroup{}).Return(30, nil)
				f.bookings.EXPECT().Sum(gomock.Any(), "total_amount", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (float64, error) {
						clause, args := where(filter)
						assert.Contains(t, clause, "bookings.status IN")
						assert.Len(t, args, 2)

						return 150000, nil
					})
			},
			want: dto.CountsResponse{TotalUsers: 12, TotalListings: 7, TotalBookings: 30, TotalRevenue: 150000, Currency: "RWF"},
		},
		{
			name:   "admin with an empty data set",
			caller: session.Session{UserID: "a1", Role: session.RoleAdmin},
			setup: func(_ *testing.T, f fixture) {
				f.profiles.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.listings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.bookings.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, nil)
			},
			want: dto.CountsResponse{Currency: "RWF"},
		},
		{
			name:   "owner is scoped to own listings",
			caller: session.Session{UserID: "o1", Role: session.RoleOwner},
			setup: func(t *testing.T, f fixture) {
				f.bookings.EXPECT().CountDistinct(gomock.Any(), "user_id", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (int, error) {
						clause, args := where(filter)
						assert.Contains(t, clause, "listings.owner_id")
						assert.Equal(t, "o1", args["owner_id"])

						return 3, nil
					})
				f.listings.EXPECT().Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						_, args := where(filter)
						assert.Equal(t, "o1", args["owner_id"])

						return 2, nil
					})
				f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(5, nil)
				f.bookings.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, filter gDto.FilterGroup) (float64, error) {
						clause, _ := where(filter)
						assert.Contains(t, clause, "listings.owner_id")
						assert.Contains(t, clause, "bookings.status IN")

						return 40000, nil
					})
			},
			want: dto.CountsResponse{TotalUsers: 3, TotalListings: 2, TotalBookings: 5, TotalRevenue: 40000, Currency: "RWF"},
		},
		{
			name:   "user sees own booking count only",
			caller: session.Session{UserID: "u1", Role: session.RoleUser},
			setup: func(t *testing.T, f fixture) {
				f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
						_, args := where(filter)
						assert.Equal(t, "u1", args["user_id"])

						return 4, nil
					})
			},
			want: dto.CountsResponse{TotalBookings: 4, Currency: "RWF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			tt.setup(t, f)

			res, err := f.svc.Counts(session.WithSession(context.Background(), tt.caller))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestCounts_Errors(t *testing.T) {
	t.Parallel()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, err := f.svc.Counts(context.Background())
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("query failure", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.Counts(session.WithSession(context.Background(), session.Session{UserID: "u1", Role: session.RoleUser}))
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
