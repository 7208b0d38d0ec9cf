package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	s3Mocks "afristay/infras/s3/mocks"
	listingMocks "afristay/internal/domains/listing/mocks"
	"afristay/internal/domains/listing/model"
	"afristay/internal/domains/listing/model/dto"
	"afristay/internal/domains/listing/service"
	cacheMocks "afristay/shared/cache/mocks"
	"afristay/shared/failure"
	"afristay/shared/session"
	txMocks "afristay/shared/transaction/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo   *listingMocks.MockListing
	images *listingMocks.MockImages
	videos *listingMocks.MockVideos
	cache  *cacheMocks.MockRedisCache
	s3     *s3Mocks.MockS3
	tx     *txMocks.Transactor
	svc    service.Listing
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:   listingMocks.NewMockListing(ctrl),
		images: listingMocks.NewMockImages(ctrl),
		videos: listingMocks.NewMockVideos(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		s3:     s3Mocks.NewMockS3(ctrl),
		tx:     txMocks.NewTransactor(),
	}

	cfg := &config.Config{}
	cfg.Booking.DefaultCurrency = "RWF"
	cfg.Storage.ListingImagesBucket = "listing-images"
	cfg.Storage.ListingVideosBucket = "listing-videos"

	f.svc = service.New(f.repo, f.images, f.videos, f.tx, cfg, f.cache, mocks.NewOtel(), f.s3)

	// cache invalidation runs in the background
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ownerCtx(id string) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: id, Role: session.RoleOwner})
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: "admin-1", Role: session.RoleAdmin})
}

func userCtx(id string) context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: id, Role: session.RoleUser})
}

func listingWith(availability model.Availability, status model.Status) model.Listing {
	return model.Listing{
		ID:           "listing-1",
		OwnerID:      "owner-1",
		Title:        "Kigali loft",
		Price:        50000,
		Currency:     "RWF",
		Category:     model.CategoryRealEstate,
		Status:       status,
		Availability: availability,
	}
}

func TestListingService_ToggleAvailability(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		want      string
		wantCode  int
	}{
		{
			name: "available listing becomes unavailable",
			ctx:  ownerCtx("owner-1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusApproved), nil)
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ any) (bool, error) {
						assert.Equal(t, model.AvailabilityUnavailable, mod[model.FieldAvailability])

						return true, nil
					})
			},
			want: string(model.AvailabilityUnavailable),
		},
		{
			name: "unavailable listing becomes available for admin",
			ctx:  adminCtx(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityUnavailable, model.StatusApproved), nil)
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			want: string(model.AvailabilityAvailable),
		},
		{
			name: "booked listing cannot be freed by hand",
			ctx:  ownerCtx("owner-1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityBooked, model.StatusApproved), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "concurrent change loses the swap",
			ctx:  ownerCtx("owner-1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusApproved), nil)
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "other owner is refused",
			ctx:  ownerCtx("owner-2"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusApproved), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "missing listing",
			ctx:  ownerCtx("owner-1"),
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.ToggleAvailability(tt.ctx, "listing-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Availability)
		})
	}
}

func TestListingService_Approve(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "pending listing is approved",
			ctx:  adminCtx(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ any) (bool, error) {
						assert.Equal(t, model.StatusApproved, mod[model.FieldStatus])

						return true, nil
					})
			},
		},
		{
			name:      "owners cannot approve",
			ctx:       ownerCtx("owner-1"),
			setupMock: func(f fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name: "second approval conflicts",
			ctx:  adminCtx(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusApproved), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown listing",
			ctx:  adminCtx(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Listing{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			ctx:  adminCtx(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Approve(tt.ctx, "listing-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestListingService_Reject(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusApproved), nil)

	err := f.svc.Reject(adminCtx(), "listing-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	f = newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, model.StatusPending), nil)
	f.images.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Media{{ID: "img-1", ListingID: "listing-1", URL: "https://cdn/listing-images/listing-1/a.png"}}, nil)
	f.videos.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	f.s3.EXPECT().GetObjectNameFromURL("listing-images", gomock.Any()).Return("listing-1/a.png")
	f.s3.EXPECT().DeleteFile(gomock.Any(), "listing-images", "", "listing-1/a.png").Return(nil)

	assert.NoError(t, f.svc.Reject(adminCtx(), "listing-1"))
}

func TestListingService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityBooked, model.StatusApproved), nil)

	err := f.svc.Delete(ownerCtx("owner-1"), "listing-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestListingService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		status   model.Status
		wantCode int
	}{
		{name: "approved listing is public", ctx: context.Background(), status: model.StatusApproved},
		{name: "pending listing visible to its owner", ctx: ownerCtx("owner-1"), status: model.StatusPending},
		{name: "pending listing visible to admins", ctx: adminCtx(), status: model.StatusPending},
		{name: "pending listing hidden from guests", ctx: context.Background(), status: model.StatusPending, wantCode: http.StatusNotFound},
		{name: "pending listing hidden from other users", ctx: userCtx("user-1"), status: model.StatusPending, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(listingWith(model.AvailabilityAvailable, tt.status), nil)
			f.images.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			f.videos.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

			res, err := f.svc.Get(tt.ctx, "listing-1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "listing-1", res.ID)
			assert.Empty(t, res.Images)
		})
	}
}

func TestListingService_Create(t *testing.T) {
	t.Run("plain users cannot publish", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(userCtx("user-1"), dto.CreateListingRequest{Title: "Car", Price: 10, Category: "vehicle"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("owner listing starts pending and available", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, listing model.Listing) error {
				assert.Equal(t, model.StatusPending, listing.Status)
				assert.Equal(t, model.AvailabilityAvailable, listing.Availability)
				assert.Equal(t, "owner-1", listing.OwnerID)
				assert.Equal(t, "RWF", listing.Currency)

				return nil
			})

		res, err := f.svc.Create(ownerCtx("owner-1"), dto.CreateListingRequest{Title: "Car", Price: 10, Category: "vehicle"})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusPending), res.Status)
		assert.Equal(t, 1, f.tx.Commits)
	})

	t.Run("failed insert rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Create(ownerCtx("owner-1"), dto.CreateListingRequest{Title: "Car", Price: 10, Category: "vehicle"})
		require.Error(t, err)
		assert.Equal(t, 1, f.tx.Rollbacks)
	})
}
