package service_test

import (
	"context"
	"net/http"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	s3Mocks "afristay/infras/s3/mocks"
	eventMocks "afristay/internal/domains/event/mocks"
	"afristay/internal/domains/event/model"
	"afristay/internal/domains/event/model/dto"
	"afristay/internal/domains/event/service"
	locationMocks "afristay/internal/domains/location/mocks"
	locationDto "afristay/internal/domains/location/model/dto"
	"afristay/shared/cache"
	cacheMocks "afristay/shared/cache/mocks"
	gDto "afristay/shared/dto"
	"afristay/shared/failure"
	"afristay/shared/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *eventMocks.MockEvent
	location *locationMocks.MockLocation
	s3       *s3Mocks.MockS3
	cache    *cacheMocks.MockRedisCache
	svc      service.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     eventMocks.NewMockEvent(ctrl),
		location: locationMocks.NewMockLocation(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Storage.EventImagesBucket = "event-images"

	f.svc = service.New(f.repo, f.location, f.s3, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ptr(v int64) *int64 {
	return &v
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: "a1", Role: session.RoleAdmin})
}

func TestCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.CreateEventRequest
		setup    func(f fixture)
		want     string
		wantCode int
	}{
		{
			name: "resolves the location text",
			ctx:  adminCtx(),
			req:  dto.CreateEventRequest{Title: "Kigali Jazz", EventDate: "2026-12-05", ProvinceID: ptr(1), DistrictID: ptr(2), SectorID: ptr(3)},
			setup: func(f fixture) {
				f.location.EXPECT().GetDistricts(gomock.Any(), int64(1)).Return([]locationDto.LocationResponse{{ID: 2}}, nil)
				f.location.EXPECT().GetSectors(gomock.Any(), int64(2)).Return([]locationDto.LocationResponse{{ID: 3}}, nil)
				f.location.EXPECT().ResolveName(gomock.Any(), ptr(1), ptr(2), ptr(3)).Return("Kimihurura, Gasabo, Kigali City", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e model.Event) error {
						assert.Equal(t, "Kimihurura, Gasabo, Kigali City", e.Location)
						assert.Equal(t, "a1", e.CreatedBy)

						return nil
					})
			},
			want: "Kimihurura, Gasabo, Kigali City",
		},
		{
			name: "no location",
			ctx:  adminCtx(),
			req:  dto.CreateEventRequest{Title: "Online meetup", EventDate: "2026-12-05"},
			setup: func(f fixture) {
				f.location.EXPECT().ResolveName(gomock.Any(), nil, nil, nil).Return("", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "not an admin",
			ctx:      session.WithSession(context.Background(), session.Session{UserID: "o1", Role: session.RoleOwner}),
			req:      dto.CreateEventRequest{Title: "Kigali Jazz", EventDate: "2026-12-05"},
			setup:    func(fixture) {},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "sector without district",
			ctx:      adminCtx(),
			req:      dto.CreateEventRequest{Title: "Kigali Jazz", EventDate: "2026-12-05", ProvinceID: ptr(1), SectorID: ptr(3)},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "district outside province",
			ctx:  adminCtx(),
			req:  dto.CreateEventRequest{Title: "Kigali Jazz", EventDate: "2026-12-05", ProvinceID: ptr(1), DistrictID: ptr(9)},
			setup: func(f fixture) {
				f.location.EXPECT().GetDistricts(gomock.Any(), int64(1)).Return([]locationDto.LocationResponse{{ID: 2}}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date",
			ctx:      adminCtx(),
			req:      dto.CreateEventRequest{Title: "Kigali Jazz", EventDate: "05/12/2026"},
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Create(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Location)
			assert.Equal(t, "2026-12-05", res.EventDate)
		})
	}
}

func TestGetAll_DefaultsToDateOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Event, error) {
			assert.Equal(t, "events.event_date", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return nil, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.EventQuery{})
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Equal(t, 1, res.TotalPage)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the banner", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		banner := "https://cdn.example/event-images/jazz.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Event{ID: "e1", BannerURL: &banner}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("event-images", banner).Return("jazz.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "event-images", "", "jazz.png").Return(nil)

		require.NoError(t, f.svc.Delete(adminCtx(), "e1"))
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Event{}, nil)

		err := f.svc.Delete(adminCtx(), "missing")
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
