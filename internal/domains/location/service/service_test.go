package service_test

import (
	"context"
	"net/http"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	locationMocks "afristay/internal/domains/location/mocks"
	"afristay/internal/domains/location/model"
	"afristay/internal/domains/location/model/dto"
	"afristay/internal/domains/location/service"
	"afristay/shared/cache"
	cacheMocks "afristay/shared/cache/mocks"
	"afristay/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	provinces *locationMocks.MockProvince
	districts *locationMocks.MockDistrict
	sectors   *locationMocks.MockSector
	cache     *cacheMocks.MockRedisCache
	svc       service.Location
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		provinces: locationMocks.NewMockProvince(ctrl),
		districts: locationMocks.NewMockDistrict(ctrl),
		sectors:   locationMocks.NewMockSector(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.provinces, f.districts, f.sectors, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func ptr(v int64) *int64 {
	return &v
}

func TestResolveName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		province *int64
		district *int64
		sector   *int64
		setup    func(f fixture)
		want     string
	}{
		{
			name:     "full hierarchy",
			province: ptr(1),
			district: ptr(2),
			sector:   ptr(3),
			setup: func(f fixture) {
				f.sectors.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Sector{ID: 3, Name: "Kimironko"}, nil)
				f.districts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{ID: 2, Name: "Gasabo"}, nil)
				f.provinces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Province{ID: 1, Name: "Kigali City"}, nil)
			},
			want: "Kimironko, Gasabo, Kigali City",
		},
		{
			name:     "district and province only",
			province: ptr(1),
			district: ptr(2),
			setup: func(f fixture) {
				f.districts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{ID: 2, Name: "Gasabo"}, nil)
				f.provinces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Province{ID: 1, Name: "Kigali City"}, nil)
			},
			want: "Gasabo, Kigali City",
		},
		{
			name:     "unknown ids are skipped",
			province: ptr(1),
			district: ptr(99),
			setup: func(f fixture) {
				f.districts.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.District{}, nil)
				f.provinces.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Province{ID: 1, Name: "Kigali City"}, nil)
			},
			want: "Kigali City",
		},
		{
			name:  "nothing to resolve",
			setup: func(fixture) {},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
			tt.setup(f)

			got, err := f.svc.ResolveName(context.Background(), tt.province, tt.district, tt.sector)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveName_CacheHit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), "location:name:1:2:-", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*string) = "Gasabo, Kigali City"

			return nil
		})

	got, err := f.svc.ResolveName(context.Background(), ptr(1), ptr(2), nil)
	require.NoError(t, err)
	assert.Equal(t, "Gasabo, Kigali City", got)
}

func TestGetDistricts_FromStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), "location:districts:1", gomock.Any()).Return(cache.Nil)
	f.districts.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.District{{ID: 2, ProvinceID: 1, Name: "Gasabo"}}, nil)

	got, err := f.svc.GetDistricts(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []dto.LocationResponse{{ID: 2, ParentID: 1, Name: "Gasabo"}}, got)
}

func TestValidateHierarchy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := locationMocks.NewMockLocation(ctrl)

	svc.EXPECT().GetDistricts(gomock.Any(), int64(1)).Return([]dto.LocationResponse{{ID: 2, ParentID: 1}}, nil).Times(2)
	svc.EXPECT().GetSectors(gomock.Any(), int64(2)).Return([]dto.LocationResponse{{ID: 3, ParentID: 2}}, nil).Times(2)

	require.NoError(t, service.ValidateHierarchy(context.Background(), svc, ptr(1), ptr(2), ptr(3)))

	err := service.ValidateHierarchy(context.Background(), svc, ptr(1), ptr(2), ptr(4))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	svc.EXPECT().GetDistricts(gomock.Any(), int64(5)).Return([]dto.LocationResponse{}, nil)

	err = service.ValidateHierarchy(context.Background(), svc, ptr(5), ptr(2), nil)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	require.NoError(t, service.ValidateHierarchy(context.Background(), svc, nil, nil, nil))
}
