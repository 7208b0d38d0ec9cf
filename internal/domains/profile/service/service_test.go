package service_test

import (
	"context"
	"net/http"
	"testing"

	"afristay/config"
	"afristay/infras/otel/mocks"
	profileMocks "afristay/internal/domains/profile/mocks"
	"afristay/internal/domains/profile/model"
	"afristay/internal/domains/profile/model/dto"
	"afristay/internal/domains/profile/service"
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
	repo  *profileMocks.MockProfile
	cache *cacheMocks.MockRedisCache
	svc   service.Profile
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  profileMocks.NewMockProfile(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminCtx() context.Context {
	return session.WithSession(context.Background(), session.Session{UserID: "admin-1", Role: session.RoleAdmin})
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		id       string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "promotes a user to owner",
			id:   "p1",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Profile{ID: "p1", Role: session.RoleUser}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, session.RoleOwner, fields[model.FieldRole])
						assert.Equal(t, "admin-1", fields["modified_by"])

						return nil
					})
			},
		},
		{
			name:     "own role",
			id:       "admin-1",
			setup:    func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown profile",
			id:   "missing",
			setup: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Profile{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			tt.setup(f)

			err := f.svc.UpdateRole(adminCtx(), tt.id, dto.UpdateRoleRequest{Role: "owner"})
			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestSetBanned(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	banned := true

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Profile{ID: "p1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[model.FieldBanned])

			return nil
		})

	require.NoError(t, f.svc.SetBanned(adminCtx(), "p1", dto.SetBannedRequest{Banned: &banned}))

	err := f.svc.SetBanned(adminCtx(), "admin-1", dto.SetBannedRequest{Banned: &banned})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetAll(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Profile{{ID: "p1", FullName: "Amina Uwase"}, {ID: "p2", Email: "jean@example.rw"}}, nil)

	res, err := f.svc.GetAll(adminCtx(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ProfileQuery{Search: "a"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Profiles, 2)
	assert.Equal(t, "Amina", res.Profiles[0].FirstName)
	assert.Equal(t, "jean", res.Profiles[1].FirstName)
}

func TestDelete_OwnAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	err := f.svc.Delete(adminCtx(), "admin-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
