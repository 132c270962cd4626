package service_test

import (
	"context"
	"errors"
	"testing"

	"campusroom/config"
	"campusroom/infras/otel/mocks"
	userMocks "campusroom/internal/domains/user/mocks"
	"campusroom/internal/domains/user/model"
	"campusroom/internal/domains/user/model/dto"
	"campusroom/internal/domains/user/service"
	cacheMocks "campusroom/shared/cache/mocks"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestUserService_Get(t *testing.T) {
	t.Run("cache miss reads the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "user:get:user-1", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "user-1", NationalID: "123456789", Role: constant.RoleLecturer, Active: true}, nil)

		res, err := f.svc.Get(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, "123456789", res.NationalID)
		assert.Equal(t, constant.RoleLecturer, res.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(context.Background(), "ghost")

		assert.Equal(t, failure.ReasonNotFound, failure.GetReason(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("connection refused"))

		_, err := f.svc.Get(context.Background(), "user-1")

		assert.Equal(t, failure.ReasonPersistence, failure.GetReason(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 1, res.TotalPage)
}

func TestUserService_Update(t *testing.T) {
	inactive := false
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

	tests := []struct {
		name       string
		req        dto.UpdateUserRequest
		setupMock  func(f fixture)
		wantErr    bool
		wantReason failure.Reason
	}{
		{
			name: "deactivate user",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &inactive, fields[model.FieldActive])
						assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:       "empty request",
			req:        dto.UpdateUserRequest{},
			setupMock:  func(fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonValidation,
		},
		{
			name: "unknown user",
			req:  dto.UpdateUserRequest{Active: &inactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(ctx, tt.req, "user-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
