package service_test

import (
	"context"
	"errors"
	"testing"

	"campusroom/config"
	"campusroom/infras/otel/mocks"
	scheduleMocks "campusroom/internal/domains/schedule/mocks"
	"campusroom/internal/domains/schedule/model"
	"campusroom/internal/domains/schedule/service"
	cacheMocks "campusroom/shared/cache/mocks"
	"campusroom/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*scheduleMocks.MockWeeklySchedule, *cacheMocks.MockRedisCache, service.WeeklySchedule) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := scheduleMocks.NewMockWeeklySchedule(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestWeeklySchedule_FetchWeeklyBlocks(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *scheduleMocks.MockWeeklySchedule, cache *cacheMocks.MockRedisCache)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "cache miss reads from repository",
			setupMock: func(repo *scheduleMocks.MockWeeklySchedule, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "schedule:blocks:Legacy 101:0", gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().
					FetchWeeklyBlocks(gomock.Any(), "Legacy 101", 0).
					Return([]model.WeeklyBlock{
						{RoomCode: "Legacy 101", Weekday: 0, StartMinute: 480, EndMinute: 600},
						{RoomCode: "Legacy 101", Weekday: 0, StartMinute: 600, EndMinute: 720},
					}, nil)
			},
			wantLen: 2,
		},
		{
			name: "cache hit skips repository",
			setupMock: func(_ *scheduleMocks.MockWeeklySchedule, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), "schedule:blocks:Legacy 101:0", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*[]model.WeeklyBlock) = []model.WeeklyBlock{{RoomCode: "Legacy 101", StartMinute: 480, EndMinute: 600}}

						return nil
					})
			},
			wantLen: 1,
		},
		{
			name: "repository failure",
			setupMock: func(repo *scheduleMocks.MockWeeklySchedule, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().FetchWeeklyBlocks(gomock.Any(), "Legacy 101", 0).Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := newService(t)
			tt.setupMock(repo, cache)

			blocks, err := svc.FetchWeeklyBlocks(context.Background(), "Legacy 101", 0)

			if tt.wantErr {
				assert.True(t, failure.Is(err, failure.ReasonPersistence))

				return
			}

			require.NoError(t, err)
			assert.Len(t, blocks, tt.wantLen)
		})
	}
}

func TestWeeklySchedule_Timetable(t *testing.T) {
	repo, cache, svc := newService(t)
	title := "Data Structures"

	cache.EXPECT().Get(gomock.Any(), "schedule:timetable:Safra 102", gomock.Any()).Return(errors.New("miss"))
	repo.EXPECT().
		FetchByRoom(gomock.Any(), "Safra 102").
		Return([]model.WeeklyBlock{
			{RoomCode: "Safra 102", Weekday: 1, StartMinute: 540, EndMinute: 660, Title: &title},
			{RoomCode: "Safra 102", Weekday: 3, StartMinute: 720, EndMinute: 840},
		}, nil)

	res, err := svc.Timetable(context.Background(), " Safra  102 ")

	require.NoError(t, err)
	assert.Equal(t, "Safra 102", res.RoomCode)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, "Monday", res.Blocks[0].DayName)
	assert.Equal(t, "09:00", res.Blocks[0].StartTime)
	assert.Equal(t, "11:00", res.Blocks[0].EndTime)
	assert.Equal(t, title, res.Blocks[0].Title)
	assert.Equal(t, "Wednesday", res.Blocks[1].DayName)
	assert.Empty(t, res.Blocks[1].Title)
}
