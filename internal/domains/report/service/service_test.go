package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusroom/config"
	kafkaMocks "campusroom/infras/kafka/mocks"
	"campusroom/infras/otel/mocks"
	reportMocks "campusroom/internal/domains/report/mocks"
	"campusroom/internal/domains/report/model"
	"campusroom/internal/domains/report/model/dto"
	"campusroom/internal/domains/report/service"
	"campusroom/internal/domains/report/triage"
	triageMocks "campusroom/internal/domains/report/triage/mocks"
	roomMocks "campusroom/internal/domains/room/mocks"
	roomModel "campusroom/internal/domains/room/model"
	cacheMocks "campusroom/shared/cache/mocks"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"
	gModel "campusroom/shared/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const reportID = "0f8fad5b-d9cb-469f-a165-70867728950e"

type fixture struct {
	repo       *reportMocks.MockReport
	rooms      *roomMocks.MockRoomService
	classifier *triageMocks.MockClassifier
	cache      *cacheMocks.MockRedisCache
	kafka      *kafkaMocks.MockClient
	svc        service.Report
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Report.BucketTimezone = "Asia/Jerusalem"
	cfg.Report.BucketMinutes = 60
	cfg.Kafka.Topic.Report = "campusroom.report"

	f := fixture{
		repo:       reportMocks.NewMockReport(ctrl),
		rooms:      roomMocks.NewMockRoomService(ctrl),
		classifier: triageMocks.NewMockClassifier(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.repo, f.rooms, f.classifier, f.cache, f.kafka, cfg, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.kafka.EXPECT().SendMessages(gomock.Any(), "campusroom.report", gomock.Any()).Return(nil).AnyTimes()

	return f
}

func reporterContext(role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestReportService_Create(t *testing.T) {
	req := dto.CreateReportRequest{RoomCode: "safra  102", Category: model.CategoryProjector, Description: "projector  shows no image"}

	tests := []struct {
		name       string
		role       string
		setupMock  func(f fixture)
		wantErr    bool
		wantReason failure.Reason
	}{
		{
			name: "classified report is stored",
			role: constant.RoleStudent,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), "safra  102").Return(roomModel.Room{Code: "Safra 102", Active: true}, nil)
				f.classifier.EXPECT().
					Classify(gomock.Any(), triage.Input{Category: model.CategoryProjector, RoomCode: "Safra 102", Description: req.Description}).
					Return(triage.Result{SeverityRank: 1, Confidence: 0.9, Rationale: "no image", Source: model.SourceClassifier})
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, report model.Report) error {
						assert.Equal(t, "Safra 102", report.RoomCode)
						assert.Equal(t, "projector shows no image", report.Description)
						assert.Equal(t, 1, report.SeverityRank)
						assert.Equal(t, model.SourceClassifier, report.TriageSource)
						assert.Equal(t, model.StatusOpen, report.Status)
						assert.Zero(t, report.TimeBucket.Minute())
						assert.False(t, report.TimeBucket.After(report.CreatedAt))

						return nil
					})
			},
		},
		{
			name:       "staff cannot file reports",
			role:       constant.RoleStaff,
			setupMock:  func(fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonForbidden,
		},
		{
			name: "unknown room",
			role: constant.RoleLecturer,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, failure.NotFound("room not found"))
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "inactive room",
			role: constant.RoleLecturer,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(roomModel.Room{Code: "Safra 102"}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name: "insert fails",
			role: constant.RoleStudent,
			setupMock: func(f fixture) {
				f.rooms.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(roomModel.Room{Code: "Safra 102", Active: true}, nil)
				f.classifier.EXPECT().Classify(gomock.Any(), gomock.Any()).Return(triage.Fallback(model.CategoryProjector))
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantErr:    true,
			wantReason: failure.ReasonPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(reporterContext(tt.role), req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "u-1", res.ReporterID)
		})
	}
}

func TestReportService_GetGrouped(t *testing.T) {
	t.Run("groups come from the repository on cache miss", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "report:grouped", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().FetchGrouped(gomock.Any()).Return([]model.GroupedReport{
			{Report: model.Report{ID: "a", SeverityRank: 1, Metadata: gModel.Metadata{CreatedAt: time.Now()}}, ReportCount: 3},
			{Report: model.Report{ID: "b", SeverityRank: 4, Metadata: gModel.Metadata{CreatedAt: time.Now()}}, ReportCount: 1},
		}, nil)

		res, err := f.svc.GetGrouped(context.Background())

		require.NoError(t, err)
		require.Len(t, res.Groups, 2)
		assert.Equal(t, 3, res.Groups[0].ReportCount)
		assert.Equal(t, "b", res.Groups[1].ID)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().FetchGrouped(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := f.svc.GetGrouped(context.Background())

		assert.Equal(t, failure.ReasonPersistence, failure.GetReason(err))
	})
}

func TestReportService_UpdateStatus(t *testing.T) {
	open := model.Report{ID: reportID, Status: model.StatusOpen}

	tests := []struct {
		name        string
		id          string
		status      string
		setupMock   func(f fixture)
		wantUpdated int64
		wantReason  failure.Reason
		wantErr     bool
	}{
		{
			name:   "done closes the whole group",
			id:     reportID,
			status: model.StatusDone,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil)
				f.repo.EXPECT().CloseGroup(gomock.Any(), reportID, "staff-1").Return(int64(4), nil)
			},
			wantUpdated: 4,
		},
		{
			name:   "in progress updates a single report",
			id:     reportID,
			status: model.StatusInProgress,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusInProgress, fields["status"])

						return nil
					})
			},
			wantUpdated: 1,
		},
		{
			name:       "malformed id",
			id:         "17",
			status:     model.StatusDone,
			setupMock:  func(fixture) {},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name:   "unknown report",
			id:     reportID,
			status: model.StatusDone,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Report{}, nil)
			},
			wantErr:    true,
			wantReason: failure.ReasonNotFound,
		},
		{
			name:   "close fails",
			id:     reportID,
			status: model.StatusDone,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(open, nil)
				f.repo.EXPECT().CloseGroup(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("deadlock"))
			},
			wantErr:    true,
			wantReason: failure.ReasonPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")

			res, err := f.svc.UpdateStatus(ctx, tt.id, dto.UpdateStatusRequest{Status: tt.status})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantReason, failure.GetReason(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUpdated, res.Updated)
			assert.Equal(t, tt.status, res.Status)
		})
	}
}

func TestReportService_GetMine(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Report, error) {
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
			assert.Equal(t, "u-1", filter.Filters[0].(gDto.Filter).Value)

			return []model.Report{{ID: reportID}}, nil
		})

	res, err := f.svc.GetMine(reporterContext(constant.RoleStudent), gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Len(t, res.Reports, 1)
}
