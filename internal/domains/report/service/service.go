package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Report=MockReportService

import (
	"context"
	"slices"
	"time"

	"campusroom/config"
	"campusroom/infras/kafka"
	"campusroom/infras/otel"
	"campusroom/internal/domains/report/model"
	"campusroom/internal/domains/report/model/dto"
	"campusroom/internal/domains/report/repository"
	"campusroom/internal/domains/report/triage"
	roomService "campusroom/internal/domains/room/service"
	"campusroom/shared"
	"campusroom/shared/cache"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"
	"campusroom/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGrouped   = "report:grouped"
	publishTimeout = 5 * time.Second
)

var reporterRoles = []string{constant.RoleStudent, constant.RoleLecturer}

type Report interface {
	Create(ctx context.Context, req dto.CreateReportRequest) (dto.ReportResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReportsResponse, error)
	Get(ctx context.Context, id string) (dto.ReportResponse, error)
	GetGrouped(ctx context.Context) (dto.GroupedReportsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.UpdateStatusResponse, error)
}

type serviceImpl struct {
	repo       repository.Report
	rooms      roomService.Room
	classifier triage.Classifier
	cache      cache.RedisCache
	kafka      kafka.Client
	cfg        *config.Config
	otel       otel.Otel
	location   *time.Location
}

func New(
	repo repository.Report,
	rooms roomService.Room,
	classifier triage.Classifier,
	cache cache.RedisCache,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Report {
	location, err := timezone.Load(cfg.Report.BucketTimezone)
	if err != nil {
		log.Fatal().Err(err).Str("zone", cfg.Report.BucketTimezone).Msg("Invalid report bucket timezone")
	}

	if cfg.Report.BucketMinutes <= 0 || cfg.Report.BucketMinutes > 24*60 {
		log.Fatal().Int("minutes", cfg.Report.BucketMinutes).Msg("Invalid report bucket width")
	}

	return &serviceImpl{
		repo:       repo,
		rooms:      rooms,
		classifier: classifier,
		cache:      cache,
		kafka:      kafka,
		cfg:        cfg,
		otel:       otel,
		location:   location,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReportRequest) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !slices.Contains(reporterRoles, role) {
		return res, failure.Forbidden("only students and lecturers can file fault reports")
	}

	room, err := s.rooms.Lookup(ctx, req.RoomCode)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.NotFound("room " + room.Code + " not found")
	}

	result := s.classifier.Classify(ctx, triage.Input{Category: req.Category, RoomCode: room.Code, Description: req.Description})

	report := req.ToModel(userID, role, room.Code, result, func(t time.Time) time.Time {
		return model.Bucket(t, s.location, s.cfg.Report.BucketMinutes)
	})

	if err = s.repo.Insert(ctx, report); err != nil {
		log.Error().Err(err).Str("room", room.Code).Msg("failed to insert report")

		return res, failure.Persistence(err)
	}

	log.Info().Str("id", report.ID).Str("room", room.Code).Int("severity", report.SeverityRank).Str("source", report.TriageSource).Msg("report filed")

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		s.invalidate(c)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Report, kafka.Message{Key: report.ID, Value: dto.NewEvent(report)}); err != nil {
			log.Error().Err(err).Str("id", report.ID).Msg("failed to publish report event")
		}
	}()

	res.FromModel(report)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, model.FieldReporterID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reports")

		return res, failure.Persistence(err)
	}

	params.SortBy = constant.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	reports, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reports")

		return res, failure.Persistence(err)
	}

	res.FromModels(reports, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	report, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(report)

	return res, nil
}

// GetGrouped is the staff dashboard: one representative per open group,
// most severe first.
func (s *serviceImpl) GetGrouped(ctx context.Context) (res dto.GroupedReportsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.GetGrouped")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheGrouped, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGrouped).Msg("cache hit for grouped reports")

		return res, nil
	}

	groups, err := s.repo.FetchGrouped(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch grouped reports")

		return res, failure.Persistence(err)
	}

	res.FromModels(groups)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGrouped, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save grouped reports to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves a report to a new status. Done closes the whole group
// the report belongs to.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.UpdateStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	report, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.Status = req.Status

	if req.Status == model.StatusDone {
		res.Updated, err = s.repo.CloseGroup(ctx, report.ID, actor)
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to close report group")

			return res, failure.Persistence(err)
		}
	} else {
		fields := shared.TransformFields(struct {
			Status string `db:"status"`
		}{Status: req.Status}, actor)

		if err = s.repo.Update(ctx, fields, shared.FilterByID(report.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to update report status")

			return res, failure.Persistence(err)
		}

		res.Updated = 1
	}

	go s.invalidate(context.WithoutCancel(ctx))

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Report, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Report{}, failure.NotFound("report not found")
	}

	report, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get report")

		return report, failure.Persistence(err)
	}

	if report.ID == constant.Empty {
		return report, failure.NotFound("report not found")
	}

	return report, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheGrouped); err != nil {
		log.Error().Err(err).Msg("failed to delete grouped reports from cache")
	}
}
