package service

import (
	"context"
	"strconv"

	"campusroom/config"
	"campusroom/infras/otel"
	"campusroom/internal/domains/schedule/model"
	"campusroom/internal/domains/schedule/model/dto"
	"campusroom/internal/domains/schedule/repository"
	"campusroom/shared"
	"campusroom/shared/cache"
	"campusroom/shared/constant"
	"campusroom/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheWeeklyBlocks = "schedule:blocks"
	cacheTimetable    = "schedule:timetable"
)

// WeeklySchedule is the read side of the recurring timetable. Blocks are
// provisioned by migrations and never change at runtime, so they are cached
// for the configured TTL without invalidation.
type WeeklySchedule interface {
	FetchWeeklyBlocks(ctx context.Context, roomCode string, weekday int) ([]model.WeeklyBlock, error)
	Timetable(ctx context.Context, roomCode string) (dto.TimetableResponse, error)
}

type serviceImpl struct {
	repo  repository.WeeklySchedule
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.WeeklySchedule, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) WeeklySchedule {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) FetchWeeklyBlocks(ctx context.Context, roomCode string, weekday int) (blocks []model.WeeklyBlock, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.FetchWeeklyBlocks")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheWeeklyBlocks, roomCode, strconv.Itoa(weekday))

	if err = s.cache.Get(ctx, cacheKey, &blocks); err == nil {
		return blocks, nil
	}

	blocks, err = s.repo.FetchWeeklyBlocks(ctx, roomCode, weekday)
	if err != nil {
		log.Error().Err(err).Str("room", roomCode).Int("weekday", weekday).Msg("failed to fetch weekly blocks")

		return nil, failure.Persistence(err)
	}

	s.save(ctx, cacheKey, blocks)

	return blocks, nil
}

func (s *serviceImpl) Timetable(ctx context.Context, roomCode string) (res dto.TimetableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Timetable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	roomCode = shared.NormalizeSpaces(roomCode)
	cacheKey := shared.BuildCacheKey(cacheTimetable, roomCode)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for timetable")

		return res, nil
	}

	blocks, err := s.repo.FetchByRoom(ctx, roomCode)
	if err != nil {
		log.Error().Err(err).Str("room", roomCode).Msg("failed to fetch timetable")

		return res, failure.Persistence(err)
	}

	res.FromModels(roomCode, blocks)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save weekly schedule to cache")
		}
	}()
}
