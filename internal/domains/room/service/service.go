package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"campusroom/config"
	"campusroom/infras/otel"
	"campusroom/infras/s3"
	"campusroom/internal/domains/room/model"
	"campusroom/internal/domains/room/model/dto"
	"campusroom/internal/domains/room/repository"
	"campusroom/shared"
	"campusroom/shared/cache"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom     = "room:get"
	cacheGetAllRoom  = "room:gets"
	cacheCountRoom   = "room:count"
	cacheActiveRooms = "room:active"

	imageDirectory = "rooms"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, code string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, code string) error
	// Lookup resolves a room by code after whitespace normalization.
	// Inactive rooms are returned as well; callers decide what inactive means.
	Lookup(ctx context.Context, code string) (model.Room, error)
	ActiveRooms(ctx context.Context) ([]model.Room, error)
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	code := shared.NormalizeSpaces(req.Code)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(code, model.FieldCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return failure.Persistence(err)
	}

	if exist {
		return failure.Conflict(fmt.Sprintf("room %s already exists", code))
	}

	imageURL, objectKey, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to insert room")
		s.removeImage(ctx, objectKey)

		return failure.Persistence(err)
	}

	go s.invalidate(context.WithoutCancel(ctx), code)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, failure.Persistence(err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, failure.Persistence(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, code string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	room, err := s.Lookup(ctx, code)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Lookup(ctx context.Context, code string) (room model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Lookup")
	defer scope.End()
	defer scope.TraceIfError(&err)

	code = shared.NormalizeSpaces(code)
	if code == constant.Empty {
		return room, failure.Validation("room code is required")
	}

	cacheKey := shared.BuildCacheKey(cacheGetRoom, code)

	if err = s.cache.Get(ctx, cacheKey, &room); err == nil {
		return room, nil
	}

	room, err = s.repo.Get(ctx, shared.FilterByID(code, model.FieldCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to get room")

		return room, failure.Persistence(err)
	}

	if room.Code == constant.Empty {
		return room, failure.NotFound(fmt.Sprintf("room %s not found", code))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, room, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return room, nil
}

func (s *serviceImpl) ActiveRooms(ctx context.Context) (rooms []model.Room, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ActiveRooms")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.cache.Get(ctx, cacheActiveRooms, &rooms); err == nil {
		return rooms, nil
	}

	rooms, err = s.repo.FetchActiveRooms(ctx)
	if err != nil {
		return nil, failure.Persistence(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheActiveRooms, rooms, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active rooms to cache")
		}
	}()

	return rooms, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, code string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.Validation("nothing to update")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	code = shared.NormalizeSpaces(code)
	filter := shared.FilterByID(code, model.FieldCode, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return failure.Persistence(err)
	}

	if current.Code == constant.Empty {
		return failure.NotFound(fmt.Sprintf("room %s not found", code))
	}

	imageURL, objectKey, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")
		s.removeImage(ctx, objectKey)

		return failure.Persistence(err)
	}

	if imageURL != constant.Empty {
		if previous, ok := s.s3.KeyFromURL(current.Image); ok {
			s.removeImage(ctx, previous)
		}
	}

	go s.invalidate(context.WithoutCancel(ctx), code)

	return nil
}

// uploadImage stores the image under rooms/<uuid><ext> and returns its public
// URL and object key. A missing header is not an error.
func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	key := s3.ObjectKey(imageDirectory, uuid.NewString()+strings.ToLower(filepath.Ext(header.Filename)))

	url, err := s.s3.Upload(ctx, key, file, header.Header.Get(constant.RequestHeaderContentType))
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, key, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, key string) {
	if key == constant.Empty {
		return
	}

	if err := s.s3.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove room image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, code)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	if err := s.cache.Delete(ctx, cacheActiveRooms); err != nil {
		log.Error().Err(err).Msg("failed to delete active rooms cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, cacheCountRoom)
}
