package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusroom/config"
	"campusroom/infras/kafka"
	"campusroom/infras/otel"
	"campusroom/internal/domains/availability/interval"
	availabilityModel "campusroom/internal/domains/availability/model"
	availabilityService "campusroom/internal/domains/availability/service"
	"campusroom/internal/domains/reservation/model"
	"campusroom/internal/domains/reservation/model/dto"
	"campusroom/internal/domains/reservation/repository"
	roomService "campusroom/internal/domains/room/service"
	"campusroom/shared"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"
	"campusroom/shared/lock"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	rooms        roomService.Room
	availability availabilityService.Availability
	locker       lock.Locker
	kafka        kafka.Client
	policy       availabilityModel.Policy
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	rooms roomService.Room,
	availability availabilityService.Availability,
	locker lock.Locker,
	kafka kafka.Client,
	policy availabilityModel.Policy,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:         repo,
		rooms:        rooms,
		availability: availability,
		locker:       locker,
		kafka:        kafka,
		policy:       policy,
		cfg:          cfg,
		otel:         otel,
	}
}

// Create admits a booking: validate, apply the daily limit, re-check
// availability and insert, all while holding the room and user locks.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if !s.policy.CanBook(role) {
		return res, failure.Forbidden(fmt.Sprintf("role %q cannot reserve rooms", role))
	}

	date, window, err := s.validate(req)
	if err != nil {
		return res, err
	}

	room, err := s.rooms.Lookup(ctx, req.RoomCode)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.NotFound(fmt.Sprintf("room %s not found", room.Code))
	}

	day := date.Format(constant.CalendarFormat)

	release, err := s.acquire(ctx, lock.Key("room", room.Code, day), "another booking for this room is in progress")
	if err != nil {
		return res, err
	}
	defer release()

	if s.policy.IsDayLimited(role) {
		releaseUser, err := s.acquire(ctx, lock.Key("user", userID, day), "another booking of yours is in progress")
		if err != nil {
			return res, err
		}
		defer releaseUser()

		booked, err := s.repo.HasActiveOnDate(ctx, userID, date)
		if err != nil {
			log.Error().Err(err).Str("user", userID).Msg("failed to check daily reservation")

			return res, failure.Persistence(err)
		}

		if booked {
			return res, dailyLimitViolation(day)
		}
	}

	available, err := s.availability.IsRoomAvailable(ctx, room.Code, date, window)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !available {
		return res, failure.Conflict(fmt.Sprintf("room %s is no longer free %s on %s", room.Code, window, day))
	}

	reservation := req.ToModel(userID, role, date, window)
	reservation.RoomCode = room.Code

	if err = s.repo.InsertIfFree(ctx, reservation, s.policy.IsDayLimited(role)); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return res, failure.Conflict(fmt.Sprintf("room %s is no longer free %s on %s", room.Code, window, day))
		case errors.Is(err, repository.ErrDailyLimit):
			return res, dailyLimitViolation(day)
		}

		log.Error().Err(err).Str("room", room.Code).Msg("failed to insert reservation")

		return res, failure.Persistence(err)
	}

	log.Info().Str("id", reservation.ID).Str("room", room.Code).Str("date", day).Str("window", window.String()).Msg("reservation created")

	s.publish(ctx, dto.EventCreated, reservation)
	res.FromModel(reservation)

	return res, nil
}

// Cancel moves an owned active reservation to cancelled. Cancelling twice is a no-op.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}

	if !reservation.IsActive() {
		return nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: reservation.ID, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusActive, Table: model.TableName},
		},
	}

	fields := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: model.StatusCancelled}, userID)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to cancel reservation")

		return failure.Persistence(err)
	}

	reservation.Status = model.StatusCancelled
	s.publish(ctx, dto.EventCancelled, reservation)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.owned(ctx, id, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, failure.Persistence(err)
	}

	params.SortBy = model.FieldReservationDate + " " + gDto.SortDirDesc + ", " + model.FieldStartMinute
	params.SortDir = gDto.SortDirDesc

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, failure.Persistence(err)
	}

	res.FromModels(reservations, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) validate(req dto.CreateReservationRequest) (time.Time, interval.Interval, error) {
	date, err := req.Day()
	if err != nil {
		return time.Time{}, interval.Interval{}, failure.Validation("date must be a date in YYYY-MM-DD format")
	}

	window, err := req.Window()

	switch {
	case errors.Is(err, interval.ErrInvertedWindow):
		return time.Time{}, interval.Interval{}, failure.Validation("end time must be after start time")
	case err != nil:
		return time.Time{}, interval.Interval{}, failure.Validation(err.Error())
	}

	if !s.policy.Hours.Contains(window) {
		return time.Time{}, interval.Interval{}, failure.Validation("reservations are accepted only within " + s.policy.Hours.Window().String())
	}

	return date, window, nil
}

func (s *serviceImpl) owned(ctx context.Context, id, userID string) (model.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Reservation{}, failure.NotFound("reservation not found")
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: id, Table: model.TableName},
			gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: userID, Table: model.TableName},
		},
	}

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get reservation")

		return reservation, failure.Persistence(err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found")
	}

	return reservation, nil
}

func dailyLimitViolation(day string) error {
	return failure.PolicyViolation("you already have an active reservation on " + day + "; cancel it before booking again")
}

// acquire takes a try-lock. Contention is a conflict; an unreachable lock
// store is logged and admission continues on the database guarantees alone.
func (s *serviceImpl) acquire(ctx context.Context, key, busyMessage string) (func(), error) {
	token, err := s.locker.Acquire(ctx, key, s.policy.LockTTL)

	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		return nil, failure.Conflict(busyMessage)
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("lock store unavailable, continuing without lock")

		return func() {}, nil
	}

	return func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release lock")
		}
	}, nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, reservation model.Reservation) {
	event := dto.NewEvent(eventType, reservation)

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.Reservation, kafka.Message{Key: reservation.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("id", reservation.ID).Str("event", eventType).Msg("failed to publish reservation event")
		}
	}()
}
