package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"campusroom/infras/otel"
	"campusroom/internal/domains/availability/interval"
	"campusroom/internal/domains/availability/model"
	"campusroom/internal/domains/availability/model/dto"
	"campusroom/internal/domains/availability/source"
	roomModel "campusroom/internal/domains/room/model"
	roomService "campusroom/internal/domains/room/service"
	"campusroom/shared/constant"
	"campusroom/shared/failure"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	ListFreeBlocks(ctx context.Context, query dto.Query) (dto.FreeBlocksResponse, error)
	ListSlots(ctx context.Context, query dto.Query) (dto.SlotsResponse, error)
	CheckRoom(ctx context.Context, roomCode string, query dto.Query) (dto.RoomAvailabilityResponse, error)
	// IsRoomAvailable is true iff window lies within operating hours and no
	// busy interval of the room on date overlaps it.
	IsRoomAvailable(ctx context.Context, roomCode string, date time.Time, window interval.Interval) (bool, error)
}

type serviceImpl struct {
	rooms  roomService.Room
	busy   source.Busy
	policy model.Policy
	otel   otel.Otel
}

func New(rooms roomService.Room, busy source.Busy, policy model.Policy, otel otel.Otel) Availability {
	return &serviceImpl{
		rooms:  rooms,
		busy:   busy,
		policy: policy,
		otel:   otel,
	}
}

func (s *serviceImpl) ListFreeBlocks(ctx context.Context, query dto.Query) (res dto.FreeBlocksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.ListFreeBlocks")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, requested, err := query.Parse()
	if err != nil {
		return res, err
	}

	res.Date = query.Date
	res.Rooms = []dto.RoomFreeBlocks{}

	window, ok := s.policy.Hours.Clamp(requested)
	if !ok {
		return res, nil
	}

	block := dto.NewBlock(window)
	res.Window = &block

	rooms, err := s.candidateRooms(ctx, query.RoomCode)
	if err != nil {
		return res, err
	}

	for _, room := range rooms {
		busy, err := s.busy.GetBusyIntervals(ctx, room.Code, date, window)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		free := interval.Available(busy, window)
		if len(free) == 0 {
			continue
		}

		entry := dto.RoomFreeBlocks{FreeBlocks: dto.NewBlocks(free)}
		entry.FromModel(room)

		if query.SlotDuration > 0 {
			entry.Slots = []dto.Block{}
			for _, span := range free {
				entry.Slots = append(entry.Slots, dto.NewBlocks(interval.Discretize(span, query.SlotDuration))...)
			}
		}

		res.Rooms = append(res.Rooms, entry)
	}

	return res, nil
}

func (s *serviceImpl) ListSlots(ctx context.Context, query dto.Query) (res dto.SlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.ListSlots")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, requested, err := query.Parse()
	if err != nil {
		return res, err
	}

	res.Date = query.Date
	res.SlotDuration = s.policy.SlotLength(query.SlotDuration)
	res.Slots = []dto.Slot{}

	window, ok := s.policy.Hours.Clamp(requested)
	if !ok {
		return res, nil
	}

	block := dto.NewBlock(window)
	res.Window = &block

	rooms, err := s.candidateRooms(ctx, query.RoomCode)
	if err != nil {
		return res, err
	}

	busyByRoom := make(map[string][]interval.Interval, len(rooms))

	for _, room := range rooms {
		busy, err := s.busy.GetBusyIntervals(ctx, room.Code, date, window)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		busyByRoom[room.Code] = busy
	}

	for _, slot := range interval.Discretize(window, res.SlotDuration) {
		entry := dto.Slot{Block: dto.NewBlock(slot), Rooms: []dto.RoomInfo{}}

		for _, room := range rooms {
			if !interval.IsFree(busyByRoom[room.Code], slot) {
				continue
			}

			var info dto.RoomInfo
			info.FromModel(room)
			entry.Rooms = append(entry.Rooms, info)
		}

		if len(entry.Rooms) > 0 {
			res.Slots = append(res.Slots, entry)
		}
	}

	return res, nil
}

func (s *serviceImpl) CheckRoom(ctx context.Context, roomCode string, query dto.Query) (res dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.CheckRoom")
	defer scope.End()
	defer scope.TraceIfError(&err)

	date, window, err := query.Parse()
	if err != nil {
		return res, err
	}

	room, err := s.activeRoom(ctx, roomCode)
	if err != nil {
		return res, err
	}

	available, err := s.IsRoomAvailable(ctx, room.Code, date, window)
	if err != nil {
		return res, err
	}

	return dto.RoomAvailabilityResponse{
		RoomCode:  room.Code,
		Date:      query.Date,
		StartTime: interval.ToClockText(window.Start),
		EndTime:   interval.ToClockText(window.End),
		Available: available,
	}, nil
}

func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomCode string, date time.Time, window interval.Interval) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.IsRoomAvailable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !window.Valid() || !s.policy.Hours.Contains(window) {
		return false, nil
	}

	busy, err := s.busy.GetBusyIntervals(ctx, roomCode, date, window)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return interval.IsFree(busy, window), nil
}

func (s *serviceImpl) candidateRooms(ctx context.Context, roomCode string) ([]roomModel.Room, error) {
	if roomCode == constant.Empty {
		return s.rooms.ActiveRooms(ctx) //nolint:wrapcheck
	}

	room, err := s.activeRoom(ctx, roomCode)
	if err != nil {
		return nil, err
	}

	return []roomModel.Room{room}, nil
}

func (s *serviceImpl) activeRoom(ctx context.Context, roomCode string) (roomModel.Room, error) {
	room, err := s.rooms.Lookup(ctx, roomCode)
	if err != nil {
		return room, err //nolint:wrapcheck
	}

	if !room.Active {
		log.Info().Str("room", room.Code).Msg("availability requested for inactive room")

		return room, failure.NotFound(fmt.Sprintf("room %s not found", room.Code))
	}

	return room, nil
}
