package service_test

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"campusroom/infras/otel/mocks"
	"campusroom/internal/domains/availability/interval"
	"campusroom/internal/domains/availability/model"
	"campusroom/internal/domains/availability/model/dto"
	"campusroom/internal/domains/availability/service"
	"campusroom/internal/domains/availability/source"
	sourceMocks "campusroom/internal/domains/availability/source/mocks"
	reservationModel "campusroom/internal/domains/reservation/model"
	roomMocks "campusroom/internal/domains/room/mocks"
	roomModel "campusroom/internal/domains/room/model"
	scheduleModel "campusroom/internal/domains/schedule/model"
	"campusroom/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var sunday = time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	rooms        *roomMocks.MockRoomService
	schedule     *sourceMocks.MockWeeklyBlockFetcher
	reservations *sourceMocks.MockReservationFetcher
	svc          service.Availability
}

func testPolicy() model.Policy {
	return model.Policy{
		Hours:           interval.OperatingHours{Open: 480, Close: 1200},
		SlotDuration:    120,
		BookingRoles:    []string{"student", "lecturer"},
		DayLimitedRoles: []string{"student"},
		LockTTL:         10 * time.Second,
	}
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		rooms:        roomMocks.NewMockRoomService(ctrl),
		schedule:     sourceMocks.NewMockWeeklyBlockFetcher(ctrl),
		reservations: sourceMocks.NewMockReservationFetcher(ctrl),
	}
	f.svc = service.New(f.rooms, source.New(f.schedule, f.reservations, mocks.NewOtel()), testPolicy(), mocks.NewOtel())

	return f
}

func (f fixture) weekly(roomCode string, blocks ...scheduleModel.WeeklyBlock) {
	f.schedule.EXPECT().FetchWeeklyBlocks(gomock.Any(), roomCode, 0).Return(blocks, nil).AnyTimes()
}

func (f fixture) booked(roomCode string, reservations ...reservationModel.Reservation) {
	f.reservations.EXPECT().FetchActiveReservations(gomock.Any(), roomCode, sunday).Return(reservations, nil).AnyTimes()
}

func legacy() roomModel.Room {
	return roomModel.Room{Code: "Legacy 101", RoomType: roomModel.TypeRegular, HasProjector: true, Active: true}
}

func query(start, end string) dto.Query {
	return dto.Query{Date: "2024-09-01", StartTime: start, EndTime: end}
}

func TestListFreeBlocks(t *testing.T) {
	morningLecture := scheduleModel.WeeklyBlock{RoomCode: "Legacy 101", Weekday: 0, StartMinute: 480, EndMinute: 600}

	tests := []struct {
		name  string
		query dto.Query
		setup func(f fixture)
		want  []dto.Block
	}{
		{
			name:  "weekly block leaves the rest of the morning",
			query: query("08:00", "12:00"),
			setup: func(f fixture) {
				f.weekly("Legacy 101", morningLecture)
				f.booked("Legacy 101")
			},
			want: []dto.Block{{StartTime: "10:00", EndTime: "12:00", Minutes: 120}},
		},
		{
			name:  "reservation splits the free block",
			query: query("08:00", "12:00"),
			setup: func(f fixture) {
				f.weekly("Legacy 101", morningLecture)
				f.booked("Legacy 101", reservationModel.Reservation{RoomCode: "Legacy 101", StartMinute: 660, EndMinute: 690, Status: reservationModel.StatusActive})
			},
			want: []dto.Block{
				{StartTime: "10:00", EndTime: "11:00", Minutes: 60},
				{StartTime: "11:30", EndTime: "12:00", Minutes: 30},
			},
		},
		{
			name:  "window is clamped to operating hours",
			query: query("07:00", "21:00"),
			setup: func(f fixture) {
				f.weekly("Legacy 101")
				f.booked("Legacy 101")
			},
			want: []dto.Block{{StartTime: "08:00", EndTime: "20:00", Minutes: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.rooms.EXPECT().ActiveRooms(gomock.Any()).Return([]roomModel.Room{legacy()}, nil)
			tt.setup(f)

			res, err := f.svc.ListFreeBlocks(context.Background(), tt.query)

			require.NoError(t, err)
			require.Len(t, res.Rooms, 1)
			assert.Equal(t, "Legacy 101", res.Rooms[0].Code)
			assert.True(t, res.Rooms[0].HasProjector)
			assert.Equal(t, tt.want, res.Rooms[0].FreeBlocks)
			assert.Nil(t, res.Rooms[0].Slots)
		})
	}
}

func TestListFreeBlocksWithSlotsAndFilter(t *testing.T) {
	f := newFixture(t)

	f.rooms.EXPECT().Lookup(gomock.Any(), "Legacy 101").Return(legacy(), nil)
	f.weekly("Legacy 101", scheduleModel.WeeklyBlock{StartMinute: 480, EndMinute: 600})
	f.booked("Legacy 101")

	q := query("08:00", "15:30")
	q.RoomCode = "Legacy 101"
	q.SlotDuration = 120

	res, err := f.svc.ListFreeBlocks(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, []dto.Block{{StartTime: "10:00", EndTime: "15:30", Minutes: 330}}, res.Rooms[0].FreeBlocks)
	assert.Equal(t, []dto.Block{
		{StartTime: "10:00", EndTime: "12:00", Minutes: 120},
		{StartTime: "12:00", EndTime: "14:00", Minutes: 120},
	}, res.Rooms[0].Slots)
}

func TestListFreeBlocksEdgeCases(t *testing.T) {
	t.Run("fully busy room is omitted", func(t *testing.T) {
		f := newFixture(t)
		f.rooms.EXPECT().ActiveRooms(gomock.Any()).Return([]roomModel.Room{legacy()}, nil)
		f.weekly("Legacy 101", scheduleModel.WeeklyBlock{StartMinute: 480, EndMinute: 720})
		f.booked("Legacy 101")

		res, err := f.svc.ListFreeBlocks(context.Background(), query("08:00", "12:00"))

		require.NoError(t, err)
		assert.Empty(t, res.Rooms)
	})

	t.Run("window outside operating hours is empty", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.ListFreeBlocks(context.Background(), query("06:00", "07:30"))

		require.NoError(t, err)
		assert.Empty(t, res.Rooms)
		assert.Nil(t, res.Window)
	})

	t.Run("inverted window", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListFreeBlocks(context.Background(), query("12:00", "10:00"))

		assert.True(t, failure.Is(err, failure.ReasonValidation))
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListFreeBlocks(context.Background(), dto.Query{Date: "01/09/2024", StartTime: "08:00", EndTime: "10:00"})

		assert.True(t, failure.Is(err, failure.ReasonValidation))
	})

	t.Run("inactive room filter", func(t *testing.T) {
		f := newFixture(t)
		room := legacy()
		room.Active = false
		f.rooms.EXPECT().Lookup(gomock.Any(), "Legacy 101").Return(room, nil)

		q := query("08:00", "12:00")
		q.RoomCode = "Legacy 101"

		_, err := f.svc.ListFreeBlocks(context.Background(), q)

		assert.True(t, failure.Is(err, failure.ReasonNotFound))
	})
}

func TestListSlots(t *testing.T) {
	f := newFixture(t)
	safra := roomModel.Room{Code: "Safra 102", RoomType: roomModel.TypeRegular, Active: true}

	f.rooms.EXPECT().ActiveRooms(gomock.Any()).Return([]roomModel.Room{legacy(), safra}, nil)
	f.weekly("Legacy 101", scheduleModel.WeeklyBlock{StartMinute: 480, EndMinute: 600})
	f.booked("Legacy 101")
	f.weekly("Safra 102")
	f.booked("Safra 102",
		reservationModel.Reservation{StartMinute: 480, EndMinute: 510, Status: reservationModel.StatusActive},
		reservationModel.Reservation{StartMinute: 600, EndMinute: 720, Status: reservationModel.StatusActive},
	)

	res, err := f.svc.ListSlots(context.Background(), query("07:00", "14:30"))

	require.NoError(t, err)
	assert.Equal(t, 120, res.SlotDuration)
	assert.Equal(t, "08:00", res.Window.StartTime)
	require.Len(t, res.Slots, 2, "08:00-10:00 has no free room and the 14:00-14:30 remainder is dropped")

	assert.Equal(t, "10:00", res.Slots[0].StartTime)
	assert.Equal(t, "12:00", res.Slots[0].EndTime)
	require.Len(t, res.Slots[0].Rooms, 1)
	assert.Equal(t, "Legacy 101", res.Slots[0].Rooms[0].Code)

	assert.Equal(t, "12:00", res.Slots[1].StartTime)
	require.Len(t, res.Slots[1].Rooms, 2)
	assert.Equal(t, "Safra 102", res.Slots[1].Rooms[1].Code)
}

func TestIsRoomAvailable(t *testing.T) {
	f := newFixture(t)
	f.weekly("Legacy 101", scheduleModel.WeeklyBlock{StartMinute: 480, EndMinute: 600})
	f.booked("Legacy 101", reservationModel.Reservation{StartMinute: 660, EndMinute: 690, Status: reservationModel.StatusActive})

	tests := []struct {
		name   string
		window interval.Interval
		want   bool
	}{
		{name: "free gap", window: interval.Interval{Start: 600, End: 660}, want: true},
		{name: "touching a reservation is free", window: interval.Interval{Start: 690, End: 720}, want: true},
		{name: "overlaps weekly block", window: interval.Interval{Start: 570, End: 630}, want: false},
		{name: "overlaps reservation", window: interval.Interval{Start: 650, End: 670}, want: false},
		{name: "before opening", window: interval.Interval{Start: 420, End: 480}, want: false},
		{name: "after closing", window: interval.Interval{Start: 1140, End: 1260}, want: false},
		{name: "inverted", window: interval.Interval{Start: 700, End: 700}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.IsRoomAvailable(context.Background(), "Legacy 101", sunday, tt.window)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRoomAvailableAgreesWithFreeBlocks(t *testing.T) {
	rng := rand.New(rand.NewPCG(29, 31))
	hours := testPolicy().Hours

	for range 300 {
		f := newFixture(t)

		var reservations []reservationModel.Reservation

		for range rng.IntN(6) {
			start := hours.Open + rng.IntN(hours.Close-hours.Open-1)
			end := start + 1 + rng.IntN(min(180, hours.Close-start))
			reservations = append(reservations, reservationModel.Reservation{StartMinute: start, EndMinute: end, Status: reservationModel.StatusActive})
		}

		f.rooms.EXPECT().ActiveRooms(gomock.Any()).Return([]roomModel.Room{legacy()}, nil)
		f.weekly("Legacy 101")
		f.booked("Legacy 101", reservations...)

		start := hours.Open + rng.IntN(hours.Close-hours.Open-1)
		request := interval.Interval{Start: start, End: start + 1 + rng.IntN(hours.Close-start)}

		q := query(interval.ToClockText(request.Start), interval.ToClockText(request.End))

		res, err := f.svc.ListFreeBlocks(context.Background(), q)
		require.NoError(t, err)

		whole := len(res.Rooms) == 1 && len(res.Rooms[0].FreeBlocks) == 1 &&
			res.Rooms[0].FreeBlocks[0].Minutes == request.Len()

		available, err := f.svc.IsRoomAvailable(context.Background(), "Legacy 101", sunday, request)
		require.NoError(t, err)

		require.Equal(t, whole, available, "request %v reservations %v", request, reservations)
	}
}

func TestCheckRoom(t *testing.T) {
	f := newFixture(t)
	f.rooms.EXPECT().Lookup(gomock.Any(), "Legacy 101").Return(legacy(), nil)
	f.weekly("Legacy 101", scheduleModel.WeeklyBlock{StartMinute: 480, EndMinute: 600})
	f.booked("Legacy 101")

	res, err := f.svc.CheckRoom(context.Background(), "Legacy 101", query("09:00", "10:30"))

	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "09:00", res.StartTime)
	assert.Equal(t, "10:30", res.EndTime)
}
