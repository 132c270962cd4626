// Package source gathers the busy intervals of a room on a date from the
// weekly timetable and from active reservations.
package source

//go:generate go run go.uber.org/mock/mockgen -source=./source.go -destination=./mocks/source_mock.go -package=mocks

import (
	"context"
	"time"

	"campusroom/infras/otel"
	"campusroom/internal/domains/availability/interval"
	reservationModel "campusroom/internal/domains/reservation/model"
	scheduleModel "campusroom/internal/domains/schedule/model"
	"campusroom/shared/constant"
	"campusroom/shared/failure"

	"github.com/rs/zerolog/log"
)

type WeeklyBlockFetcher interface {
	FetchWeeklyBlocks(ctx context.Context, roomCode string, weekday int) ([]scheduleModel.WeeklyBlock, error)
}

type ReservationFetcher interface {
	FetchActiveReservations(ctx context.Context, roomCode string, date time.Time) ([]reservationModel.Reservation, error)
}

type Busy interface {
	// GetBusyIntervals returns, unsorted, every weekly block on the weekday of
	// date and every active reservation on date that overlaps window.
	GetBusyIntervals(ctx context.Context, roomCode string, date time.Time, window interval.Interval) ([]interval.Interval, error)
}

type busyImpl struct {
	schedule     WeeklyBlockFetcher
	reservations ReservationFetcher
	otel         otel.Otel
}

func New(schedule WeeklyBlockFetcher, reservations ReservationFetcher, otel otel.Otel) Busy {
	return &busyImpl{
		schedule:     schedule,
		reservations: reservations,
		otel:         otel,
	}
}

func (b *busyImpl) GetBusyIntervals(ctx context.Context, roomCode string, date time.Time, window interval.Interval) (busy []interval.Interval, err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetBusyIntervals")
	defer scope.End()
	defer scope.TraceIfError(&err)

	blocks, err := b.schedule.FetchWeeklyBlocks(ctx, roomCode, interval.WeekdayOf(date))
	if err != nil {
		return nil, persistence(err)
	}

	reservations, err := b.reservations.FetchActiveReservations(ctx, roomCode, date)
	if err != nil {
		log.Error().Err(err).Str("room", roomCode).Msg("failed to fetch active reservations")

		return nil, persistence(err)
	}

	busy = make([]interval.Interval, 0, len(blocks)+len(reservations))

	for _, block := range blocks {
		if span := block.Interval(); span.Overlaps(window) {
			busy = append(busy, span)
		}
	}

	for _, reservation := range reservations {
		if span := reservation.Interval(); reservation.IsActive() && span.Overlaps(window) {
			busy = append(busy, span)
		}
	}

	return busy, nil
}

func persistence(err error) error {
	if failure.Is(err, failure.ReasonPersistence) {
		return err
	}

	return failure.Persistence(err)
}
