package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/internal/domains/reservation/model"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/logger"
	gRepo "campusroom/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrOverlap is returned by InsertIfFree when an active reservation already
// covers part of the requested window.
var ErrOverlap = errors.New("reservation overlaps an active reservation")

// ErrDailyLimit is returned by InsertIfFree when a day-limited user already
// holds an active reservation on the date.
var ErrDailyLimit = errors.New("user already holds an active reservation on this date")

const queryLockOverlapping = `SELECT id FROM reservations
	WHERE room_code = $1 AND reservation_date = $2 AND status = 'active'
		AND start_minute < $4 AND end_minute > $3
	FOR UPDATE`

// queryLockUserDay serializes day-limited inserts of one user for one date
// until the transaction ends. Row locks cannot cover a row that does not
// exist yet.
const queryLockUserDay = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

const queryUserActiveOnDate = `SELECT EXISTS (
	SELECT 1 FROM reservations
	WHERE user_id = $1 AND reservation_date = $2 AND status = 'active'
)`

type Reservation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FetchActiveReservations(ctx context.Context, roomCode string, date time.Time) ([]model.Reservation, error)
	HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error)
	InsertIfFree(ctx context.Context, reservation model.Reservation, dailyLimited bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func activeOn(date time.Time, filters ...gDto.Filter) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldReservationDate, Operator: gDto.FilterOperatorEq, Value: date, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusActive, Table: model.TableName},
		},
	}

	for _, filter := range filters {
		group.Filters = append(group.Filters, filter)
	}

	return group
}

func (r *repositoryImpl) FetchActiveReservations(ctx context.Context, roomCode string, date time.Time) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FetchActiveReservations")
	defer scope.End()

	filter := activeOn(date, gDto.Filter{Field: model.FieldRoomCode, Operator: gDto.FilterOperatorEq, Value: roomCode, Table: model.TableName})

	reservations, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartMinute, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to fetch active reservations: %w", err)
	}

	return reservations, nil
}

func (r *repositoryImpl) HasActiveOnDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasActiveOnDate")
	defer scope.End()

	exist, err := r.Exist(ctx, activeOn(date, gDto.Filter{Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: userID, Table: model.TableName}))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check daily reservation: %w", err)
	}

	return exist, nil
}

// InsertIfFree locks the overlapping active rows of the room for the date and
// inserts only when there are none. The exclusion constraint on the table
// covers the gap a row lock cannot, and surfaces as ErrOverlap as well.
// With dailyLimited the user's other active reservation for the date is
// checked under a per-user advisory lock in the same transaction.
func (r *repositoryImpl) InsertIfFree(ctx context.Context, reservation model.Reservation, dailyLimited bool) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertIfFree")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if dailyLimited {
		if err = r.checkUserDay(ctx, tx, reservation); err != nil {
			return err
		}
	}

	var overlapping []string

	err = tx.SelectContext(ctx, &overlapping, queryLockOverlapping,
		reservation.RoomCode, reservation.Date, reservation.StartMinute, reservation.EndMinute)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock overlapping reservations: %w", err)
	}

	if len(overlapping) > 0 {
		return ErrOverlap
	}

	if err = r.InsertTx(ctx, tx, reservation); err != nil {
		if IsOverlap(err) {
			return ErrOverlap
		}

		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		if IsOverlap(err) {
			return ErrOverlap
		}

		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

func (r *repositoryImpl) checkUserDay(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) error {
	key := "reservation:" + reservation.UserID + ":" + reservation.Date.Format(constant.CalendarFormat)

	if _, err := tx.ExecContext(ctx, queryLockUserDay, key); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock user day: %w", err)
	}

	var booked bool

	if err := tx.GetContext(ctx, &booked, queryUserActiveOnDate, reservation.UserID, reservation.Date); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check daily reservation: %w", err)
	}

	if booked {
		return ErrDailyLimit
	}

	return nil
}

// IsOverlap reports whether err is the exclusion-constraint violation raised
// for two active reservations sharing room, date and minutes.
func IsOverlap(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation
}
