package model

import (
	"time"

	"campusroom/internal/domains/availability/interval"
	"campusroom/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldRoomCode        = "room_code"
	FieldReservationDate = "reservation_date"
	FieldStartMinute     = "start_minute"
	FieldEndMinute       = "end_minute"
	FieldStatus          = "status"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Role        string    `db:"role"`
	RoomCode    string    `db:"room_code"`
	Date        time.Time `db:"reservation_date"`
	StartMinute int       `db:"start_minute"`
	EndMinute   int       `db:"end_minute"`
	Status      string    `db:"status"`
	model.Metadata
}

func (r Reservation) Interval() interval.Interval {
	return interval.Interval{Start: r.StartMinute, End: r.EndMinute}
}

func (r Reservation) IsActive() bool {
	return r.Status == StatusActive
}
