package model

import "campusroom/internal/domains/availability/interval"

const (
	TableName  = "weekly_schedule"
	EntityName = "weekly_block"

	FieldID          = "id"
	FieldRoomCode    = "room_code"
	FieldWeekday     = "weekday"
	FieldStartMinute = "start_minute"
	FieldEndMinute   = "end_minute"
)

// WeeklyBlock is a recurring commitment of a room, repeated on every matching weekday.
type WeeklyBlock struct {
	ID          int64   `db:"id"`
	RoomCode    string  `db:"room_code"`
	Weekday     int     `db:"weekday"`
	StartMinute int     `db:"start_minute"`
	EndMinute   int     `db:"end_minute"`
	Title       *string `db:"title"`
}

func (w WeeklyBlock) Interval() interval.Interval {
	return interval.Interval{Start: w.StartMinute, End: w.EndMinute}
}
