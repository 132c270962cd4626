package model

import "campusroom/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldCode             = "code"
	FieldName             = "name"
	FieldRoomType         = "room_type"
	FieldDescription      = "description"
	FieldSeats            = "seats"
	FieldComputerStations = "computer_stations"
	FieldHasProjector     = "has_projector"
	FieldImage            = "image"
	FieldActive           = "active"
)

const (
	TypeRegular   = "regular"
	TypeComputers = "computers"
	TypeLab       = "lab"
)

// Room is identified by its code. Schedules and reservations reference it by code.
type Room struct {
	Code             string `db:"code"`
	Name             string `db:"name"`
	RoomType         string `db:"room_type"`
	Description      string `db:"description"`
	Seats            *int   `db:"seats"`
	ComputerStations *int   `db:"computer_stations"`
	HasProjector     bool   `db:"has_projector"`
	Image            string `db:"image"`
	Active           bool   `db:"active"`
	model.Metadata
}

func (r Room) DisplayName() string {
	if r.Name == "" {
		return r.Code
	}

	return r.Name
}
