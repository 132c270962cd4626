package dto

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campusroom/internal/domains/availability/interval"
	roomModel "campusroom/internal/domains/room/model"
	"campusroom/shared"
	"campusroom/shared/constant"
	"campusroom/shared/failure"
)

// Query is the availability search taken from the URL query string.
type Query struct {
	Date         string `json:"date"          validate:"required,calendar"`
	StartTime    string `json:"start_time"    validate:"required,clock"`
	EndTime      string `json:"end_time"      validate:"required,clock"`
	RoomCode     string `json:"room_code"     validate:"omitempty,max=50"`
	SlotDuration int    `json:"slot_duration" validate:"omitempty,min=1,max=1440"`
}

func (q *Query) FromRequest(r *http.Request) {
	values := r.URL.Query()

	q.Date = values.Get(constant.RequestParamDate)
	q.StartTime = values.Get(constant.RequestParamStartTime)
	q.EndTime = values.Get(constant.RequestParamEndTime)
	q.RoomCode = shared.NormalizeSpaces(values.Get(constant.RequestParamRoomCode))

	if duration, err := strconv.Atoi(values.Get(constant.RequestParamSlotDuration)); err == nil {
		q.SlotDuration = duration
	}
}

// Parse returns the calendar day and the requested window, or a validation
// failure for malformed input or an inverted window.
func (q Query) Parse() (time.Time, interval.Interval, error) {
	date, err := time.Parse(constant.CalendarFormat, q.Date)
	if err != nil {
		return time.Time{}, interval.Interval{}, failure.Validation("date must be a date in YYYY-MM-DD format")
	}

	window, err := interval.Parse(q.StartTime, q.EndTime)

	switch {
	case errors.Is(err, interval.ErrInvertedWindow):
		return time.Time{}, interval.Interval{}, failure.Validation("end time must be after start time")
	case err != nil:
		return time.Time{}, interval.Interval{}, failure.Validation(err.Error())
	}

	return date, window, nil
}

type Block struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Minutes   int    `json:"minutes"`
}

func NewBlock(span interval.Interval) Block {
	return Block{
		StartTime: interval.ToClockText(span.Start),
		EndTime:   interval.ToClockText(span.End),
		Minutes:   span.Len(),
	}
}

func NewBlocks(spans []interval.Interval) []Block {
	blocks := make([]Block, len(spans))
	for i, span := range spans {
		blocks[i] = NewBlock(span)
	}

	return blocks
}

type RoomInfo struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	RoomType         string `json:"room_type"`
	Description      string `json:"description"`
	Seats            *int   `json:"seats"`
	ComputerStations *int   `json:"computer_stations"`
	HasProjector     bool   `json:"has_projector"`
}

func (r *RoomInfo) FromModel(model roomModel.Room) {
	r.Code = model.Code
	r.Name = model.DisplayName()
	r.RoomType = model.RoomType
	r.Description = model.Description
	r.Seats = model.Seats
	r.ComputerStations = model.ComputerStations
	r.HasProjector = model.HasProjector
}

type RoomFreeBlocks struct {
	RoomInfo
	FreeBlocks []Block `json:"free_blocks"`
	// Slots is filled only when a slot duration was requested.
	Slots []Block `json:"slots,omitempty"`
}

type FreeBlocksResponse struct {
	Date   string           `json:"date"`
	Window *Block           `json:"window"`
	Rooms  []RoomFreeBlocks `json:"rooms"`
}

type Slot struct {
	Block
	Rooms []RoomInfo `json:"rooms"`
}

type SlotsResponse struct {
	Date         string `json:"date"`
	Window       *Block `json:"window"`
	SlotDuration int    `json:"slot_duration"`
	Slots        []Slot `json:"slots"`
}

type RoomAvailabilityResponse struct {
	RoomCode  string `json:"room_code"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}
