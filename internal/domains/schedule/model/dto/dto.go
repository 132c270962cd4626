package dto

import (
	"time"

	"campusroom/internal/domains/availability/interval"
	"campusroom/internal/domains/schedule/model"
)

type BlockResponse struct {
	Weekday   int    `json:"weekday"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Title     string `json:"title,omitempty"`
}

func (b *BlockResponse) FromModel(model model.WeeklyBlock) {
	b.Weekday = model.Weekday
	b.DayName = time.Weekday(model.Weekday).String()
	b.StartTime = interval.ToClockText(model.StartMinute)
	b.EndTime = interval.ToClockText(model.EndMinute)

	if model.Title != nil {
		b.Title = *model.Title
	}
}

type TimetableResponse struct {
	RoomCode string          `json:"room_code"`
	Blocks   []BlockResponse `json:"blocks"`
}

func (t *TimetableResponse) FromModels(roomCode string, models []model.WeeklyBlock) {
	t.RoomCode = roomCode

	t.Blocks = make([]BlockResponse, len(models))
	for i, mod := range models {
		t.Blocks[i].FromModel(mod)
	}
}
