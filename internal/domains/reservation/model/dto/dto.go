package dto

import (
	"time"

	"campusroom/internal/domains/availability/interval"
	"campusroom/internal/domains/reservation/model"
	"campusroom/shared"
	"campusroom/shared/constant"
	gModel "campusroom/shared/model"
	"campusroom/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomCode  string `json:"room_code"  validate:"required,max=50"`
	Date      string `json:"date"       validate:"required,calendar"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

// Window parses the requested times. Errors wrap interval.ErrMalformedTime or
// interval.ErrInvertedWindow.
func (c *CreateReservationRequest) Window() (interval.Interval, error) {
	return interval.Parse(c.StartTime, c.EndTime) //nolint:wrapcheck
}

func (c *CreateReservationRequest) Day() (time.Time, error) {
	return time.Parse(constant.CalendarFormat, c.Date) //nolint:wrapcheck
}

func (c *CreateReservationRequest) ToModel(userID, role string, date time.Time, window interval.Interval) model.Reservation {
	now := timezone.Now()

	return model.Reservation{
		ID:          uuid.NewString(),
		UserID:      userID,
		Role:        role,
		RoomCode:    shared.NormalizeSpaces(c.RoomCode),
		Date:        date,
		StartMinute: window.Start,
		EndMinute:   window.End,
		Status:      model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ReservationResponse struct {
	ID        string    `json:"id"`
	RoomCode  string    `json:"room_code"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.RoomCode = model.RoomCode
	r.Date = model.Date.Format(constant.CalendarFormat)
	r.StartTime = interval.ToClockText(model.StartMinute)
	r.EndTime = interval.ToClockText(model.EndMinute)
	r.Role = model.Role
	r.Status = model.Status
	r.CreatedAt = model.CreatedAt
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// Event is the payload published for reservation lifecycle changes.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	RoomCode      string    `json:"room_code"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
)

func NewEvent(eventType string, model model.Reservation) Event {
	return Event{
		Type:          eventType,
		ReservationID: model.ID,
		UserID:        model.UserID,
		RoomCode:      model.RoomCode,
		Date:          model.Date.Format(constant.CalendarFormat),
		StartTime:     interval.ToClockText(model.StartMinute),
		EndTime:       interval.ToClockText(model.EndMinute),
		OccurredAt:    timezone.Now(),
	}
}
