package dto

import (
	"mime/multipart"

	"campusroom/internal/domains/room/model"
	"campusroom/shared"
	gDto "campusroom/shared/dto"
	gModel "campusroom/shared/model"
	"campusroom/shared/timezone"
)

type CreateRoomRequest struct {
	Code             string                `json:"code"              validate:"required,max=50"`
	Name             string                `json:"name"              validate:"omitempty,max=100"`
	RoomType         string                `json:"room_type"         validate:"required,oneof=regular computers lab"`
	Description      string                `json:"description"       validate:"omitempty,max=255"`
	Seats            *int                  `json:"seats"             validate:"omitempty,min=0"`
	ComputerStations *int                  `json:"computer_stations" validate:"omitempty,min=0"`
	HasProjector     bool                  `json:"has_projector"`
	Image            *multipart.FileHeader `json:"image"             validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile        multipart.File        `json:"-"`
	Active           *bool                 `json:"active"            validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		Code:             shared.NormalizeSpaces(c.Code),
		Name:             c.Name,
		RoomType:         c.RoomType,
		Description:      c.Description,
		Seats:            c.Seats,
		ComputerStations: c.ComputerStations,
		HasProjector:     c.HasProjector,
		Image:            imageURL,
		Active:           active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateRoomRequest toggles detail and active fields. The code never changes.
type UpdateRoomRequest struct {
	Name             string                `db:"name"              json:"name"              validate:"omitempty,max=100"`
	RoomType         string                `db:"room_type"         json:"room_type"         validate:"omitempty,oneof=regular computers lab"`
	Description      string                `db:"description"       json:"description"       validate:"omitempty,max=255"`
	Seats            *int                  `db:"seats"             json:"seats"             validate:"omitempty,min=0"`
	ComputerStations *int                  `db:"computer_stations" json:"computer_stations" validate:"omitempty,min=0"`
	HasProjector     *bool                 `db:"has_projector"     json:"has_projector"     validate:"omitempty"`
	Image            *multipart.FileHeader `json:"image"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile        multipart.File        `json:"-"`
	Active           *bool                 `db:"active"            json:"active"            validate:"omitempty"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Name == "" && u.RoomType == "" && u.Description == "" && u.Seats == nil &&
		u.ComputerStations == nil && u.HasProjector == nil && u.Image == nil && u.Active == nil
}

type RoomResponse struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	RoomType         string `json:"room_type"`
	Description      string `json:"description"`
	Seats            *int   `json:"seats"`
	ComputerStations *int   `json:"computer_stations"`
	HasProjector     bool   `json:"has_projector"`
	Image            string `json:"image"`
	Active           bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.Code = model.Code
	r.Name = model.DisplayName()
	r.RoomType = model.RoomType
	r.Description = model.Description
	r.Seats = model.Seats
	r.ComputerStations = model.ComputerStations
	r.HasProjector = model.HasProjector
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
