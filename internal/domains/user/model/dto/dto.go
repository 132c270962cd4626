package dto

import (
	"time"

	"campusroom/internal/domains/user/model"
	"campusroom/shared"
	gDto "campusroom/shared/dto"
)

type UserResponse struct {
	ID         string     `json:"id"`
	NationalID string     `json:"national_id"`
	Role       string     `json:"role"`
	FullName   *string    `json:"full_name,omitempty"`
	Active     bool       `json:"active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.NationalID = model.NationalID
	r.Role = model.Role
	r.FullName = model.FullName
	r.Active = model.Active
	r.LastLogin = model.LastLogin
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.FullName == nil && r.Active == nil
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
