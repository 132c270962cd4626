package model

import (
	"time"

	"campusroom/shared/model"
)

const (
	TableName        = "users"
	AllowedTableName = "allowed_users"
	EntityName       = "user"
	AllowedEntity    = "allowed user"

	FieldID         = "id"
	FieldNationalID = "national_id"
	FieldRole       = "role"
	FieldFullName   = "full_name"
	FieldPassword   = "password"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

type User struct {
	ID         string     `db:"id"`
	NationalID string     `db:"national_id"`
	Role       string     `db:"role"`
	FullName   *string    `db:"full_name"`
	Password   string     `db:"password"`
	Active     bool       `db:"active"`
	LastLogin  *time.Time `db:"last_login"`
	model.Metadata
}

// AllowedUser is a registration whitelist entry provisioned by the institution.
type AllowedUser struct {
	NationalID string `db:"national_id"`
	FullName   string `db:"full_name"`
	Role       string `db:"role"`
}
