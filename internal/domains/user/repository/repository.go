package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/internal/domains/user/model"
	gDto "campusroom/shared/dto"
	gRepo "campusroom/shared/repository"
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type AllowedUser interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AllowedUser, error)
}

// New stores registered accounts. Everything it needs is covered by the
// generic repository.
func New(db *postgres.Connection, otel otel.Otel) User {
	repo := gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repo
}

// NewAllowedUser reads the provisioning whitelist keyed by national ID. Rows
// are seeded by migrations, never written here.
func NewAllowedUser(db *postgres.Connection, otel otel.Otel) AllowedUser {
	repo := gRepo.NewRepository[model.AllowedUser](model.AllowedEntity, model.AllowedTableName, model.FieldNationalID, db, otel)

	return &repo
}
