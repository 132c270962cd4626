package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/internal/domains/room/model"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	gRepo "campusroom/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FetchActiveRooms(ctx context.Context) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldCode, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) FetchActiveRooms(ctx context.Context) ([]model.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FetchActiveRooms")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	rooms, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCode, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to fetch active rooms: %w", err)
	}

	return rooms, nil
}
