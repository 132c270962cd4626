package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/internal/domains/schedule/model"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	gRepo "campusroom/shared/repository"
)

type WeeklySchedule interface {
	FetchWeeklyBlocks(ctx context.Context, roomCode string, weekday int) ([]model.WeeklyBlock, error)
	FetchByRoom(ctx context.Context, roomCode string) ([]model.WeeklyBlock, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.WeeklyBlock]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) WeeklySchedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.WeeklyBlock](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

var orderByWeekAndStart = gDto.QueryParams{SortBy: model.FieldWeekday + ", " + model.FieldStartMinute, SortDir: gDto.SortDirAsc}

func (r *repositoryImpl) FetchWeeklyBlocks(ctx context.Context, roomCode string, weekday int) ([]model.WeeklyBlock, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".weekly_block.FetchWeeklyBlocks")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomCode, Operator: gDto.FilterOperatorEq, Value: roomCode, Table: model.TableName},
			gDto.Filter{Field: model.FieldWeekday, Operator: gDto.FilterOperatorEq, Value: weekday, Table: model.TableName},
		},
	}

	blocks, err := r.GetAll(ctx, orderByWeekAndStart, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to fetch weekly blocks for %s/%d: %w", roomCode, weekday, err)
	}

	return blocks, nil
}

func (r *repositoryImpl) FetchByRoom(ctx context.Context, roomCode string) ([]model.WeeklyBlock, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".weekly_block.FetchByRoom")
	defer scope.End()

	blocks, err := r.GetAll(ctx, orderByWeekAndStart, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomCode, Operator: gDto.FilterOperatorEq, Value: roomCode, Table: model.TableName},
		},
	})
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to fetch timetable for %s: %w", roomCode, err)
	}

	return blocks, nil
}
