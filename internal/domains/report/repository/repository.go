package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/internal/domains/report/model"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	gRepo "campusroom/shared/repository"
	"campusroom/shared/timezone"
)

// queryGrouped returns the latest open report of every (room, category,
// time bucket) group with the group size.
const queryGrouped = `
WITH grouped AS (
	SELECT room_code, category, time_bucket, COUNT(*) AS report_count, MAX(created_at) AS last_created_at
	FROM reports
	WHERE status <> 'done'
	GROUP BY room_code, category, time_bucket
), latest AS (
	SELECT DISTINCT ON (room_code, category, time_bucket) *
	FROM reports
	WHERE status <> 'done'
	ORDER BY room_code, category, time_bucket, created_at DESC, id DESC
)
SELECT latest.*, grouped.report_count
FROM latest
JOIN grouped USING (room_code, category, time_bucket)
ORDER BY latest.severity_rank ASC, grouped.last_created_at DESC, latest.id DESC`

const queryCloseGroup = `
UPDATE reports AS r
SET status = 'done', modified_at = $2, modified_by = $3
FROM reports AS target
WHERE target.id = $1
	AND r.room_code = target.room_code
	AND r.category = target.category
	AND r.time_bucket = target.time_bucket
	AND r.status <> 'done'`

type Report interface {
	Insert(ctx context.Context, report model.Report) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Report, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Report, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	FetchGrouped(ctx context.Context) ([]model.GroupedReport, error)
	CloseGroup(ctx context.Context, reportID, actor string) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Report]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Report](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) FetchGrouped(ctx context.Context) (reports []model.GroupedReport, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.FetchGrouped")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryGrouped)

	if err = r.db.Read.SelectContext(ctx, &reports, queryGrouped); err != nil {
		return nil, fmt.Errorf("failed to fetch grouped reports: %w", err)
	}

	return reports, nil
}

// CloseGroup marks every open report in the group of reportID as done and
// returns how many rows changed. An unknown id closes nothing.
func (r *repositoryImpl) CloseGroup(ctx context.Context, reportID, actor string) (closed int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.CloseGroup")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCloseGroup)

	result, err := r.db.Write.ExecContext(ctx, queryCloseGroup, reportID, timezone.Now(), actor)
	if err != nil {
		return 0, fmt.Errorf("failed to close report group: %w", err)
	}

	closed, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read closed report count: %w", err)
	}

	return closed, nil
}
