// Package repository holds the generic table gateway every domain repository
// embeds. Columns come from the `db` tags of the row type, so a struct and
// its table stay the single source of truth.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"campusroom/infras/otel"
	"campusroom/infras/postgres"
	"campusroom/shared/constant"
	"campusroom/shared/dto"
	"campusroom/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type namedExecer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	entity  string
	table   string
	primary string
	columns []string
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:      db,
		otel:    otl,
		entity:  entity,
		table:   table,
		primary: primary,
		columns: columnsOf(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, row T) error {
	return repo.insert(ctx, "Insert", repo.db.Write, row)
}

// InsertTx inserts row inside a transaction owned by the caller.
func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, row T) error {
	return repo.insert(ctx, "InsertTx", tx, row)
}

func (repo *Repository[T]) insert(ctx context.Context, op string, exec namedExecer, row T) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	named := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		named[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(named, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, values map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "Update", repo.db.Write, values, filter)
}

// UpdateTx updates rows inside a transaction owned by the caller.
func (repo *Repository[T]) UpdateTx(ctx context.Context, tx *sqlx.Tx, values map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, "UpdateTx", tx, values, filter)
}

func (repo *Repository[T]) update(ctx context.Context, op string, exec namedExecer, values map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	keys := slices.Sorted(maps.Keys(values))
	set := make([]string, len(keys))

	for i, col := range keys {
		set[i] = col + " = :" + col
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(set, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	maps.Copy(args, values)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	}); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var row T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s LIMIT 1", repo.selectList(columns), repo.table, where)

	err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &row, args)
	})

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return row, nil
	case err != nil:
		return row, repo.fail(scope, "get data", err)
	}

	return row, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := strings.Join([]string{
		"SELECT", repo.selectList(columns), "FROM", repo.table, where,
		repo.orderBy(params), paginate(params, args),
	}, " ")

	var rows []T

	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &rows, args)
	}); err != nil {
		return rows, repo.fail(scope, "get all data", err)
	}

	return rows, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s) FROM %s %s", repo.primary, repo.table, where)

	var count int

	if err := repo.read(ctx, scope, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	}); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// BuildWhereClause renders filter as a WHERE clause with named arguments.
// An empty group yields an empty clause and an empty, non-nil map.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, query string, run func(stmt *sqlx.NamedStmt) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return run(stmt)
}

func (repo *Repository[T]) selectList(columns []string) string {
	if len(columns) == 0 {
		return strings.Join(repo.columns, ", ")
	}

	picked := make([]string, 0, len(columns))
	for _, col := range repo.columns {
		if slices.Contains(columns, col) {
			picked = append(picked, col)
		}
	}

	return strings.Join(picked, ", ")
}

// orderBy accepts a comma separated list of known columns, each optionally
// followed by a direction. Anything else falls back to the primary column so
// caller supplied sort keys never reach the query text.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	dir := strings.ToUpper(params.SortDir)
	if dir != dto.SortDirAsc && dir != dto.SortDirDesc {
		dir = dto.SortDirAsc
	}

	terms := strings.Split(params.SortBy, ",")
	for i, term := range terms {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 || !slices.Contains(repo.columns, fields[0]) {
			return fmt.Sprintf("ORDER BY %s %s", repo.primary, dir)
		}

		termDir := dir
		if len(fields) == 2 {
			termDir = strings.ToUpper(fields[1])
			if termDir != dto.SortDirAsc && termDir != dto.SortDirDesc {
				return fmt.Sprintf("ORDER BY %s %s", repo.primary, dir)
			}
		}

		terms[i] = fields[0] + " " + termDir
	}

	return "ORDER BY " + strings.Join(terms, ", ")
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = params.Offset()

	return "LIMIT :limit OFFSET :offset"
}

// columnsOf walks the `db` tags of t, descending into embedded structs.
func columnsOf(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOf(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
