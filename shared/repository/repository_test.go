package repository

import (
	"testing"

	"campusroom/infras/otel/mocks"
	"campusroom/shared/dto"
	"campusroom/shared/model"

	"github.com/stretchr/testify/assert"
)

type slotRow struct {
	ID          string `db:"id"`
	RoomCode    string `db:"room_code"`
	StartMinute int    `db:"start_minute"`
	Note        string `db:"-"`
	Ignored     string
	model.Metadata
}

func newSlotRepo() Repository[slotRow] {
	return NewRepository[slotRow]("slot", "slots", "id", nil, mocks.NewOtel())
}

func TestColumnsOf(t *testing.T) {
	repo := newSlotRepo()

	assert.Equal(t, []string{
		"id", "room_code", "start_minute",
		"created_at", "modified_at", "created_by", "modified_by",
	}, repo.columns)
}

func TestSelectList(t *testing.T) {
	repo := newSlotRepo()

	assert.Equal(t, "id, room_code", repo.selectList([]string{"room_code", "id", "unknown"}))
	assert.Contains(t, repo.selectList(nil), "modified_by")
}

func TestOrderBy(t *testing.T) {
	repo := newSlotRepo()

	tests := []struct {
		name   string
		params dto.QueryParams
		want   string
	}{
		{name: "no sort", params: dto.QueryParams{}, want: ""},
		{name: "single column", params: dto.QueryParams{SortBy: "start_minute", SortDir: dto.SortDirDesc}, want: "ORDER BY start_minute DESC"},
		{name: "missing direction defaults to ascending", params: dto.QueryParams{SortBy: "room_code"}, want: "ORDER BY room_code ASC"},
		{
			name:   "several columns with inline direction",
			params: dto.QueryParams{SortBy: "created_at desc, start_minute", SortDir: dto.SortDirAsc},
			want:   "ORDER BY created_at DESC, start_minute ASC",
		},
		{name: "unknown column falls back to primary", params: dto.QueryParams{SortBy: "password", SortDir: dto.SortDirAsc}, want: "ORDER BY id ASC"},
		{name: "injection attempt falls back to primary", params: dto.QueryParams{SortBy: "id; DROP TABLE slots", SortDir: dto.SortDirDesc}, want: "ORDER BY id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.orderBy(tt.params))
		})
	}
}

func TestPaginate(t *testing.T) {
	args := map[string]any{}
	assert.Empty(t, paginate(dto.QueryParams{Page: 2}, args))
	assert.Empty(t, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit", paginate(dto.QueryParams{Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5}, args)

	args = map[string]any{}
	assert.Equal(t, "LIMIT :limit OFFSET :offset", paginate(dto.QueryParams{Page: 3, Limit: 5}, args))
	assert.Equal(t, map[string]any{"limit": 5, "offset": 10}, args)
}

func TestBuildWhereClause(t *testing.T) {
	repo := newSlotRepo()

	where, args := repo.BuildWhereClause(t.Context(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.NotNil(t, args)

	where, args = repo.BuildWhereClause(t.Context(), dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_code", Operator: dto.FilterOperatorEq, Value: "Legacy 101"},
		},
	})
	assert.Equal(t, "WHERE (room_code = :room_code)", where)
	assert.Equal(t, "Legacy 101", args["room_code"])
}
