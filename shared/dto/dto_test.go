package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"campusroom/shared/constant"
	"campusroom/shared/dto"
	"campusroom/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	var metadata dto.Metadata

	metadata.FromModel(model.Metadata{
		CreatedAt:  time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC),
		CreatedBy:  "staff-1",
		ModifiedBy: "staff-2",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.NotEmpty(t, metadata.ModifiedAt)
	assert.Equal(t, "staff-1", metadata.CreatedBy)
	assert.Equal(t, "staff-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		withDefaults bool
		want         dto.QueryParams
	}{
		{
			name:  "explicit values",
			query: "page=2&limit=20&sort_by=code&sort_dir=asc",
			want:  dto.QueryParams{Page: 2, Limit: 20, SortBy: "code", SortDir: dto.SortDirAsc},
		},
		{
			name:         "defaults fill the gaps",
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name: "no defaults leaves zero values",
			want: dto.QueryParams{},
		},
		{
			name:         "garbage paging is ignored",
			query:        "page=abc&limit=-5",
			withDefaults: true,
			want: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:  "limit is capped",
			query: "limit=5000",
			want:  dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:  "unknown direction is dropped",
			query: "sort_by=name&sort_dir=sideways",
			want:  dto.QueryParams{SortBy: "name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/rooms?"+tt.query, nil)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.withDefaults)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 3}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "code", Table: "rooms", Operator: dto.FilterOperatorEq, Value: "Safra 102"},
			wantWhere: "rooms.code = :code",
			wantArgs:  map[string]any{"code": "Safra 102"},
		},
		{
			name:      "greater or equal with arg name",
			filter:    dto.Filter{Field: "start_minute", ArgName: "from", Operator: dto.FilterOperatorGreaterEq, Value: 600},
			wantWhere: "start_minute >= :from",
			wantArgs:  map[string]any{"from": 600},
		},
		{
			name:      "like lowers both sides",
			filter:    dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: "Saf"},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%Saf%"},
		},
		{
			name:      "in expands a slice",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"open", "in_progress"}},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "open", "status_1": "in_progress"},
		},
		{
			name:      "in with empty slice matches nothing",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with a scalar renders nothing",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: "open"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "closed_at", Operator: dto.FilterIsNull},
			wantWhere: "closed_at IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_code", Operator: dto.FilterOperatorEq, Value: "Katzir 305"},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: "bogus"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "category", Operator: dto.FilterOperatorEq, Value: "projector"},
					dto.Filter{Field: "category", ArgName: "category_alt", Operator: dto.FilterOperatorEq, Value: "computers"},
				},
			},
			"not a filter",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_code = :room_code AND (category = :category OR category = :category_alt))", where)
	assert.Equal(t, map[string]any{
		"room_code":    "Katzir 305",
		"category":     "projector",
		"category_alt": "computers",
	}, args)

	empty := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.NotNil(t, args)
}

func TestFilterGroup_AddIfNotEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	group.AddIfNotEmpty(dto.Filter{Field: "name", Operator: dto.FilterOperatorLike, Value: ""})
	group.AddIfNotEmpty(dto.Filter{Field: "room_type", Operator: dto.FilterOperatorEq, Value: "lab"})
	group.AddIfNotEmpty(dto.Filter{Field: "active", Operator: dto.FilterOperatorEq, Value: false})

	assert.Len(t, group.Filters, 2)
}
