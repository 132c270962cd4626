package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"reflect"
	"strconv"
	"strings"

	"campusroom/shared/cache"
	"campusroom/shared/constant"
	"campusroom/shared/dto"
	"campusroom/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

// ConvertStringToBool parses an optional boolean query value. Empty or
// malformed input yields nil so the filter is skipped.
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &parsed
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero db-tagged fields of an update request to
// column values and stamps the audit columns.
func TransformFields(data any, username string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: username,
	}

	for index := range typ.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == constant.Empty || column == "-" || val.Field(index).IsZero() {
			continue
		}

		fields[column] = val.Field(index).Interface()
	}

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func ConvertStringToInt(value string) (int, error) {
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert string to int: %w", err)
	}

	return intValue, nil
}

// NormalizeSpaces trims the value and collapses inner whitespace runs, so "B  102 " matches "B 102".
func NormalizeSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a stable key from the query parameters and the rendered filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	payload, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cache key payload")

		return BuildCacheKey(prefix, where)
	}

	hash := fnv.New64a()
	_, _ = hash.Write(payload)

	return BuildCacheKey(prefix, strconv.FormatUint(hash.Sum64(), 16))
}

// InvalidateCaches drops every key under prefix. Errors are logged, callers run it in the background.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
