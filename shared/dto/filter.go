package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreaterEq = "greater_eq"
	FilterIsNull            = "is_null"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisons = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "!=",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreaterEq: ">=",
}

// Filter is a single predicate on one column. ArgName overrides the named
// argument when the same column appears twice in a group.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq like in not_eq less_eq greater_eq is_null"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate. Unknown operators and IN with a
// non-slice value render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column, name := f.column(), f.argName()

	if op, ok := comparisons[f.Operator]; ok {
		args[name] = f.Value

		return fmt.Sprintf("%s %s :%s", column, op, name), args
	}

	switch f.Operator {
	case FilterOperatorLike:
		args[name] = fmt.Sprintf("%%%v%%", f.Value)

		return fmt.Sprintf("LOWER(%s) LIKE LOWER(:%s)", column, name), args
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)
		if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
			return "", args
		}

		if val.Len() == 0 {
			return "FALSE", args
		}

		placeholders := make([]string, val.Len())

		for i := range val.Len() {
			key := fmt.Sprintf("%s_%d", name, i)
			args[key] = val.Index(i).Interface()
			placeholders[i] = ":" + key
		}

		return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")), args
	case FilterIsNull:
		return column + " IS NULL", args
	}

	return "", args
}

// FilterGroup joins Filter and nested FilterGroup values with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	clauses := make([]string, 0, len(f.Filters))

	for _, item := range f.Filters {
		var (
			clause string
			arg    map[string]any
		)

		switch typed := item.(type) {
		case Filter:
			clause, arg = typed.GetWhereClause()
		case FilterGroup:
			clause, arg = typed.GetWhereClause()
		default:
			continue
		}

		if clause == "" {
			continue
		}

		clauses = append(clauses, clause)
		maps.Copy(args, arg)
	}

	if len(clauses) == 0 {
		return "", args
	}

	return "(" + strings.Join(clauses, " "+f.Operator+" ") + ")", args
}

// AddIfNotEmpty appends filter unless its value is an empty string.
func (f *FilterGroup) AddIfNotEmpty(filter Filter) {
	if value, ok := filter.Value.(string); ok && value == "" {
		return
	}

	f.Filters = append(f.Filters, filter)
}
