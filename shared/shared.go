package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"afristay/shared/cache"
	"afristay/shared/constant"
	"afristay/shared/dto"
	"afristay/shared/timezone"

	"github.com/rs/zerolog/log"
)

// parseOptional returns nil for an empty or malformed value.
func parseOptional[V any](value, kind string, parse func(string) (V, error)) *V {
	if value == "" {
		return nil
	}

	parsed, err := parse(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("failed to convert string to " + kind)

		return nil
	}

	return &parsed
}

func ConvertStringToBool(value string) *bool {
	return parseOptional(value, "bool", strconv.ParseBool)
}

func ConvertStringToInt64(value string) *int64 {
	return parseOptional(value, "int64", func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// CalculateTotalPage never returns less than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero db-tagged fields of data to an update set
// stamped with the modification time and actor. Pointers are dereferenced.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		field := val.Field(index)

		if column == "" || field.IsZero() {
			continue
		}

		updatedFields[column] = reflect.Indirect(field).Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

func FilterEq(field, table string, value any) dto.Filter {
	return dto.Filter{
		Field:    field,
		Value:    value,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	}
}

// FilterAnd joins the given filters with AND.
func FilterAnd(filters ...any) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterAnd(FilterEq(fieldID, table, id))
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeySeparator)
}

// BuildCacheKeyWithQuery hashes the pagination parameters and the rendered where clause
// so equal queries share a key regardless of argument order.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	hash := sha256.New()
	fmt.Fprintf(hash, "%d|%d|%s|%s|%s", params.Page, params.Limit, params.SortBy, params.SortDir, where)

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(hash, "|%s=%v", name, args[name])
	}

	return BuildCacheKey(prefix, hex.EncodeToString(hash.Sum(nil)))
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.CacheKeyWildcard); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
