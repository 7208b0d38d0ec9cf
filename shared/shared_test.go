package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"afristay/shared"
	cacheMocks "afristay/shared/cache/mocks"
	"afristay/shared/constant"
	"afristay/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "true", want: ptr(true)},
		{input: "0", want: ptr(false)},
		{input: "yes", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  *int64
	}{
		{input: "", want: nil},
		{input: "42", want: ptr(int64(42))},
		{input: "-7", want: ptr(int64(-7))},
		{input: "4.2", want: nil},
		{input: "abc", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, shared.ConvertStringToInt64(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		total, limit int
		want         int
	}{
		{name: "no rows", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 30, limit: 0, want: 1},
		{name: "exact pages", total: 30, limit: 10, want: 3},
		{name: "partial last page", total: 31, limit: 10, want: 4},
		{name: "single row", total: 1, limit: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type updateListing struct {
	Title    string   `db:"title"`
	Price    *float64 `db:"price"`
	Capacity *int64   `db:"capacity"`
	Note     string
}

func TestTransformFields(t *testing.T) {
	t.Parallel()

	price := 45.5
	before := time.Now()

	fields := shared.TransformFields(&updateListing{Title: "Kivu Lodge", Price: &price, Note: "ignored"}, "owner-1")

	assert.Equal(t, "Kivu Lodge", fields["title"])
	assert.Equal(t, 45.5, fields["price"])
	assert.NotContains(t, fields, "capacity")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])

	modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time)
	require.True(t, ok)
	assert.False(t, modifiedAt.Before(before.Truncate(time.Second)))
	assert.Len(t, fields, 4)
}

func TestFilters(t *testing.T) {
	t.Parallel()

	byID := shared.FilterByID("l1", "id", "listings")
	where, args := byID.GetWhereClause()
	assert.Equal(t, "(listings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "l1"}, args)

	both := shared.FilterAnd(
		shared.FilterEq("owner_id", "listings", "o1"),
		shared.FilterEq("status", "listings", "approved"),
	)
	where, args = both.GetWhereClause()
	assert.Equal(t, "(listings.owner_id = :owner_id AND listings.status = :status)", where)
	assert.Len(t, args, 2)
}

func TestBuildCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "listing:get", shared.BuildCacheKey("listing:get"))
	assert.Equal(t, "listing:get:l1", shared.BuildCacheKey("listing:get", "l1"))
	assert.Equal(t, "booking:gets:o1:pending", shared.BuildCacheKey("booking:gets", "o1", "pending"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	t.Parallel()

	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}
	filter := func(owner string) dto.FilterGroup {
		return shared.FilterAnd(
			shared.FilterEq("owner_id", "listings", owner),
			shared.FilterEq("status", "listings", "approved"),
		)
	}

	key := shared.BuildCacheKeyWithQuery("listing:gets", params, filter("o1"))

	assert.True(t, strings.HasPrefix(key, "listing:gets:"))
	assert.Equal(t, key, shared.BuildCacheKeyWithQuery("listing:gets", params, filter("o1")))
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("listing:gets", params, filter("o2")))

	params.Page = 2
	assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("listing:gets", params, filter("o1")))
}

func TestInvalidateCaches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "listing:gets*").Return(nil)
	redisCache.EXPECT().Clear(gomock.Any(), "profile:count*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "listing:gets")
	shared.InvalidateCaches(context.Background(), redisCache, "profile:count")
}

func ptr[V any](v V) *V {
	return &v
}
