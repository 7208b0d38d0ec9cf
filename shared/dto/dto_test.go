package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"afristay/shared/constant"
	"afristay/shared/dto"
	"afristay/shared/model"
	"afristay/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.NewMetadata("u1", createdAt))

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)

	parsed, err := time.Parse(constant.DateFormat, metadata.CreatedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(createdAt), "rendered timestamp must keep the instant")
	assert.Equal(t, metadata.CreatedAt, metadata.ModifiedAt)
	assert.Equal(t, "u1", metadata.CreatedBy)
	assert.Equal(t, "u1", metadata.ModifiedBy)

	var partial dto.Metadata
	partial.FromModel(model.Metadata{})

	assert.Empty(t, partial.CreatedAt)
	assert.Empty(t, partial.ModifiedAt)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with zero page parameter",
			queryParams: map[string]string{
				"page": "0",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative limit parameter",
			queryParams: map[string]string{
				"limit": "-10",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "limit is capped",
			queryParams: map[string]string{
				"limit":    "5000",
				"sort_dir": "asc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Limit:   constant.MaxValueLimit,
				SortDir: dto.SortDirAsc,
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "email",
				SortDir: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := url.Values{}
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}

			req, err := http.NewRequest(http.MethodGet, "http://example.com/listings?"+query.Encode(), nil)
			require.NoError(t, err)

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, *queryParams)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 3}.Offset())
}

func TestQueryParams_RestrictSort(t *testing.T) {
	tests := []struct {
		name        string
		params      dto.QueryParams
		wantSortBy  string
		wantSortDir string
	}{
		{
			name:        "allowed column is qualified",
			params:      dto.QueryParams{SortBy: "price", SortDir: dto.SortDirAsc},
			wantSortBy:  "listings.price",
			wantSortDir: dto.SortDirAsc,
		},
		{
			name:        "unknown column falls back to default",
			params:      dto.QueryParams{SortBy: "price; DROP TABLE listings"},
			wantSortBy:  "listings." + constant.DefaultValueSortBy,
			wantSortDir: constant.DefaultValueSortDir,
		},
		{
			name:        "empty sort uses default",
			params:      dto.QueryParams{},
			wantSortBy:  "listings." + constant.DefaultValueSortBy,
			wantSortDir: constant.DefaultValueSortDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.RestrictSort("listings", "price", "title")

			assert.Equal(t, tt.wantSortBy, tt.params.SortBy)
			assert.Equal(t, tt.wantSortDir, tt.params.SortDir)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "comparisons with table and arg name",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Table: "bookings", Field: "check_in", Operator: dto.FilterOperatorLess, Value: "2025-07-10", ArgName: "until"},
					dto.Filter{Table: "bookings", Field: "check_out", Operator: dto.FilterOperatorGreater, Value: "2025-07-01", ArgName: "from"},
				},
			},
			wantWhere: "(bookings.check_in < :until AND bookings.check_out > :from)",
			wantArgs:  map[string]any{"until": "2025-07-10", "from": "2025-07-01"},
		},
		{
			name: "in expands one bind per element",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"approved", "paid"}},
				},
			},
			wantWhere: "(status IN (:status_0, :status_1))",
			wantArgs:  map[string]any{"status_0": "approved", "status_1": "paid"},
		},
		{
			name: "empty in matches nothing",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters:  []any{dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}}},
			},
			wantWhere: "(1 = 0)",
			wantArgs:  map[string]any{},
		},
		{
			name: "nested or group",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "deleted_at", Operator: dto.FilterIsNull},
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorOr,
						Filters: []any{
							dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "kigali"},
							dto.Filter{Field: "city", Operator: dto.FilterOperatorLike, Value: "kigali", ArgName: "city_search"},
						},
					},
				},
			},
			wantWhere: "(deleted_at IS NULL AND (LOWER(title) LIKE LOWER(:title) OR LOWER(city) LIKE LOWER(:city_search)))",
			wantArgs:  map[string]any{"title": "%kigali%", "city_search": "%kigali%"},
		},
		{
			name: "unknown operator is skipped",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					dto.Filter{Field: "id", Operator: "between", Value: 1},
					dto.Filter{Field: "id", Operator: dto.FilterOperatorNotEq, Value: "x"},
				},
			},
			wantWhere: "(id != :id)",
			wantArgs:  map[string]any{"id": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
