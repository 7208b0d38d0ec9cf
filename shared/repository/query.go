package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"afristay/shared/constant"
	"afristay/shared/dto"

	"github.com/jmoiron/sqlx"
)

// scalar runs a query returning one value.
func scalar[V any](ctx context.Context, db *sqlx.DB, query string, args map[string]any) (V, error) {
	var value V

	prepare, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return value, fmt.Errorf("prepare statement: %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &value, args)

	return value, err //nolint:wrapcheck
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.newScope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	exist, err := scalar[bool](ctx, repo.db.Read, query, args)
	if err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero model when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.newScope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns...), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	model, err := scalar[T](ctx, repo.db.Read, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T

		return zero, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.newScope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	clauses := []string{
		"SELECT " + repo.selectList(columns...),
		"FROM " + repo.table,
		repo.join,
		where,
	}

	if params.SortBy != "" && params.SortDir != "" {
		clauses = append(clauses, fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		clauses = append(clauses, "LIMIT :limit OFFSET :offset")
	}

	query := strings.Join(clauses, " ")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	return repo.aggregateInt(ctx, "Count", fmt.Sprintf("COUNT(%s.%s)", repo.table, repo.primaryColumn), filter)
}

func (repo *Repository[T]) CountDistinct(ctx context.Context, column string, filter dto.FilterGroup) (int, error) {
	return repo.aggregateInt(ctx, "CountDistinct", fmt.Sprintf("COUNT(DISTINCT %s.%s)", repo.table, column), filter)
}

// Sum returns the total of column over the filtered rows, 0 when none match.
func (repo *Repository[T]) Sum(ctx context.Context, column string, filter dto.FilterGroup) (float64, error) {
	ctx, scope := repo.newScope(ctx, "Sum")
	defer scope.End()

	query, args := repo.aggregateQuery(ctx, fmt.Sprintf("COALESCE(SUM(%s.%s), 0)", repo.table, column), filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	total, err := scalar[float64](ctx, repo.db.Read, query, args)
	if err != nil {
		return 0, repo.fail(scope, "sum data", err)
	}

	return total, nil
}

func (repo *Repository[T]) aggregateInt(ctx context.Context, op, expr string, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.newScope(ctx, op)
	defer scope.End()

	query, args := repo.aggregateQuery(ctx, expr, filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	count, err := scalar[int](ctx, repo.db.Read, query, args)
	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) aggregateQuery(ctx context.Context, expr string, filter dto.FilterGroup) (string, map[string]any) {
	where, args := repo.BuildWhereClause(ctx, filter)

	return fmt.Sprintf("SELECT %s FROM %s %s %s", expr, repo.table, repo.join, where), args
}
