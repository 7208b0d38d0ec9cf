package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"afristay/shared/constant"
	"afristay/shared/dto"

	"github.com/jmoiron/sqlx"
)

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, "Insert", repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, "InsertTx", sqltx, model)
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	return repo.insertBulk(ctx, "InsertBulk", repo.db.Write, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	return repo.insertBulk(ctx, "InsertBulkTx", sqltx, models)
}

func (repo *Repository[T]) insert(ctx context.Context, op string, exec execer, model T) error {
	ctx, scope := repo.newScope(ctx, op)
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// insertBulk writes all models in one statement. An empty slice is a no-op.
func (repo *Repository[T]) insertBulk(ctx context.Context, op string, exec execer, models []T) error {
	if len(models) == 0 {
		return nil
	}

	ctx, scope := repo.newScope(ctx, op)
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttributes(map[string]any{
		constant.OtelQueryAttributeKey: query,
		"rows":                         len(models),
	})

	if _, err := exec.NamedExecContext(ctx, query, models); err != nil {
		return repo.fail(scope, "bulk insert data", err)
	}

	return nil
}

// InsertIgnoreConflict inserts model unless a row already holds the same conflict columns.
func (repo *Repository[T]) InsertIgnoreConflict(ctx context.Context, model T, conflictColumns ...string) (bool, error) {
	ctx, scope := repo.newScope(ctx, "InsertIgnoreConflict")
	defer scope.End()

	query := fmt.Sprintf("%s ON CONFLICT (%s) DO NOTHING", repo.insertQuery(), strings.Join(conflictColumns, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, model)
	if err != nil {
		return false, repo.fail(scope, "insert data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, repo.fail(scope, "read affected rows", err)
	}

	return affected > 0, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, "Update", repo.db.Write, mod, filter)

	return err
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, "UpdateTx", sqltx, mod, filter)

	return err
}

// CompareAndSwap applies mod only to rows matching filter and reports whether any row changed.
// Filters that guard a column also present in mod need a distinct ArgName.
func (repo *Repository[T]) CompareAndSwap(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (bool, error) {
	affected, err := repo.update(ctx, "CompareAndSwap", repo.db.Write, mod, filter)

	return affected > 0, err
}

func (repo *Repository[T]) CompareAndSwapTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) (bool, error) {
	affected, err := repo.update(ctx, "CompareAndSwapTx", sqltx, mod, filter)

	return affected > 0, err
}

// update refuses to run without a filter.
func (repo *Repository[T]) update(ctx context.Context, op string, exec execer, mod map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.newScope(ctx, op)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return 0, errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	return affected, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, "Delete", repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, "DeleteTx", sqltx, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, op string, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.newScope(ctx, op)
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}
