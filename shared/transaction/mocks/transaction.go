package mocks

import (
	"context"

	"afristay/shared/transaction"

	"github.com/jmoiron/sqlx"
)

// Transactor runs the callback without a database. Commits and Rollbacks count outcomes.
type Transactor struct {
	Commits   int
	Rollbacks int
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

// WithinTx implements transaction.Transactor. The callback gets an unconnected, non-nil tx.
func (t *Transactor) WithinTx(ctx context.Context, fn transaction.TxFunc) error {
	if err := fn(ctx, &sqlx.Tx{}); err != nil {
		t.Rollbacks++

		return err
	}

	t.Commits++

	return nil
}
