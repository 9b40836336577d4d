package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/oops"
)

type txKey struct{}

// TransactionManager runs a function inside a transaction carried by the
// context, so repositories join it through Executor.
type TransactionManager struct {
	db *sqlx.DB
}

func NewTransactionManager(db *sqlx.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if GetTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := tm.db.BeginTxx(ctx, nil)
	if err != nil {
		return oops.With("context", "failed to begin transaction").Wrap(err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return oops.With("context", "failed to commit transaction").Wrap(err)
	}
	return nil
}

// GetTx returns the transaction stored in ctx, if any.
func GetTx(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

// Executor is the transaction in ctx when there is one, otherwise db.
func Executor(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := GetTx(ctx); tx != nil {
		return tx
	}
	return db
}
