package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txKey struct{}

// TxRunner runs fn inside a single unit of work. Repositories called with the
// ctx handed to fn take part in the same transaction.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTransaction commits when fn returns nil and rolls back on error or
// panic. A panic is re-raised after the rollback. Nested calls reuse the
// outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	tx := m.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				err = fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
		} else {
			if cErr := tx.Commit().Error; cErr != nil {
				err = fmt.Errorf("commit transaction: %w", cErr)
			}
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}

// Conn returns the transaction bound to ctx, or db scoped to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// NoTx runs fn directly. Services fall back to it when constructed without a
// transaction manager, e.g. in unit tests backed by mocks.
type NoTx struct{}

func (NoTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
