package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tinyplan/tinyplan/internal/db/driver"
	planerrors "github.com/tinyplan/tinyplan/internal/errors"
)

// TxRunner provides a transactional execution interface.
// This allows operations to run within a transaction context,
// ensuring atomicity of multi-table operations.
type TxRunner interface {
	// RunInTx executes the given function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	RunInTx(ctx context.Context, fn func(tx *TxOps) error) error
}

// TxOps provides database operations within a transaction.
// It wraps a driver.Tx to provide the same interface as PlannerDB
// but executes all operations within the transaction.
type TxOps struct {
	tx      driver.Tx
	dialect driver.Dialect
	ctx     context.Context
}

// Exec executes a query within the transaction.
func (t *TxOps) Exec(query string, args ...any) (sql.Result, error) {
	return t.tx.Exec(t.ctx, query, args...)
}

// Query executes a query that returns rows within the transaction.
func (t *TxOps) Query(query string, args ...any) (*sql.Rows, error) {
	return t.tx.Query(t.ctx, query, args...)
}

// QueryRow executes a query that returns at most one row within the transaction.
func (t *TxOps) QueryRow(query string, args ...any) *sql.Row {
	return t.tx.QueryRow(t.ctx, query, args...)
}

// Context returns the context associated with this transaction.
func (t *TxOps) Context() context.Context {
	return t.ctx
}

// Dialect returns the database dialect.
func (t *TxOps) Dialect() driver.Dialect {
	return t.dialect
}

// PlannerDB provides operations on the tinyplan database.
// It is constructed once at process start and passed by handle; repositories
// never reopen the store themselves.
type PlannerDB struct {
	*DB
}

// OpenPlanner opens the tinyplan database at the given path using SQLite.
func OpenPlanner(path string) (*PlannerDB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate("app"); err != nil {
		_ = db.Close()
		return nil, planerrors.ErrStorageUnavailable(fmt.Errorf("migrate db: %w", err))
	}

	return &PlannerDB{DB: db}, nil
}

// OpenPlannerWithDialect opens the database with a specific dialect.
// For SQLite, dsn is the file path. For PostgreSQL, dsn is the connection string.
func OpenPlannerWithDialect(dsn string, dialect driver.Dialect) (*PlannerDB, error) {
	db, err := OpenWithDialect(dsn, dialect)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate("app"); err != nil {
		_ = db.Close()
		return nil, planerrors.ErrStorageUnavailable(fmt.Errorf("migrate db: %w", err))
	}

	return &PlannerDB{DB: db}, nil
}

// OpenPlannerInMemory opens an in-memory database with migrations applied.
func OpenPlannerInMemory() (*PlannerDB, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}

	if err := db.Migrate("app"); err != nil {
		_ = db.Close()
		return nil, planerrors.ErrStorageUnavailable(fmt.Errorf("migrate db: %w", err))
	}

	return &PlannerDB{DB: db}, nil
}

// RunInTx executes the given function within a database transaction.
// If fn returns an error, the transaction is rolled back.
// If fn returns nil, the transaction is committed.
func (p *PlannerDB) RunInTx(ctx context.Context, fn func(tx *TxOps) error) error {
	tx, err := p.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txOps := &TxOps{
		tx:      tx,
		dialect: p.Dialect(),
		ctx:     ctx,
	}

	if err := fn(txOps); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ensure PlannerDB implements TxRunner
var _ TxRunner = (*PlannerDB)(nil)
