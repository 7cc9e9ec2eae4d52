package repository

import "context"

// Tx is an opaque transaction handle. Its concrete type is defined by the
// store (pgx.Tx for Postgres, *sql.Tx for SQLite).
type Tx interface{}

// NoTX tells a repository to run on its pool instead of a transaction.
var NoTX Tx

// TransactionManager runs fn inside a store transaction, passing the handle
// via tx. fn returning an error rolls the transaction back; otherwise it is
// committed. Repositories MUST accept NoTX as the non-transactional path.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
