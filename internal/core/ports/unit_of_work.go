package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// The combined "append history entry + update cached status" write is the
// one operation in this system requiring atomicity; both repositories must
// be used through the same unit of work so either both writes land or
// neither does.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the
	// current transaction started by Begin().
	OrderRepository() OrderRepository

	// HistoryRepository returns a HistoryRepository instance bound to the
	// current transaction started by Begin().
	HistoryRepository() HistoryRepository
}
