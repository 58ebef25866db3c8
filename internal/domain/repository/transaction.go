package repository

import "context"

// TransactionManager runs multi-row writes atomically without exposing the driver to use cases.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise, returning fn's error unchanged.
	// Repositories obtained from the factory share the transaction; they must not escape fn.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
}
