package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
// Use cases receive it inside TransactionManager.Execute so that every
// repository call in the callback shares the same transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
	BookRepo() BookRepository
	OrderRepo() OrderRepository
	ReviewRepo() ReviewRepository
	RefreshTokenRepo() RefreshTokenRepository
}

// TransactionManager runs a unit of work atomically. The callback either
// commits as a whole or rolls back as a whole; returning an error rolls back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
