package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Products() ProductRepository
}

// Store is a document store backend with its repositories.
type Store interface {
	Factory
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
