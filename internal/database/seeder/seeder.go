package seeder

import (
	"context"

	"studentshub/internal/repository"
)

// Seeder inserts fixture rows. Running one twice must not duplicate data.
type Seeder interface {
	Name() string
	Run(ctx context.Context, store repository.Store) error
}
