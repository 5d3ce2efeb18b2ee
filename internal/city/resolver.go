// Package city resolves human-readable city names to record-store identifiers.
package city

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/ajudejf/internal/domain"
)

// Resolver looks up city ids in the city reference collection.
type Resolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// StoreResolver resolves names with one select against the record store.
type StoreResolver struct {
	store  domain.RecordStore
	logger *slog.Logger
}

// NewStoreResolver creates a resolver backed by store.
func NewStoreResolver(store domain.RecordStore, logger *slog.Logger) *StoreResolver {
	return &StoreResolver{store: store, logger: logger}
}

// Resolve returns the id of the city named exactly name. Zero or several
// matches yield a *domain.CityNotFoundError.
func (r *StoreResolver) Resolve(ctx context.Context, name string) (string, error) {
	rows, err := r.store.Select(ctx, domain.CityLookupQuery(name))
	if err != nil {
		return "", fmt.Errorf("lookup city %q: %w", name, err)
	}
	if len(rows) != 1 {
		r.logger.Warn("city not resolved", "city", name, "matches", len(rows))
		return "", &domain.CityNotFoundError{Name: name}
	}
	c, err := domain.DecodeCity(rows[0])
	if err != nil {
		return "", err
	}
	id := c.ID.String()
	if id == "" {
		return "", &domain.CityNotFoundError{Name: name}
	}
	return id, nil
}
