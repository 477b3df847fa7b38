package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// ListPokemonsInput carries the raw listing parameters from the transport.
// Sort is a field name, optionally prefixed with "-" for descending order.
type ListPokemonsInput struct {
	Type  string
	Name  string
	Sort  string
	Page  int
	Limit int
}

// ListPokemonsResult is one page of the catalog.
type ListPokemonsResult struct {
	Items      []*domain.Pokemon
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// CatalogService reads and curates the Pokémon catalog.
type CatalogService interface {
	List(ctx context.Context, input ListPokemonsInput) (*ListPokemonsResult, error)
	Get(ctx context.Context, id int) (*domain.Pokemon, error)
	Create(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error)
	Update(ctx context.Context, id int, p *domain.Pokemon) (*domain.Pokemon, error)
	Delete(ctx context.Context, id int) error
}
