package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// FavoriteService manages a user's favorite set.
type FavoriteService interface {
	// Add returns the added Pokémon; adding an existing favorite is a no-op.
	Add(ctx context.Context, who Identity, pokemonID int) (*domain.Pokemon, error)
	Remove(ctx context.Context, who Identity, pokemonID int) error
	List(ctx context.Context, who Identity) ([]*domain.Pokemon, error)
}
