package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

type FavoriteService struct {
	users    ports.UserRepository
	pokemons ports.PokemonRepository
	logger   zerolog.Logger
}

func NewFavoriteService(users ports.UserRepository, pokemons ports.PokemonRepository, logger zerolog.Logger) *FavoriteService {
	return &FavoriteService{users: users, pokemons: pokemons, logger: logger}
}

// Add puts pokemonID in the caller's favorites. The entry must exist.
func (s *FavoriteService) Add(ctx context.Context, who ports.Identity, pokemonID int) (*domain.Pokemon, error) {
	p, err := s.pokemons.FindByID(ctx, pokemonID)
	if err != nil {
		return nil, err
	}
	if err := s.users.AddFavorite(ctx, who.UserID, pokemonID); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("user_id", who.UserID).Int("pokemon_id", pokemonID).Msg("favorite added")
	return p, nil
}

// Remove drops pokemonID from the caller's favorites. Removing an absent
// favorite, or one whose entry was deleted, succeeds.
func (s *FavoriteService) Remove(ctx context.Context, who ports.Identity, pokemonID int) error {
	if err := s.users.RemoveFavorite(ctx, who.UserID, pokemonID); err != nil {
		return err
	}
	s.logger.Debug().Str("user_id", who.UserID).Int("pokemon_id", pokemonID).Msg("favorite removed")
	return nil
}

// List returns the caller's favorite entries ordered by id. Favorites whose
// entry no longer exists are omitted.
func (s *FavoriteService) List(ctx context.Context, who ports.Identity) ([]*domain.Pokemon, error) {
	user, err := s.users.FindByID(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []*domain.Pokemon{}, nil
	}
	found, err := s.pokemons.FindByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []*domain.Pokemon{}
	}
	return found, nil
}
