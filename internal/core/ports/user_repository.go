package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// UserRepository persists accounts. There is no generic save: the password
// hash is only written by Create and SetPasswordHash.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
	// AddFavorite and RemoveFavorite are atomic set operations on the stored
	// record; both succeed when the set already has the requested shape.
	AddFavorite(ctx context.Context, id string, pokemonID int) error
	RemoveFavorite(ctx context.Context, id string, pokemonID int) error
	Delete(ctx context.Context, id string) error
}
