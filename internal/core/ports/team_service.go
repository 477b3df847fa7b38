package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// TeamInput is a full team payload: a name and the ordered member references.
type TeamInput struct {
	Name    string
	Members []string
}

// TeamService owns the roster invariants: at most six members, no
// duplicates, every member present in the catalog at write time.
type TeamService interface {
	Create(ctx context.Context, who Identity, input TeamInput) (*domain.ResolvedTeam, error)
	Get(ctx context.Context, who Identity, teamID string) (*domain.ResolvedTeam, error)
	List(ctx context.Context, who Identity) ([]domain.ResolvedTeam, error)
	Update(ctx context.Context, who Identity, teamID string, input TeamInput) (*domain.ResolvedTeam, error)
	Rename(ctx context.Context, who Identity, teamID, name string) (*domain.ResolvedTeam, error)
	AddMember(ctx context.Context, who Identity, teamID, ref string) (*domain.ResolvedTeam, error)
	RemoveMemberAt(ctx context.Context, who Identity, teamID string, index int) (*domain.ResolvedTeam, error)
	Delete(ctx context.Context, who Identity, teamID string) error
}
