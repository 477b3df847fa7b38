package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// TeamRepository persists teams. Every lookup and write is scoped by owner;
// a team owned by someone else behaves exactly like a missing one.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id, userID string) (*domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Team, error)
	// Update overwrites name and members unconditionally.
	Update(ctx context.Context, id, userID, name string, members []string) (*domain.Team, error)
	Rename(ctx context.Context, id, userID, name string) (*domain.Team, error)
	// AppendMember pushes ref only if the team still has room and does not
	// hold ref yet; otherwise it returns domain.ErrConflict.
	AppendMember(ctx context.Context, id, userID, ref string) (*domain.Team, error)
	// SwapMembers replaces the member list only if it still equals expected;
	// otherwise it returns domain.ErrConflict.
	SwapMembers(ctx context.Context, id, userID string, expected, members []string) (*domain.Team, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
