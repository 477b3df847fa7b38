package ports

import (
	"context"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// StatsService computes catalog statistics on demand.
type StatsService interface {
	// Overview computes every figure from one catalog snapshot. averageAttr
	// selects the attribute averaged per type.
	Overview(ctx context.Context, averageAttr domain.Attribute) (*domain.StatsOverview, error)
}
