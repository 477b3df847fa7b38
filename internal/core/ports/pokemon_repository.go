package ports

import (
	"context"
	"math"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// SortSpec orders a listing by one field. Ties are always broken by
// ascending Pokémon id.
type SortSpec struct {
	Field string // one of SortableFields
	Desc  bool
}

// SortableFields are the field paths a listing may be sorted by.
var SortableFields = []string{
	"id",
	"name.french",
	"name.english",
	"base.HP",
	"base.Attack",
	"base.Defense",
	"base.SpecialAttack",
	"base.SpecialDefense",
	"base.Speed",
}

// PokemonQuery is the complete, immutable description of a catalog listing.
// Skip is (Page-1)*Limit.
type PokemonQuery struct {
	Type  domain.PokemonType // optional: entries carrying this type
	Name  string             // optional: case-insensitive substring of the french or english name
	Sort  SortSpec
	Page  int // 1-based
	Limit int
}

// Skip returns the number of matching entries before the requested page. It
// saturates at math.MaxInt64 instead of overflowing on huge pages.
func (q PokemonQuery) Skip() int64 {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	pages, limit := int64(q.Page-1), int64(q.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// PokemonRepository persists catalog entries.
type PokemonRepository interface {
	// List returns a page of entries matching q and the total number of matches.
	List(ctx context.Context, q PokemonQuery) ([]*domain.Pokemon, int64, error)
	FindByID(ctx context.Context, id int) (*domain.Pokemon, error)
	// FindByIDs returns the entries with the given identities, ordered by id.
	// Unknown identities are skipped.
	FindByIDs(ctx context.Context, ids []int) ([]*domain.Pokemon, error)
	// FindByRefs returns the entries with the given storage references.
	// Unknown references are skipped; a malformed one fails with
	// domain.ErrInvalidArgument.
	FindByRefs(ctx context.Context, refs []string) ([]*domain.Pokemon, error)
	// Snapshot reads the whole catalog with a single query, ordered by id.
	Snapshot(ctx context.Context) ([]*domain.Pokemon, error)
	Create(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error)
	// Replace overwrites the entry with p.ID. It never inserts.
	Replace(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error)
	Delete(ctx context.Context, id int) error
	// ReplaceAll empties the catalog and inserts entries.
	ReplaceAll(ctx context.Context, entries []*domain.Pokemon) (int, error)
}
