package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 1000
)

type CatalogService struct {
	repo   ports.PokemonRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.PokemonRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// ParseSort turns "field" or "-field" into a SortSpec. An empty string sorts
// by ascending id; an unknown field is an invalid argument.
func ParseSort(raw string) (ports.SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ports.SortSpec{Field: "id"}, nil
	}

	spec := ports.SortSpec{Field: raw}
	if strings.HasPrefix(raw, "-") {
		spec = ports.SortSpec{Field: raw[1:], Desc: true}
	}
	for _, f := range ports.SortableFields {
		if f == spec.Field {
			return spec, nil
		}
	}
	return ports.SortSpec{}, fmt.Errorf("cannot sort by %q: %w", raw, domain.ErrInvalidArgument)
}

// BuildQuery validates raw listing parameters and turns them into a query.
func BuildQuery(input ports.ListPokemonsInput) (ports.PokemonQuery, error) {
	if input.Page < 1 {
		return ports.PokemonQuery{}, fmt.Errorf("page must be >= 1: %w", domain.ErrInvalidArgument)
	}
	if input.Limit < 1 || input.Limit > MaxPageSize {
		return ports.PokemonQuery{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxPageSize, domain.ErrInvalidArgument)
	}

	sort, err := ParseSort(input.Sort)
	if err != nil {
		return ports.PokemonQuery{}, err
	}

	q := ports.PokemonQuery{
		Name:  strings.TrimSpace(input.Name),
		Sort:  sort,
		Page:  input.Page,
		Limit: input.Limit,
	}
	if input.Type != "" {
		t := domain.PokemonType(input.Type)
		if !t.Valid() {
			return ports.PokemonQuery{}, fmt.Errorf("unknown type %q: %w", input.Type, domain.ErrInvalidArgument)
		}
		q.Type = t
	}
	return q, nil
}

// List returns one page of the filtered, sorted catalog. A page past the end
// is empty but still reports the total.
func (s *CatalogService) List(ctx context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error) {
	q, err := BuildQuery(input)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Pokemon{}
	}

	return &ports.ListPokemonsResult{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages(total, q.Limit),
	}, nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func (s *CatalogService) Get(ctx context.Context, id int) (*domain.Pokemon, error) {
	if id < 1 {
		return nil, domain.ErrPokemonNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("pokemon_id", created.ID).Str("name", created.Name.Display()).Msg("pokemon created")
	return created, nil
}

// Update replaces the entry with identity id. The identity itself cannot
// change, and a missing entry is reported rather than created.
func (s *CatalogService) Update(ctx context.Context, id int, p *domain.Pokemon) (*domain.Pokemon, error) {
	if p.ID == 0 {
		p.ID = id
	}
	if p.ID != id {
		return nil, fmt.Errorf("body id %d does not match path id %d: %w", p.ID, id, domain.ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("pokemon_id", id).Msg("pokemon updated")
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int("pokemon_id", id).Msg("pokemon deleted")
	return nil
}
