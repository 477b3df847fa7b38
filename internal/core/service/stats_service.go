package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// headlineAttrs are the stats averaged together by GlobalAverages.
var headlineAttrs = []domain.Attribute{domain.AttrHP, domain.AttrAttack, domain.AttrDefense, domain.AttrSpeed}

// CountByType counts, for every type that occurs, the entries carrying it.
// An entry with several types counts once in each. Sorted by count
// descending, then type name.
func CountByType(entries []*domain.Pokemon) []domain.TypeCount {
	counts := make(map[domain.PokemonType]int)
	for _, p := range entries {
		for _, t := range distinctTypes(p) {
			counts[t]++
		}
	}

	out := make([]domain.TypeCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, domain.TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// AverageByType averages attr per type over the entries where attr is
// present. Types with no such entry are left out. Sorted by average
// descending, then type name.
func AverageByType(entries []*domain.Pokemon, attr domain.Attribute) []domain.TypeAverage {
	type acc struct{ sum, n int }
	sums := make(map[domain.PokemonType]*acc)
	for _, p := range entries {
		v, ok := p.Stat(attr)
		if !ok {
			continue
		}
		for _, t := range distinctTypes(p) {
			a := sums[t]
			if a == nil {
				a = &acc{}
				sums[t] = a
			}
			a.sum += v
			a.n++
		}
	}

	out := make([]domain.TypeAverage, 0, len(sums))
	for t, a := range sums {
		out = append(out, domain.TypeAverage{Type: t, Average: float64(a.sum) / float64(a.n), Samples: a.n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// GlobalAverages averages HP, Attack, Defense and Speed over the entries
// that have all four. It returns nil when no entry qualifies.
func GlobalAverages(entries []*domain.Pokemon) *domain.GlobalAverages {
	var sums [4]int
	n := 0
	for _, p := range entries {
		var vals [4]int
		complete := true
		for i, attr := range headlineAttrs {
			v, ok := p.Stat(attr)
			if !ok {
				complete = false
				break
			}
			vals[i] = v
		}
		if !complete {
			continue
		}
		for i := range sums {
			sums[i] += vals[i]
		}
		n++
	}
	if n == 0 {
		return nil
	}

	f := float64(n)
	return &domain.GlobalAverages{
		HP:      float64(sums[0]) / f,
		Attack:  float64(sums[1]) / f,
		Defense: float64(sums[2]) / f,
		Speed:   float64(sums[3]) / f,
		Samples: n,
	}
}

// TopByAttribute returns the entry with the highest attr. Ties go to the
// lowest id. It returns nil when no entry has attr.
func TopByAttribute(entries []*domain.Pokemon, attr domain.Attribute) *domain.Pokemon {
	var best *domain.Pokemon
	bestVal := 0
	for _, p := range entries {
		v, ok := p.Stat(attr)
		if !ok {
			continue
		}
		if best == nil || v > bestVal || (v == bestVal && p.ID < best.ID) {
			best, bestVal = p, v
		}
	}
	return best
}

// ComputeOverview derives every statistic from the same entries.
func ComputeOverview(entries []*domain.Pokemon, averageAttr domain.Attribute) *domain.StatsOverview {
	return &domain.StatsOverview{
		TotalPokemons:  len(entries),
		CountByType:    CountByType(entries),
		AverageAttr:    averageAttr,
		AverageByType:  AverageByType(entries, averageAttr),
		GlobalAverages: GlobalAverages(entries),
		HighestAttack:  TopByAttribute(entries, domain.AttrAttack),
		HighestHP:      TopByAttribute(entries, domain.AttrHP),
		Fastest:        TopByAttribute(entries, domain.AttrSpeed),
		HighestDefense: TopByAttribute(entries, domain.AttrDefense),
	}
}

func distinctTypes(p *domain.Pokemon) []domain.PokemonType {
	if len(p.Types) < 2 {
		return p.Types
	}
	out := make([]domain.PokemonType, 0, len(p.Types))
	seen := make(map[domain.PokemonType]struct{}, len(p.Types))
	for _, t := range p.Types {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// StatsService reads one catalog snapshot per call and computes from it.
type StatsService struct {
	repo   ports.PokemonRepository
	logger zerolog.Logger
}

func NewStatsService(repo ports.PokemonRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger}
}

func (s *StatsService) Overview(ctx context.Context, averageAttr domain.Attribute) (*domain.StatsOverview, error) {
	if averageAttr == "" {
		averageAttr = domain.AttrHP
	}
	averageAttr, err := domain.ParseAttribute(string(averageAttr))
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats snapshot: %w", err)
	}

	overview := ComputeOverview(entries, averageAttr)
	s.logger.Debug().Int("entries", overview.TotalPokemons).Str("attribute", string(averageAttr)).Msg("stats computed")
	return overview, nil
}
