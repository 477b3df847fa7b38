package ports

import (
	"math"
	"testing"
)

func TestPokemonQuery_Skip(t *testing.T) {
	cases := []struct {
		name string
		q    PokemonQuery
		want int64
	}{
		{"first page", PokemonQuery{Page: 1, Limit: 50}, 0},
		{"third page", PokemonQuery{Page: 3, Limit: 20}, 40},
		{"unset", PokemonQuery{}, 0},
		{"huge page saturates", PokemonQuery{Page: 200000000000000000, Limit: 50}, math.MaxInt64},
		{"max int page saturates", PokemonQuery{Page: math.MaxInt, Limit: 1000}, math.MaxInt64},
		{"largest exact product", PokemonQuery{Page: math.MaxInt64/1000 + 1, Limit: 1000}, (math.MaxInt64 / 1000) * 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.q.Skip(); got != tc.want {
				t.Fatalf("expected skip %d, got %d", tc.want, got)
			}
		})
	}
}
