package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamWithMember(t *testing.T) {
	team := &Team{Members: []string{"a", "b"}}

	members, err := team.WithMember("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, members)
	assert.Equal(t, []string{"a", "b"}, team.Members, "receiver must not change")

	_, err = team.WithMember("a")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTeamWithMember_Full(t *testing.T) {
	team := &Team{Members: []string{"a", "b", "c", "d", "e", "f"}}

	_, err := team.WithMember("g")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, team.Members, MaxTeamSize)
}

func TestTeamWithoutMemberAt(t *testing.T) {
	team := &Team{Members: []string{"A", "B", "C"}}

	members, err := team.WithoutMemberAt(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, members)

	for _, idx := range []int{-1, 3, 10} {
		_, err := team.WithoutMemberAt(idx)
		assert.ErrorIs(t, err, ErrOutOfRange, "index %d", idx)
	}
}

func TestValidateMembers(t *testing.T) {
	assert.NoError(t, ValidateMembers(nil))
	assert.NoError(t, ValidateMembers([]string{"a", "b", "c", "d", "e", "f"}))
	assert.ErrorIs(t, ValidateMembers([]string{"a", "b", "c", "d", "e", "f", "g"}), ErrCapacityExceeded)
	assert.ErrorIs(t, ValidateMembers([]string{"a", "b", "a"}), ErrConflict)
	assert.ErrorIs(t, ValidateMembers([]string{"a", ""}), ErrInvalidArgument)
}

func TestNormalizeTeamName(t *testing.T) {
	name, err := NormalizeTeamName("  Kanto squad ")
	require.NoError(t, err)
	assert.Equal(t, "Kanto squad", name)

	_, err = NormalizeTeamName("   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTeamResolve_FlagsMissing(t *testing.T) {
	pika := &Pokemon{ID: 25, Name: PokemonName{French: "Pikachu"}}
	team := &Team{ID: "t1", Name: "Mix", Members: []string{"p25", "gone", "p25b"}}

	resolved := team.Resolve(map[string]*Pokemon{"p25": pika, "p25b": pika})

	require.Len(t, resolved.Pokemons, 3)
	assert.Same(t, pika, resolved.Pokemons[0].Pokemon)
	assert.True(t, resolved.Pokemons[1].Missing)
	assert.Nil(t, resolved.Pokemons[1].Pokemon)
	assert.Equal(t, "gone", resolved.Pokemons[1].Ref)
	assert.False(t, resolved.Pokemons[2].Missing)
}
