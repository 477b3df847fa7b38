package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

const dump = `[
  {"id": 1, "name": {"english": "Bulbasaur", "french": "Bulbizarre"}, "type": ["Grass", "Poison"],
   "base": {"HP": 45, "Attack": 49, "Defense": 49, "Sp. Attack": 65, "Sp. Defense": 65, "Speed": 45},
   "image": "http://localhost:3000/assets/pokemons/1.png"},
  {"id": 25, "name": {"french": "Pikachu"}, "type": ["Electric"]},
  {"id": 0, "name": {"french": "Zero"}, "type": ["Normal"]},
  {"name": {"french": "Anonyme"}, "type": ["Normal"]},
  {"id": 4, "type": ["Fire"]},
  {"id": 7, "name": {"french": "Carapuce"}},
  {"id": 150, "name": {"french": "Mewtwo"}, "type": ["Cosmic"]},
  {"id": 151, "name": {"french": "Mew"}, "type": ["Psychic"], "base": {"HP": 300}},
  {"id": 25, "name": {"french": "Pikachu bis"}, "type": ["Electric"]}
]`

func TestLoad_FiltersAndValidates(t *testing.T) {
	entries, report, err := Load(strings.NewReader(dump), Options{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, Report{Read: 9, Incomplete: 4, Invalid: 3, Kept: 2}, report)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, 25, entries[1].ID)
	assert.Equal(t, "Pikachu", entries[1].Name.French)
}

func TestLoad_DottedStatKeys(t *testing.T) {
	entries, _, err := Load(strings.NewReader(dump), Options{}, zerolog.Nop())
	require.NoError(t, err)

	bulbasaur := entries[0]
	spa, ok := bulbasaur.Stat(domain.AttrSpecialAttack)
	require.True(t, ok)
	assert.Equal(t, 65, spa)
	spd, ok := bulbasaur.Stat(domain.AttrSpecialDefense)
	require.True(t, ok)
	assert.Equal(t, 65, spd)
	assert.Nil(t, entries[1].Base)
}

func TestLoad_ShinyImage(t *testing.T) {
	dir := t.TempDir()
	shiny := filepath.Join(dir, "pokemons", "shiny")
	require.NoError(t, os.MkdirAll(shiny, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(shiny, "25.png"), []byte("png"), 0o644))

	entries, _, err := Load(strings.NewReader(dump), Options{
		AssetsDir: dir,
		BaseURL:   "http://localhost:3000/assets/pokemons/",
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, entries[0].ShinyImage)
	assert.Equal(t, "http://localhost:3000/assets/pokemons/shiny/25.png", entries[1].ShinyImage)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, _, err := Load(strings.NewReader(`{"id": 1}`), Options{}, zerolog.Nop())
	assert.Error(t, err)
}
