// Package seed turns a raw Pokédex JSON dump into validated catalog entries.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// rawEntry mirrors one record of the dump. Pointers tell absent fields from
// zero values.
type rawEntry struct {
	ID    *int                `json:"id"`
	Name  *domain.PokemonName `json:"name"`
	Types []string            `json:"type"`
	Base  *rawBase            `json:"base"`
	Image string              `json:"image"`
}

// rawBase accepts both the compact stat keys and the dotted ones used by
// common public dumps.
type rawBase struct {
	HP             *int `json:"HP"`
	Attack         *int `json:"Attack"`
	Defense        *int `json:"Defense"`
	SpecialAttack  *int `json:"SpecialAttack"`
	SpecialDefense *int `json:"SpecialDefense"`
	SpAttack       *int `json:"Sp. Attack"`
	SpDefense      *int `json:"Sp. Defense"`
	Speed          *int `json:"Speed"`
}

func (b *rawBase) toDomain() *domain.BaseStats {
	if b == nil {
		return nil
	}
	out := &domain.BaseStats{
		HP:             b.HP,
		Attack:         b.Attack,
		Defense:        b.Defense,
		SpecialAttack:  b.SpecialAttack,
		SpecialDefense: b.SpecialDefense,
		Speed:          b.Speed,
	}
	if out.SpecialAttack == nil {
		out.SpecialAttack = b.SpAttack
	}
	if out.SpecialDefense == nil {
		out.SpecialDefense = b.SpDefense
	}
	return out
}

// Options locate the sprite files referenced by the entries.
type Options struct {
	// AssetsDir is the directory served under /assets.
	AssetsDir string
	// BaseURL is the public URL of AssetsDir/pokemons.
	BaseURL string
}

// Report counts what happened to the records of a dump.
type Report struct {
	Read       int
	Incomplete int
	Invalid    int
	Kept       int
}

// Load decodes a JSON array of entries. Records without an id, a name or a
// type are dropped; records failing validation are logged and skipped. A
// shiny sprite URL is set when the sprite exists on disk.
func Load(r io.Reader, opts Options, log zerolog.Logger) ([]*domain.Pokemon, Report, error) {
	var raw []rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Report{}, fmt.Errorf("decode seed file: %w", err)
	}

	report := Report{Read: len(raw)}
	out := make([]*domain.Pokemon, 0, len(raw))
	seen := make(map[int]struct{}, len(raw))

	for i, entry := range raw {
		if entry.ID == nil || *entry.ID == 0 || entry.Name == nil || entry.Types == nil {
			report.Incomplete++
			continue
		}

		p := toPokemon(entry, opts)
		err := p.Validate()
		if err == nil {
			if _, dup := seen[p.ID]; dup {
				err = fmt.Errorf("id %d appears twice: %w", p.ID, domain.ErrAlreadyExists)
			}
		}
		if err != nil {
			report.Invalid++
			log.Warn().Err(err).Int("index", i).Int("pokemon_id", p.ID).Msg("skipping seed entry")
			continue
		}

		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	report.Kept = len(out)
	return out, report, nil
}

func toPokemon(entry rawEntry, opts Options) *domain.Pokemon {
	types := make([]domain.PokemonType, 0, len(entry.Types))
	for _, t := range entry.Types {
		types = append(types, domain.PokemonType(t))
	}
	p := &domain.Pokemon{
		ID:    *entry.ID,
		Name:  *entry.Name,
		Types: types,
		Base:  entry.Base.toDomain(),
		Image: entry.Image,
	}
	p.ShinyImage = shinyImage(p.ID, opts)
	return p
}

// shinyImage returns the public URL of the shiny sprite, or "" when
// AssetsDir/pokemons/shiny/<id>.png does not exist.
func shinyImage(id int, opts Options) string {
	if opts.AssetsDir == "" {
		return ""
	}
	file := strconv.Itoa(id) + ".png"
	if _, err := os.Stat(filepath.Join(opts.AssetsDir, "pokemons", "shiny", file)); err != nil {
		return ""
	}
	return strings.TrimRight(opts.BaseURL, "/") + "/shiny/" + file
}
