package domain

import (
	"fmt"
	"strings"
)

// PokemonType is one of the 18 elemental types a Pokémon can carry.
type PokemonType string

const (
	TypeNormal   PokemonType = "Normal"
	TypeFire     PokemonType = "Fire"
	TypeWater    PokemonType = "Water"
	TypeElectric PokemonType = "Electric"
	TypeGrass    PokemonType = "Grass"
	TypeIce      PokemonType = "Ice"
	TypeFighting PokemonType = "Fighting"
	TypePoison   PokemonType = "Poison"
	TypeGround   PokemonType = "Ground"
	TypeFlying   PokemonType = "Flying"
	TypePsychic  PokemonType = "Psychic"
	TypeBug      PokemonType = "Bug"
	TypeRock     PokemonType = "Rock"
	TypeGhost    PokemonType = "Ghost"
	TypeDragon   PokemonType = "Dragon"
	TypeDark     PokemonType = "Dark"
	TypeSteel    PokemonType = "Steel"
	TypeFairy    PokemonType = "Fairy"
)

// AllTypes lists every recognised type in canonical order.
var AllTypes = []PokemonType{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic,
	TypeBug, TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

// Valid reports whether t is one of the recognised types.
func (t PokemonType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Attribute names one of the six base stats.
type Attribute string

const (
	AttrHP             Attribute = "HP"
	AttrAttack         Attribute = "Attack"
	AttrDefense        Attribute = "Defense"
	AttrSpecialAttack  Attribute = "SpecialAttack"
	AttrSpecialDefense Attribute = "SpecialDefense"
	AttrSpeed          Attribute = "Speed"
)

var AllAttributes = []Attribute{
	AttrHP, AttrAttack, AttrDefense, AttrSpecialAttack, AttrSpecialDefense, AttrSpeed,
}

const (
	MinStat = 1
	MaxStat = 255
)

// ParseAttribute matches s case-insensitively against the known attributes.
func ParseAttribute(s string) (Attribute, error) {
	for _, a := range AllAttributes {
		if strings.EqualFold(string(a), strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown attribute %q: %w", s, ErrInvalidArgument)
}

// PokemonName holds the localized names. French is the primary display
// language and is the only one required.
type PokemonName struct {
	English  string `json:"english,omitempty" bson:"english,omitempty"`
	French   string `json:"french" bson:"french"`
	Japanese string `json:"japanese,omitempty" bson:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty" bson:"chinese,omitempty"`
}

// Display returns the name to show, preferring French then English.
func (n PokemonName) Display() string {
	if n.French != "" {
		return n.French
	}
	if n.English != "" {
		return n.English
	}
	return "Pokémon"
}

// BaseStats is the optional combat stat block. Each stat may be absent.
type BaseStats struct {
	HP             *int `json:"HP,omitempty" bson:"HP,omitempty"`
	Attack         *int `json:"Attack,omitempty" bson:"Attack,omitempty"`
	Defense        *int `json:"Defense,omitempty" bson:"Defense,omitempty"`
	SpecialAttack  *int `json:"SpecialAttack,omitempty" bson:"SpecialAttack,omitempty"`
	SpecialDefense *int `json:"SpecialDefense,omitempty" bson:"SpecialDefense,omitempty"`
	Speed          *int `json:"Speed,omitempty" bson:"Speed,omitempty"`
}

// Get returns the value of attr and whether it is present.
func (b *BaseStats) Get(attr Attribute) (int, bool) {
	if b == nil {
		return 0, false
	}
	var v *int
	switch attr {
	case AttrHP:
		v = b.HP
	case AttrAttack:
		v = b.Attack
	case AttrDefense:
		v = b.Defense
	case AttrSpecialAttack:
		v = b.SpecialAttack
	case AttrSpecialDefense:
		v = b.SpecialDefense
	case AttrSpeed:
		v = b.Speed
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Pokemon is a catalog entry. ID is the public identity used by every
// entry-addressed operation; Ref is the storage identifier teams point to.
type Pokemon struct {
	Ref        string        `json:"_id,omitempty"`
	ID         int           `json:"id"`
	Name       PokemonName   `json:"name"`
	Types      []PokemonType `json:"type"`
	Base       *BaseStats    `json:"base,omitempty"`
	Image      string        `json:"image,omitempty"`
	ShinyImage string        `json:"shinyImage,omitempty"`
}

// Stat is shorthand for p.Base.Get(attr).
func (p *Pokemon) Stat(attr Attribute) (int, bool) {
	return p.Base.Get(attr)
}

// HasType reports whether t is among the Pokémon's types.
func (p *Pokemon) HasType(t PokemonType) bool {
	for _, own := range p.Types {
		if own == t {
			return true
		}
	}
	return false
}

// Validate checks the entry invariants: positive identity, a primary name,
// a non-empty set of recognised types, and every present stat in range.
func (p *Pokemon) Validate() error {
	var problems []string

	if p.ID < 1 {
		problems = append(problems, "id must be a positive integer")
	}
	if strings.TrimSpace(p.Name.French) == "" {
		problems = append(problems, "name.french is required")
	}
	if len(p.Types) == 0 {
		problems = append(problems, "type must contain at least one value")
	}
	seen := make(map[PokemonType]struct{}, len(p.Types))
	for _, t := range p.Types {
		if !t.Valid() {
			problems = append(problems, fmt.Sprintf("type %q is not recognised", t))
			continue
		}
		if _, dup := seen[t]; dup {
			problems = append(problems, fmt.Sprintf("type %q is repeated", t))
		}
		seen[t] = struct{}{}
	}
	for _, attr := range AllAttributes {
		if v, ok := p.Stat(attr); ok && (v < MinStat || v > MaxStat) {
			problems = append(problems, fmt.Sprintf("base.%s must be between %d and %d", attr, MinStat, MaxStat))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(problems, "; "), ErrInvalidArgument)
	}
	return nil
}
