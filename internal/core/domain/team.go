package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxTeamSize is the maximum number of Pokémon in a team.
const MaxTeamSize = 6

// Team is a user-owned roster. Members holds Pokémon storage references in
// order; it never contains gaps or duplicates and never exceeds MaxTeamSize.
type Team struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Members   []string  `json:"pokemons"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeTeamName trims name and rejects it when empty.
func NormalizeTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("team name is required: %w", ErrInvalidArgument)
	}
	return name, nil
}

// ValidateMembers checks a complete member list against the capacity and
// uniqueness invariants.
func ValidateMembers(members []string) error {
	if len(members) > MaxTeamSize {
		return fmt.Errorf("a team holds at most %d pokemon, got %d: %w", MaxTeamSize, len(members), ErrCapacityExceeded)
	}
	seen := make(map[string]struct{}, len(members))
	for _, ref := range members {
		if ref == "" {
			return fmt.Errorf("empty pokemon reference: %w", ErrInvalidArgument)
		}
		if _, dup := seen[ref]; dup {
			return fmt.Errorf("pokemon %s appears twice: %w", ref, ErrConflict)
		}
		seen[ref] = struct{}{}
	}
	return nil
}

// Contains reports whether ref is already a member.
func (t *Team) Contains(ref string) bool {
	for _, m := range t.Members {
		if m == ref {
			return true
		}
	}
	return false
}

// WithMember returns the member list with ref appended, or an error when the
// team is full or already holds ref. t is not modified.
func (t *Team) WithMember(ref string) ([]string, error) {
	if len(t.Members) >= MaxTeamSize {
		return nil, fmt.Errorf("team already has %d pokemon: %w", MaxTeamSize, ErrCapacityExceeded)
	}
	if t.Contains(ref) {
		return nil, fmt.Errorf("pokemon %s is already in the team: %w", ref, ErrConflict)
	}
	out := make([]string, 0, len(t.Members)+1)
	out = append(out, t.Members...)
	return append(out, ref), nil
}

// WithoutMemberAt returns the member list with position index removed and
// later members shifted left. t is not modified.
func (t *Team) WithoutMemberAt(index int) ([]string, error) {
	if index < 0 || index >= len(t.Members) {
		return nil, fmt.Errorf("index %d outside [0,%d): %w", index, len(t.Members), ErrOutOfRange)
	}
	out := make([]string, 0, len(t.Members)-1)
	out = append(out, t.Members[:index]...)
	return append(out, t.Members[index+1:]...), nil
}

// TeamSlot is one resolved member of a team. Pokemon is nil and Missing is
// true when the referenced entry no longer exists in the catalog.
type TeamSlot struct {
	Ref     string   `json:"ref"`
	Pokemon *Pokemon `json:"pokemon,omitempty"`
	Missing bool     `json:"missing,omitempty"`
}

// ResolvedTeam is a team joined against the catalog for display.
type ResolvedTeam struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"user"`
	Name      string     `json:"name"`
	Pokemons  []TeamSlot `json:"pokemons"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Resolve joins the team's members against byRef. Dangling references are
// kept in place and flagged as missing.
func (t *Team) Resolve(byRef map[string]*Pokemon) ResolvedTeam {
	slots := make([]TeamSlot, 0, len(t.Members))
	for _, ref := range t.Members {
		p, ok := byRef[ref]
		if !ok {
			slots = append(slots, TeamSlot{Ref: ref, Missing: true})
			continue
		}
		slots = append(slots, TeamSlot{Ref: ref, Pokemon: p})
	}
	return ResolvedTeam{
		ID:        t.ID,
		UserID:    t.UserID,
		Name:      t.Name,
		Pokemons:  slots,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
