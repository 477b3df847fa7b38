package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// TeamService enforces the roster invariants on every write. Each operation
// starts by loading the team scoped to the caller, so a team owned by
// someone else is reported as not found.
//
// Update is read-validate-write: two sessions of the same user replacing the
// same team concurrently race and the last write wins. AddMember and
// RemoveMemberAt are guarded in the store and report domain.ErrConflict when
// they lose such a race.
type TeamService struct {
	teams    ports.TeamRepository
	pokemons ports.PokemonRepository
	logger   zerolog.Logger
}

func NewTeamService(teams ports.TeamRepository, pokemons ports.PokemonRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{teams: teams, pokemons: pokemons, logger: logger}
}

func (s *TeamService) Create(ctx context.Context, who ports.Identity, input ports.TeamInput) (*domain.ResolvedTeam, error) {
	name, members, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	created, err := s.teams.Create(ctx, &domain.Team{UserID: who.UserID, Name: name, Members: members})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", who.UserID).Str("team_id", created.ID).Int("members", len(members)).Msg("team created")
	return s.resolveOne(ctx, created)
}

func (s *TeamService) Get(ctx context.Context, who ports.Identity, teamID string) (*domain.ResolvedTeam, error) {
	team, err := s.teams.FindByID(ctx, teamID, who.UserID)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, team)
}

func (s *TeamService) List(ctx context.Context, who ports.Identity) ([]domain.ResolvedTeam, error) {
	teams, err := s.teams.ListByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, teams...)
}

// Update replaces the name and the whole member list. Any invariant
// violation rejects the write as a whole.
func (s *TeamService) Update(ctx context.Context, who ports.Identity, teamID string, input ports.TeamInput) (*domain.ResolvedTeam, error) {
	if _, err := s.teams.FindByID(ctx, teamID, who.UserID); err != nil {
		return nil, err
	}

	name, members, err := s.validateInput(ctx, input)
	if err != nil {
		return nil, err
	}

	updated, err := s.teams.Update(ctx, teamID, who.UserID, name, members)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("team_id", teamID).Int("members", len(members)).Msg("team updated")
	return s.resolveOne(ctx, updated)
}

func (s *TeamService) Rename(ctx context.Context, who ports.Identity, teamID, name string) (*domain.ResolvedTeam, error) {
	if _, err := s.teams.FindByID(ctx, teamID, who.UserID); err != nil {
		return nil, err
	}

	name, err := domain.NormalizeTeamName(name)
	if err != nil {
		return nil, err
	}

	renamed, err := s.teams.Rename(ctx, teamID, who.UserID, name)
	if err != nil {
		return nil, err
	}
	return s.resolveOne(ctx, renamed)
}

// AddMember appends ref at the end of the team.
func (s *TeamService) AddMember(ctx context.Context, who ports.Identity, teamID, ref string) (*domain.ResolvedTeam, error) {
	team, err := s.teams.FindByID(ctx, teamID, who.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := team.WithMember(ref); err != nil {
		return nil, err
	}
	if err := s.ensureExist(ctx, []string{ref}); err != nil {
		return nil, err
	}

	updated, err := s.teams.AppendMember(ctx, teamID, who.UserID, ref)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("team_id", teamID).Str("ref", ref).Msg("team member added")
	return s.resolveOne(ctx, updated)
}

// RemoveMemberAt removes the member at index; later members shift left.
func (s *TeamService) RemoveMemberAt(ctx context.Context, who ports.Identity, teamID string, index int) (*domain.ResolvedTeam, error) {
	team, err := s.teams.FindByID(ctx, teamID, who.UserID)
	if err != nil {
		return nil, err
	}
	members, err := team.WithoutMemberAt(index)
	if err != nil {
		return nil, err
	}

	updated, err := s.teams.SwapMembers(ctx, teamID, who.UserID, team.Members, members)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("team_id", teamID).Int("index", index).Msg("team member removed")
	return s.resolveOne(ctx, updated)
}

func (s *TeamService) Delete(ctx context.Context, who ports.Identity, teamID string) error {
	if err := s.teams.Delete(ctx, teamID, who.UserID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", who.UserID).Str("team_id", teamID).Msg("team deleted")
	return nil
}

func (s *TeamService) validateInput(ctx context.Context, input ports.TeamInput) (string, []string, error) {
	name, err := domain.NormalizeTeamName(input.Name)
	if err != nil {
		return "", nil, err
	}

	members := input.Members
	if members == nil {
		members = []string{}
	}
	if err := domain.ValidateMembers(members); err != nil {
		return "", nil, err
	}
	if err := s.ensureExist(ctx, members); err != nil {
		return "", nil, err
	}
	return name, members, nil
}

// ensureExist fails with a not-found error naming the first reference that
// has no catalog entry.
func (s *TeamService) ensureExist(ctx context.Context, refs []string) error {
	if len(refs) == 0 {
		return nil
	}

	found, err := s.pokemons.FindByRefs(ctx, refs)
	if err != nil {
		return err
	}
	known := make(map[string]struct{}, len(found))
	for _, p := range found {
		known[p.Ref] = struct{}{}
	}
	for _, ref := range refs {
		if _, ok := known[ref]; !ok {
			return fmt.Errorf("pokemon %s: %w", ref, domain.ErrPokemonNotFound)
		}
	}
	return nil
}

func (s *TeamService) resolveOne(ctx context.Context, team *domain.Team) (*domain.ResolvedTeam, error) {
	resolved, err := s.resolve(ctx, team)
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// resolve joins the teams against the catalog with a single lookup.
// References whose entry was deleted come back flagged as missing.
func (s *TeamService) resolve(ctx context.Context, teams ...*domain.Team) ([]domain.ResolvedTeam, error) {
	var refs []string
	seen := make(map[string]struct{})
	for _, t := range teams {
		for _, ref := range t.Members {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}

	byRef := make(map[string]*domain.Pokemon, len(refs))
	if len(refs) > 0 {
		found, err := s.pokemons.FindByRefs(ctx, refs)
		if err != nil {
			return nil, fmt.Errorf("resolve team members: %w", err)
		}
		for _, p := range found {
			byRef[p.Ref] = p
		}
	}

	out := make([]domain.ResolvedTeam, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Resolve(byRef))
	}
	return out, nil
}
