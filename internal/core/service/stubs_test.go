package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func intPtr(v int) *int { return &v }

func refOf(id int) string { return fmt.Sprintf("ref-%d", id) }

// ---------------------------------------------------------------------------
// Pokémon repository
// ---------------------------------------------------------------------------

type stubPokemonRepo struct {
	byID          map[int]*domain.Pokemon
	err           error // if set, every call returns it
	snapshotCalls int
}

func newStubPokemonRepo(entries ...*domain.Pokemon) *stubPokemonRepo {
	r := &stubPokemonRepo{byID: make(map[int]*domain.Pokemon)}
	for _, p := range entries {
		clone := *p
		if clone.Ref == "" {
			clone.Ref = refOf(clone.ID)
		}
		r.byID[clone.ID] = &clone
	}
	return r
}

func (r *stubPokemonRepo) sorted() []*domain.Pokemon {
	out := make([]*domain.Pokemon, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortKey(p *domain.Pokemon, field string) (num int, str string) {
	switch field {
	case "id":
		return p.ID, ""
	case "name.french":
		return 0, p.Name.French
	case "name.english":
		return 0, p.Name.English
	}
	v, ok := p.Stat(domain.Attribute(strings.TrimPrefix(field, "base.")))
	if !ok {
		return -1, ""
	}
	return v, ""
}

// List mirrors the Mongo repository: filter, sort with id tie-break, skip, limit.
func (r *stubPokemonRepo) List(_ context.Context, q ports.PokemonQuery) ([]*domain.Pokemon, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}

	var matched []*domain.Pokemon
	for _, p := range r.sorted() {
		if q.Type != "" && !p.HasType(q.Type) {
			continue
		}
		if q.Name != "" {
			needle := strings.ToLower(q.Name)
			if !strings.Contains(strings.ToLower(p.Name.French), needle) &&
				!strings.Contains(strings.ToLower(p.Name.English), needle) {
				continue
			}
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ni, si := sortKey(matched[i], q.Sort.Field)
		nj, sj := sortKey(matched[j], q.Sort.Field)
		if ni == nj && si == sj {
			return matched[i].ID < matched[j].ID
		}
		less := ni < nj || (ni == nj && si < sj)
		if q.Sort.Desc {
			return !less
		}
		return less
	})

	total := int64(len(matched))
	if q.Skip() >= total {
		return []*domain.Pokemon{}, total, nil
	}
	skip := int(q.Skip())
	end := skip + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubPokemonRepo) FindByID(_ context.Context, id int) (*domain.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPokemonNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPokemonRepo) FindByIDs(_ context.Context, ids []int) ([]*domain.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*domain.Pokemon
	for _, p := range r.sorted() {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPokemonRepo) FindByRefs(_ context.Context, refs []string) ([]*domain.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if !strings.HasPrefix(ref, "ref-") {
			return nil, fmt.Errorf("malformed reference %q: %w", ref, domain.ErrInvalidArgument)
		}
		want[ref] = true
	}
	var out []*domain.Pokemon
	for _, p := range r.sorted() {
		if want[p.Ref] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPokemonRepo) Snapshot(_ context.Context) ([]*domain.Pokemon, error) {
	r.snapshotCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(), nil
}

func (r *stubPokemonRepo) Create(_ context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, exists := r.byID[p.ID]; exists {
		return nil, domain.ErrPokemonExists
	}
	clone := *p
	clone.Ref = refOf(p.ID)
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPokemonRepo) Replace(_ context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	if r.err != nil {
		return nil, r.err
	}
	old, ok := r.byID[p.ID]
	if !ok {
		return nil, domain.ErrPokemonNotFound
	}
	clone := *p
	clone.Ref = old.Ref
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPokemonRepo) Delete(_ context.Context, id int) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPokemonNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubPokemonRepo) ReplaceAll(_ context.Context, entries []*domain.Pokemon) (int, error) {
	r.byID = make(map[int]*domain.Pokemon)
	for _, p := range entries {
		clone := *p
		clone.Ref = refOf(p.ID)
		r.byID[p.ID] = &clone
	}
	return len(entries), nil
}

// ---------------------------------------------------------------------------
// User repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID         map[string]*domain.User
	nextID       int
	setHashCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Favorites = append([]int{}, u.Favorites...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetPasswordHash(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.setHashCalls++
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) AddFavorite(_ context.Context, id string, pokemonID int) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !u.HasFavorite(pokemonID) {
		u.Favorites = append(u.Favorites, pokemonID)
	}
	return nil
}

func (r *stubUserRepo) RemoveFavorite(_ context.Context, id string, pokemonID int) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Favorites[:0]
	for _, f := range u.Favorites {
		if f != pokemonID {
			kept = append(kept, f)
		}
	}
	u.Favorites = kept
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Team repository
// ---------------------------------------------------------------------------

type stubTeamRepo struct {
	byID   map[string]*domain.Team
	nextID int
	// beforeWrite, if set, runs before a guarded write to simulate a
	// concurrent edit.
	beforeWrite func(t *domain.Team)
}

func newStubTeamRepo() *stubTeamRepo {
	return &stubTeamRepo{byID: make(map[string]*domain.Team)}
}

func cloneTeam(t *domain.Team) *domain.Team {
	clone := *t
	clone.Members = append([]string{}, t.Members...)
	return &clone
}

func (r *stubTeamRepo) owned(id, userID string) (*domain.Team, error) {
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTeamNotFound
	}
	return t, nil
}

func (r *stubTeamRepo) Create(_ context.Context, team *domain.Team) (*domain.Team, error) {
	r.nextID++
	stored := cloneTeam(team)
	stored.ID = fmt.Sprintf("team-%d", r.nextID)
	r.byID[stored.ID] = stored
	return cloneTeam(stored), nil
}

func (r *stubTeamRepo) FindByID(_ context.Context, id, userID string) (*domain.Team, error) {
	t, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) ListByUser(_ context.Context, userID string) ([]*domain.Team, error) {
	var out []*domain.Team
	for _, t := range r.byID {
		if t.UserID == userID {
			out = append(out, cloneTeam(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTeamRepo) Update(_ context.Context, id, userID, name string, members []string) (*domain.Team, error) {
	t, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	t.Name = name
	t.Members = append([]string{}, members...)
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) Rename(_ context.Context, id, userID, name string) (*domain.Team, error) {
	t, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	t.Name = name
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) AppendMember(_ context.Context, id, userID, ref string) (*domain.Team, error) {
	t, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if r.beforeWrite != nil {
		r.beforeWrite(t)
	}
	if len(t.Members) >= domain.MaxTeamSize || t.Contains(ref) {
		return nil, domain.ErrConflict
	}
	t.Members = append(t.Members, ref)
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) SwapMembers(_ context.Context, id, userID string, expected, members []string) (*domain.Team, error) {
	t, err := r.owned(id, userID)
	if err != nil {
		return nil, err
	}
	if r.beforeWrite != nil {
		r.beforeWrite(t)
	}
	if strings.Join(t.Members, ",") != strings.Join(expected, ",") {
		return nil, domain.ErrConflict
	}
	t.Members = append([]string{}, members...)
	return cloneTeam(t), nil
}

func (r *stubTeamRepo) Delete(_ context.Context, id, userID string) error {
	if _, err := r.owned(id, userID); err != nil {
		return err
	}
	delete(r.byID, id)
	return nil
}

func (r *stubTeamRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, t := range r.byID {
		if t.UserID == userID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
