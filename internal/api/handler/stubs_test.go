package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/api/middleware"
	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

var ash = ports.Identity{UserID: "665f1c2e9b1d4a0001a1b2c3", Username: "ash"}

// newContext builds a request context with the JSON validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// signedIn marks c as authenticated the way the Auth middleware does.
func signedIn(c echo.Context) echo.Context {
	middleware.SetIdentity(c, ash)
	return c
}

type stubAuthService struct {
	registerFn       func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn          func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	meFn             func(ctx context.Context, who ports.Identity) (*domain.User, error)
	changePasswordFn func(ctx context.Context, who ports.Identity, current, next string) error
	deleteAccountFn  func(ctx context.Context, who ports.Identity) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAuthService) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Me(ctx context.Context, who ports.Identity) (*domain.User, error) {
	return s.meFn(ctx, who)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, who ports.Identity, current, next string) error {
	return s.changePasswordFn(ctx, who, current, next)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, who ports.Identity) error {
	return s.deleteAccountFn(ctx, who)
}

type stubCatalogService struct {
	listFn   func(ctx context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error)
	getFn    func(ctx context.Context, id int) (*domain.Pokemon, error)
	createFn func(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error)
	updateFn func(ctx context.Context, id int, p *domain.Pokemon) (*domain.Pokemon, error)
	deleteFn func(ctx context.Context, id int) error
}

func (s *stubCatalogService) List(ctx context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubCatalogService) Get(ctx context.Context, id int) (*domain.Pokemon, error) {
	return s.getFn(ctx, id)
}

func (s *stubCatalogService) Create(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	return s.createFn(ctx, p)
}

func (s *stubCatalogService) Update(ctx context.Context, id int, p *domain.Pokemon) (*domain.Pokemon, error) {
	return s.updateFn(ctx, id, p)
}

func (s *stubCatalogService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

type stubFavoriteService struct {
	addFn    func(ctx context.Context, who ports.Identity, pokemonID int) (*domain.Pokemon, error)
	removeFn func(ctx context.Context, who ports.Identity, pokemonID int) error
	listFn   func(ctx context.Context, who ports.Identity) ([]*domain.Pokemon, error)
}

func (s *stubFavoriteService) Add(ctx context.Context, who ports.Identity, pokemonID int) (*domain.Pokemon, error) {
	return s.addFn(ctx, who, pokemonID)
}

func (s *stubFavoriteService) Remove(ctx context.Context, who ports.Identity, pokemonID int) error {
	return s.removeFn(ctx, who, pokemonID)
}

func (s *stubFavoriteService) List(ctx context.Context, who ports.Identity) ([]*domain.Pokemon, error) {
	return s.listFn(ctx, who)
}

type stubStatsService struct {
	overviewFn func(ctx context.Context, attr domain.Attribute) (*domain.StatsOverview, error)
}

func (s *stubStatsService) Overview(ctx context.Context, attr domain.Attribute) (*domain.StatsOverview, error) {
	return s.overviewFn(ctx, attr)
}

// stubTeamService records the last call and answers with team or err.
type stubTeamService struct {
	team  *domain.ResolvedTeam
	teams []domain.ResolvedTeam
	err   error

	lastOp    string
	lastWho   ports.Identity
	lastID    string
	lastInput ports.TeamInput
	lastRef   string
	lastIndex int
}

func (s *stubTeamService) record(op string, who ports.Identity, id string) {
	s.lastOp, s.lastWho, s.lastID = op, who, id
}

func (s *stubTeamService) Create(_ context.Context, who ports.Identity, input ports.TeamInput) (*domain.ResolvedTeam, error) {
	s.record("create", who, "")
	s.lastInput = input
	return s.team, s.err
}

func (s *stubTeamService) Get(_ context.Context, who ports.Identity, teamID string) (*domain.ResolvedTeam, error) {
	s.record("get", who, teamID)
	return s.team, s.err
}

func (s *stubTeamService) List(_ context.Context, who ports.Identity) ([]domain.ResolvedTeam, error) {
	s.record("list", who, "")
	return s.teams, s.err
}

func (s *stubTeamService) Update(_ context.Context, who ports.Identity, teamID string, input ports.TeamInput) (*domain.ResolvedTeam, error) {
	s.record("update", who, teamID)
	s.lastInput = input
	return s.team, s.err
}

func (s *stubTeamService) Rename(_ context.Context, who ports.Identity, teamID, name string) (*domain.ResolvedTeam, error) {
	s.record("rename", who, teamID)
	s.lastInput = ports.TeamInput{Name: name}
	return s.team, s.err
}

func (s *stubTeamService) AddMember(_ context.Context, who ports.Identity, teamID, ref string) (*domain.ResolvedTeam, error) {
	s.record("add_member", who, teamID)
	s.lastRef = ref
	return s.team, s.err
}

func (s *stubTeamService) RemoveMemberAt(_ context.Context, who ports.Identity, teamID string, index int) (*domain.ResolvedTeam, error) {
	s.record("remove_member", who, teamID)
	s.lastIndex = index
	return s.team, s.err
}

func (s *stubTeamService) Delete(_ context.Context, who ports.Identity, teamID string) error {
	s.record("delete", who, teamID)
	return s.err
}

func pikachu() *domain.Pokemon {
	hp, atk := 35, 55
	return &domain.Pokemon{
		Ref:   "665f1c2e9b1d4a0001a1b2d4",
		ID:    25,
		Name:  domain.PokemonName{French: "Pikachu", English: "Pikachu"},
		Types: []domain.PokemonType{domain.TypeElectric},
		Base:  &domain.BaseStats{HP: &hp, Attack: &atk},
	}
}
