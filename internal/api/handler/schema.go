package handler

import (
	"time"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Catalog ---

type pokemonNameRequest struct {
	English  string `json:"english"`
	French   string `json:"french"   validate:"required"`
	Japanese string `json:"japanese"`
	Chinese  string `json:"chinese"`
}

type baseStatsRequest struct {
	HP             *int `json:"HP"             validate:"omitempty,min=1,max=255"`
	Attack         *int `json:"Attack"         validate:"omitempty,min=1,max=255"`
	Defense        *int `json:"Defense"        validate:"omitempty,min=1,max=255"`
	SpecialAttack  *int `json:"SpecialAttack"  validate:"omitempty,min=1,max=255"`
	SpecialDefense *int `json:"SpecialDefense" validate:"omitempty,min=1,max=255"`
	Speed          *int `json:"Speed"          validate:"omitempty,min=1,max=255"`
}

// pokemonRequest is the body of POST and PUT /api/pokemons. On PUT the id
// may be omitted; when present it must match the path.
type pokemonRequest struct {
	ID         int                `json:"id"         validate:"gte=0"`
	Name       pokemonNameRequest `json:"name"`
	Types      []string           `json:"type"       validate:"required,min=1,dive,required"`
	Base       *baseStatsRequest  `json:"base"`
	Image      string             `json:"image"`
	ShinyImage string             `json:"shinyImage"`
}

func (r pokemonRequest) toDomain() *domain.Pokemon {
	types := make([]domain.PokemonType, 0, len(r.Types))
	for _, t := range r.Types {
		types = append(types, domain.PokemonType(t))
	}
	p := &domain.Pokemon{
		ID: r.ID,
		Name: domain.PokemonName{
			English:  r.Name.English,
			French:   r.Name.French,
			Japanese: r.Name.Japanese,
			Chinese:  r.Name.Chinese,
		},
		Types:      types,
		Image:      r.Image,
		ShinyImage: r.ShinyImage,
	}
	if r.Base != nil {
		p.Base = &domain.BaseStats{
			HP:             r.Base.HP,
			Attack:         r.Base.Attack,
			Defense:        r.Base.Defense,
			SpecialAttack:  r.Base.SpecialAttack,
			SpecialDefense: r.Base.SpecialDefense,
			Speed:          r.Base.Speed,
		}
	}
	return p
}

type listPokemonsQuery struct {
	Type  string `query:"type"`
	Name  string `query:"name"`
	Sort  string `query:"sort"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

type listPokemonsResponse struct {
	Data       []*domain.Pokemon `json:"data"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Favorites []int     `json:"favorites"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	favorites := u.Favorites
	if favorites == nil {
		favorites = []int{}
	}
	return userResponse{ID: u.ID, Username: u.Username, Favorites: favorites, CreatedAt: u.CreatedAt}
}

type registerResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// --- Favorites ---

type favoriteResponse struct {
	Message string          `json:"message"`
	Pokemon *domain.Pokemon `json:"pokemon"`
}

// --- Teams ---

// teamRequest is the body of POST /api/teams and PUT /api/teams/:id.
// Pokemons holds catalog references in team order.
type teamRequest struct {
	Name     string   `json:"name"     validate:"required"`
	Pokemons []string `json:"pokemons" validate:"omitempty,dive,required"`
}

type renameTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

type addMemberRequest struct {
	Pokemon string `json:"pokemon" validate:"required"`
}
