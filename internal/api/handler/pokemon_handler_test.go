package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

func TestPokemonHandler_List_PassesQueryThrough(t *testing.T) {
	var got ports.ListPokemonsInput
	handler := NewPokemonHandler(&stubCatalogService{
		listFn: func(_ context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error) {
			got = input
			return &ports.ListPokemonsResult{
				Items:      []*domain.Pokemon{pikachu()},
				Page:       2,
				Limit:      1,
				Total:      3,
				TotalPages: 3,
			}, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/api/pokemons?type=Electric&name=pik&sort=-base.Attack&page=2&limit=1", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	want := ports.ListPokemonsInput{Type: "Electric", Name: "pik", Sort: "-base.Attack", Page: 2, Limit: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	var resp struct {
		Data       []map[string]any `json:"data"`
		Page       int              `json:"page"`
		Limit      int              `json:"limit"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"totalPages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Total != 3 || resp.TotalPages != 3 || resp.Page != 2 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestPokemonHandler_List_Defaults(t *testing.T) {
	var got ports.ListPokemonsInput
	handler := NewPokemonHandler(&stubCatalogService{
		listFn: func(_ context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error) {
			got = input
			return &ports.ListPokemonsResult{Items: []*domain.Pokemon{}, Page: 1, Limit: input.Limit}, nil
		},
	})

	c, _ := newContext(http.MethodGet, "/api/pokemons", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Page != 1 || got.Limit != 50 {
		t.Fatalf("expected page 1 limit 50, got %+v", got)
	}
}

func TestPokemonHandler_List_HugePage(t *testing.T) {
	var got ports.ListPokemonsInput
	handler := NewPokemonHandler(&stubCatalogService{
		listFn: func(_ context.Context, input ports.ListPokemonsInput) (*ports.ListPokemonsResult, error) {
			got = input
			return &ports.ListPokemonsResult{Items: []*domain.Pokemon{}, Page: input.Page, Limit: input.Limit, Total: 809, TotalPages: 17}, nil
		},
	})

	c, rec := newContext(http.MethodGet, "/api/pokemons?page=200000000000000000&limit=50", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Page != 200000000000000000 || got.Limit != 50 {
		t.Fatalf("unexpected input %+v", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data       []map[string]any `json:"data"`
		Total      int64            `json:"total"`
		TotalPages int              `json:"totalPages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 0 || resp.Total != 809 || resp.TotalPages != 17 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestPokemonHandler_List_NonNumericPage(t *testing.T) {
	handler := NewPokemonHandler(&stubCatalogService{})

	c, _ := newContext(http.MethodGet, "/api/pokemons?page=two", "")
	err := handler.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestPokemonHandler_Get(t *testing.T) {
	handler := NewPokemonHandler(&stubCatalogService{
		getFn: func(_ context.Context, id int) (*domain.Pokemon, error) {
			if id == 25 {
				return pikachu(), nil
			}
			return nil, domain.ErrPokemonNotFound
		},
	})

	c, rec := newContext(http.MethodGet, "/api/pokemons/25", "")
	c.SetParamNames("id")
	c.SetParamValues("25")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var p domain.Pokemon
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ID != 25 || p.Name.French != "Pikachu" {
		t.Fatalf("unexpected pokemon: %+v", p)
	}

	c, _ = newContext(http.MethodGet, "/api/pokemons/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")
	if err := handler.Get(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPokemonHandler_Get_NonNumericID(t *testing.T) {
	handler := NewPokemonHandler(&stubCatalogService{})

	c, _ := newContext(http.MethodGet, "/api/pokemons/pikachu", "")
	c.SetParamNames("id")
	c.SetParamValues("pikachu")
	if err := handler.Get(c); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPokemonHandler_Create(t *testing.T) {
	var got *domain.Pokemon
	handler := NewPokemonHandler(&stubCatalogService{
		createFn: func(_ context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
			got = p
			return p, nil
		},
	})

	body := `{"id":810,"name":{"french":"Ouistempo","english":"Grookey"},"type":["Grass"],"base":{"HP":50,"Attack":65}}`
	c, rec := newContext(http.MethodPost, "/api/pokemons", body)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.ID != 810 || got.Name.English != "Grookey" || got.Types[0] != domain.TypeGrass {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Base == nil || *got.Base.HP != 50 || got.Base.Speed != nil {
		t.Fatalf("unexpected base stats: %+v", got.Base)
	}
}

func TestPokemonHandler_Create_Validation(t *testing.T) {
	handler := NewPokemonHandler(&stubCatalogService{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing french name", `{"id":1,"name":{"english":"Bulbasaur"},"type":["Grass"]}`, "name.french is required"},
		{"no types", `{"id":1,"name":{"french":"Bulbizarre"},"type":[]}`, "type must contain at least 1 value(s)"},
		{"stat out of range", `{"id":1,"name":{"french":"Bulbizarre"},"type":["Grass"],"base":{"HP":300}}`, "base.HP must be at most 255"},
		{"negative id", `{"id":-1,"name":{"french":"Bulbizarre"},"type":["Grass"]}`, "id must be at least 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/pokemons", tt.body)
			err := handler.Create(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 HTTPError, got %v", err)
			}
			if he.Message != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, he.Message)
			}
		})
	}
}

func TestPokemonHandler_Update(t *testing.T) {
	var gotID int
	handler := NewPokemonHandler(&stubCatalogService{
		updateFn: func(_ context.Context, id int, p *domain.Pokemon) (*domain.Pokemon, error) {
			gotID = id
			return p, nil
		},
	})

	c, rec := newContext(http.MethodPut, "/api/pokemons/25", `{"name":{"french":"Pikachu"},"type":["Electric"]}`)
	c.SetParamNames("id")
	c.SetParamValues("25")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || gotID != 25 {
		t.Fatalf("expected 200 for id 25, got %d for %d", rec.Code, gotID)
	}
}

func TestPokemonHandler_Delete(t *testing.T) {
	handler := NewPokemonHandler(&stubCatalogService{
		deleteFn: func(_ context.Context, id int) error {
			if id != 25 {
				return domain.ErrPokemonNotFound
			}
			return nil
		},
	})

	c, rec := newContext(http.MethodDelete, "/api/pokemons/25", "")
	c.SetParamNames("id")
	c.SetParamValues("25")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodDelete, "/api/pokemons/26", "")
	c.SetParamNames("id")
	c.SetParamValues("26")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
