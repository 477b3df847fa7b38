package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/core/ports"
	"github.com/pokedex/pokedex-api/internal/core/service"
)

// PokemonHandler serves the catalog.
type PokemonHandler struct {
	catalog ports.CatalogService
}

func NewPokemonHandler(catalog ports.CatalogService) *PokemonHandler {
	return &PokemonHandler{catalog: catalog}
}

// List handles GET /api/pokemons.
//
// @Summary      List Pokémon
// @Description  Filtered, sorted and paginated catalog listing. sort takes a field name, prefixed with "-" for descending order; ties are broken by ascending id.
// @Tags         pokemons
// @Produce      json
// @Param        type   query     string  false  "Type filter (e.g. Fire)"
// @Param        name   query     string  false  "Case-insensitive substring of the french or english name"
// @Param        sort   query     string  false  "Sort field (id, name.french, name.english, base.HP, ..., -base.Attack)"
// @Param        page   query     int     false  "Page number, from 1"      default(1)
// @Param        limit  query     int     false  "Page size, 1 to 1000"     default(50)
// @Success      200    {object}  listPokemonsResponse
// @Failure      400    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /api/pokemons [get]
func (h *PokemonHandler) List(c echo.Context) error {
	q := listPokemonsQuery{Page: 1, Limit: service.DefaultPageSize}
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}

	res, err := h.catalog.List(c.Request().Context(), ports.ListPokemonsInput{
		Type:  q.Type,
		Name:  q.Name,
		Sort:  q.Sort,
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listPokemonsResponse{
		Data:       res.Items,
		Page:       res.Page,
		Limit:      res.Limit,
		Total:      res.Total,
		TotalPages: res.TotalPages,
	})
}

// Get handles GET /api/pokemons/:id.
//
// @Summary      Get a Pokémon by id
// @Tags         pokemons
// @Produce      json
// @Param        id   path      int  true  "Pokédex id"
// @Success      200  {object}  domain.Pokemon
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/pokemons/{id} [get]
func (h *PokemonHandler) Get(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/pokemons.
//
// @Summary      Add a Pokémon to the catalog
// @Tags         pokemons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      pokemonRequest  true  "Catalog entry"
// @Success      201   {object}  domain.Pokemon
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/pokemons [post]
func (h *PokemonHandler) Create(c echo.Context) error {
	var req pokemonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.catalog.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/pokemons/:id.
//
// @Summary      Replace a catalog entry
// @Tags         pokemons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Pokédex id"
// @Param        body  body      pokemonRequest  true  "Catalog entry"
// @Success      200   {object}  domain.Pokemon
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/pokemons/{id} [put]
func (h *PokemonHandler) Update(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	var req pokemonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.catalog.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/pokemons/:id. Teams and favorites pointing at
// the entry are left as they are.
//
// @Summary      Remove a catalog entry
// @Tags         pokemons
// @Security     BearerAuth
// @Param        id   path  int  true  "Pokédex id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/pokemons/{id} [delete]
func (h *PokemonHandler) Delete(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
