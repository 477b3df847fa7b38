package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/api/metrics"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// FavoriteHandler serves the caller's favorite set.
type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/favorites.
//
// @Summary      List favorites
// @Description  Favorites whose catalog entry was deleted are omitted.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Pokemon
// @Failure      401  {object}  errorResponse
// @Router       /api/favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	list, err := h.favorites.List(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Add handles POST /api/favorites/:pokemonId. Adding twice is harmless.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        pokemonId  path      int  true  "Pokédex id"
// @Success      200        {object}  favoriteResponse
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/favorites/{pokemonId} [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "pokemonId")
	if err != nil {
		return err
	}
	p, err := h.favorites.Add(c.Request().Context(), who, id)
	if err != nil {
		return err
	}
	metrics.FavoriteMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, favoriteResponse{
		Message: p.Name.Display() + " added to favorites",
		Pokemon: p,
	})
}

// Remove handles DELETE /api/favorites/:pokemonId. Removing an absent
// favorite succeeds.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        pokemonId  path      int  true  "Pokédex id"
// @Success      200        {object}  messageResponse
// @Failure      401        {object}  errorResponse
// @Router       /api/favorites/{pokemonId} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := intParam(c, "pokemonId")
	if err != nil {
		return err
	}
	if err := h.favorites.Remove(c.Request().Context(), who, id); err != nil {
		return err
	}
	metrics.FavoriteMutationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "removed from favorites"})
}
