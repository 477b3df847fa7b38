package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pokedex/pokedex-api/internal/api/metrics"
	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// TeamHandler serves the caller's teams. Teams of other users are reported
// as not found.
type TeamHandler struct {
	teams ports.TeamService
}

func NewTeamHandler(teams ports.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

func recordTeam(op string, err error) {
	metrics.TeamMutationsTotal.WithLabelValues(op, metrics.Result(err)).Inc()
}

// List handles GET /api/teams.
//
// @Summary      List my teams
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ResolvedTeam
// @Failure      401  {object}  errorResponse
// @Router       /api/teams [get]
func (h *TeamHandler) List(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	teams, err := h.teams.List(c.Request().Context(), who)
	if err != nil {
		return err
	}
	if teams == nil {
		teams = []domain.ResolvedTeam{}
	}
	return c.JSON(http.StatusOK, teams)
}

// Create handles POST /api/teams.
//
// @Summary      Create a team
// @Description  At most six distinct members, each an existing catalog entry.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      teamRequest  true  "Team name and member references"
// @Success      201   {object}  domain.ResolvedTeam
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/teams [post]
func (h *TeamHandler) Create(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req teamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.teams.Create(c.Request().Context(), who, ports.TeamInput{Name: req.Name, Members: req.Pokemons})
	recordTeam("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, team)
}

// Get handles GET /api/teams/:id.
//
// @Summary      Get a team
// @Description  Members whose catalog entry was deleted keep their slot and are flagged missing.
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Team id"
// @Success      200  {object}  domain.ResolvedTeam
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/teams/{id} [get]
func (h *TeamHandler) Get(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	team, err := h.teams.Get(c.Request().Context(), who, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// Update handles PUT /api/teams/:id. The name and the whole member list are
// replaced together or not at all.
//
// @Summary      Replace a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Team id"
// @Param        body  body      teamRequest  true  "Team name and member references"
// @Success      200   {object}  domain.ResolvedTeam
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/teams/{id} [put]
func (h *TeamHandler) Update(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req teamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.teams.Update(c.Request().Context(), who, c.Param("id"), ports.TeamInput{Name: req.Name, Members: req.Pokemons})
	recordTeam("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// Rename handles PATCH /api/teams/:id/name.
//
// @Summary      Rename a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Team id"
// @Param        body  body      renameTeamRequest  true  "New name"
// @Success      200   {object}  domain.ResolvedTeam
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/teams/{id}/name [patch]
func (h *TeamHandler) Rename(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req renameTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.teams.Rename(c.Request().Context(), who, c.Param("id"), req.Name)
	recordTeam("rename", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// AddMember handles POST /api/teams/:id/members.
//
// @Summary      Append a member
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Team id"
// @Param        body  body      addMemberRequest  true  "Catalog reference"
// @Success      200   {object}  domain.ResolvedTeam
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse  "Already a member, or the team changed concurrently"
// @Failure      422   {object}  errorResponse  "Team is full"
// @Router       /api/teams/{id}/members [post]
func (h *TeamHandler) AddMember(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	var req addMemberRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	team, err := h.teams.AddMember(c.Request().Context(), who, c.Param("id"), req.Pokemon)
	recordTeam("add_member", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// RemoveMember handles DELETE /api/teams/:id/members/:index. Later members
// shift left.
//
// @Summary      Remove the member at a position
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true  "Team id"
// @Param        index  path      int     true  "Zero-based position"
// @Success      200    {object}  domain.ResolvedTeam
// @Failure      404    {object}  errorResponse
// @Failure      409    {object}  errorResponse
// @Failure      422    {object}  errorResponse  "Index out of range"
// @Router       /api/teams/{id}/members/{index} [delete]
func (h *TeamHandler) RemoveMember(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	index, err := intParam(c, "index")
	if err != nil {
		return err
	}

	team, err := h.teams.RemoveMemberAt(c.Request().Context(), who, c.Param("id"), index)
	recordTeam("remove_member", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// Delete handles DELETE /api/teams/:id.
//
// @Summary      Delete a team
// @Tags         teams
// @Security     BearerAuth
// @Param        id   path  string  true  "Team id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/teams/{id} [delete]
func (h *TeamHandler) Delete(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	err = h.teams.Delete(c.Request().Context(), who, c.Param("id"))
	recordTeam("delete", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
