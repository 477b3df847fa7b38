package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pokedex/pokedex-api/internal/api/metrics"
	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Overview handles GET /api/stats.
//
// @Summary      Catalog statistics
// @Description  Counts per type, a per-type average of one attribute, global averages over complete entries and the top Pokémon per attribute, all computed from one snapshot.
// @Tags         stats
// @Produce      json
// @Param        attribute  query     string  false  "Attribute averaged per type"  default(HP)  Enums(HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed)
// @Success      200        {object}  domain.StatsOverview
// @Failure      400        {object}  errorResponse
// @Router       /api/stats [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.StatsComputeDuration)
	overview, err := h.stats.Overview(c.Request().Context(), domain.Attribute(c.QueryParam("attribute")))
	timer.ObserveDuration()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}
