package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"ritual_desk/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	usecase usecase.IAnalyticsUseCase
}

func NewAnalyticsHandler(uc usecase.IAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{usecase: uc}
}

// Summary godoc
// @Summary      Request rollup over the last N days
// @Tags         admin-analytics
// @Produce      json
// @Param        days  query     int  false  "Window in days (default 30, max 365)"
// @Success      200   {object}  entities.AnalyticsSummary
// @Failure      400   {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /admin/analytics [get]
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalidRequest(c, nil)
			return
		}
		days = v
	}

	s, err := h.usecase.Summary(c.Request.Context(), days)
	if err != nil {
		writeError(c, mapKindError(err))
		return
	}
	c.JSON(http.StatusOK, s)
}
