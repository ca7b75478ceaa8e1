package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/services"
)

type dashboardHandler struct {
	responder Responder
	dashboard *services.DashboardService
}

func newDashboardHandler(dashboard *services.DashboardService) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		dashboard: dashboard,
	}
}

// getStats returns the admin dashboard counters
// @Summary Dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Router /api/admin/dashboard [get]
func (h dashboardHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.dashboard.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}
