package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/services"
)

type settingsHandler struct {
	responder Responder
	logger    zerolog.Logger
	settings  *services.SettingsService
}

func newSettingsHandler(settings *services.SettingsService) settingsHandler {
	logger := log.With().Str("handlerName", "settingsHandler").Logger()

	return settingsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		settings:  settings,
	}
}

// getSettings returns the site owner's profile settings
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /api/settings [get]
func (h settingsHandler) getSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := h.settings.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}

// saveSettings overwrites the settings
// @Summary Save settings
// @Tags Admin
// @Accept json
// @Produce json
// @Param settings body services.SettingsInput true "Settings"
// @Success 200 {object} models.Settings
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/settings [put]
func (h settingsHandler) saveSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.SettingsInput
		if err := decodeJSON(r, "settings", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		settings, err := h.settings.Save(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, settings)
	}
}
