package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
	"github.com/bgpaten/ahyarpattani/services"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	contact   *services.ContactService
}

func newContactHandler(contact *services.ContactService) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		contact:   contact,
	}
}

// ContactResponse acknowledges a stored contact message
type ContactResponse struct {
	ID     uuid.UUID            `json:"id"`
	Status models.ContactStatus `json:"status"`
}

type markReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// submit stores a contact form message and notifies the owner
// @Summary Submit contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body services.ContactInput true "Message"
// @Success 201 {object} ContactResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/contact [post]
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ContactInput
		if err := decodeJSON(r, "contact", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.contact.Submit(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, ContactResponse{ID: msg.ID, Status: models.ContactStatusSuccess})
	}
}

// listMessages returns contact messages newest first
// @Summary List contact messages
// @Tags Admin
// @Produce json
// @Success 200 {array} models.ContactMessage
// @Router /api/admin/messages [get]
func (h contactHandler) listMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msgs, err := h.contact.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if msgs == nil {
			msgs = []models.ContactMessage{}
		}
		h.responder.WriteJSON(w, msgs)
	}
}

// markRead flags a message read or unread
// @Summary Mark message read
// @Tags Admin
// @Accept json
// @Produce json
// @Param messageID path string true "Message ID" format(uuid)
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/messages/{messageID} [patch]
func (h contactHandler) markRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("messageID", "must be a UUID"))
			return
		}

		var req markReadRequest
		if err := decodeJSON(r, "message", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		msg, err := h.contact.MarkRead(r.Context(), messageID, *req.Read)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, msg)
	}
}
