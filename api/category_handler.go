package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/services"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *services.CategoryService
}

func newCategoryHandler(categories *services.CategoryService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

func categoryIDParam(r *http.Request) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("categoryID", "must be a UUID")
	}
	return categoryID, nil
}

// listCategories retrieves every category ordered by name
// @Summary List categories
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/admin/categories [get]
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// createCategory creates a category; an empty slug is derived from the name
// @Summary Create category
// @Tags Admin
// @Accept json
// @Produce json
// @Param category body services.CategoryInput true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.CategoryInput
		if err := decodeJSON(r, "category", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Create(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// updateCategory replaces a category's name, slug and type
// @Summary Update category
// @Tags Admin
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Param category body services.CategoryInput true "Category"
// @Success 200 {object} models.Category
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/categories/{categoryID} [put]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := categoryIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.CategoryInput
		if err := decodeJSON(r, "category", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Update(r.Context(), categoryID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory deletes a category and unlinks it from every project
// @Summary Delete category
// @Tags Admin
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/categories/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := categoryIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categories.Delete(r.Context(), categoryID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
