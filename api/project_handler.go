package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
	"github.com/bgpaten/ahyarpattani/services"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
}

func newProjectHandler(projects *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// ProjectView is a project together with the layout the site renders it with
type ProjectView struct {
	models.Project
	DisplayMode models.DisplayMode `json:"display_mode"`
}

func newProjectViews(projects []models.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, ProjectView{Project: p, DisplayMode: p.DisplayMode()})
	}
	return views
}

// ProjectCollection represents a list of projects
type ProjectCollection struct {
	Projects []ProjectView `json:"projects"`
	Total    int           `json:"total"`
}

// ProjectDetailResponse is a published project page
type ProjectDetailResponse struct {
	Project        ProjectView   `json:"project"`
	CreatedDisplay string        `json:"created_display"`
	Others         []ProjectView `json:"others"`
}

// ProjectFormResponse is the editable state of one project
type ProjectFormResponse struct {
	ID   uuid.UUID            `json:"id"`
	Form services.ProjectForm `json:"form"`
}

func projectIDParam(r *http.Request) (uuid.UUID, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError("projectID")
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("projectID", "must be a UUID")
	}
	return projectID, nil
}

// listPublished retrieves the published projects
// @Summary List published projects
// @Description Published projects ordered by sort order then newest, optionally filtered by category type or slug
// @Tags Projects
// @Produce json
// @Param filter query string false "Category type or slug; all for no filter"
// @Param limit query int false "Maximum number of projects, applied after filtering"
// @Param featured query bool false "Only featured projects"
// @Success 200 {object} ProjectCollection
// @Failure 400 {object} ErrorResponse
// @Router /api/projects [get]
func (h projectHandler) listPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := services.ListOptions{Filter: strings.TrimSpace(q.Get("filter"))}

		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a non-negative integer"))
				return
			}
			opts.Limit = limit
		}
		if raw := q.Get("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("featured", "must be true or false"))
				return
			}
			opts.FeaturedOnly = featured
		}

		projects, err := h.projects.ListPublished(r.Context(), opts)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := newProjectViews(projects)
		h.responder.WriteJSON(w, ProjectCollection{Projects: views, Total: len(views)})
	}
}

// getPublished retrieves a published project by slug
// @Summary Get published project
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/projects/{slug} [get]
func (h projectHandler) getPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := h.projects.GetPublished(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectDetailResponse{
			Project:        ProjectView{Project: detail.Project, DisplayMode: detail.DisplayMode},
			CreatedDisplay: detail.CreatedDisplay,
			Others:         newProjectViews(detail.Others),
		})
	}
}

// adminList retrieves projects of every status
// @Summary List all projects
// @Tags Admin
// @Produce json
// @Param q query string false "Case-insensitive search over title and slug"
// @Success 200 {object} ProjectCollection
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/projects [get]
func (h projectHandler) adminList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projects.AdminList(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := newProjectViews(projects)
		h.responder.WriteJSON(w, ProjectCollection{Projects: views, Total: len(views)})
	}
}

// createDraft reserves a placeholder project for the editor
// @Summary Create draft project
// @Tags Admin
// @Produce json
// @Success 201 {object} ProjectFormResponse
// @Router /api/admin/projects/draft [post]
func (h projectHandler) createDraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, err := h.projects.CreateDraft(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("projectId", draft.ID.String()).Msg("draft created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, ProjectFormResponse{
			ID:   draft.ID,
			Form: services.FormFromProject(*draft),
		})
	}
}

// createProject saves a project under a new id
// @Summary Create project
// @Tags Admin
// @Accept json
// @Produce json
// @Param project body services.ProjectForm true "Project form"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form services.ProjectForm
		if err := decodeJSON(r, "project", &form); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Save(r.Context(), uuid.New(), form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// getProjectForm loads a project of any status into its editable form
// @Summary Get project form
// @Tags Admin
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectFormResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/projects/{projectID} [get]
func (h projectHandler) getProjectForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		form, err := h.projects.Load(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectFormResponse{ID: projectID, Form: *form})
	}
}

// saveProject runs the transactional save for one project
// @Summary Save project
// @Description Upserts the project and replaces its categories and gallery in one transaction
// @Tags Admin
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param project body services.ProjectForm true "Project form"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/projects/{projectID} [put]
func (h projectHandler) saveProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var form services.ProjectForm
		if err := decodeJSON(r, "project", &form); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Save(r.Context(), projectID, form)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project with its category links and media
// @Summary Delete project
// @Tags Admin
// @Param projectID path string true "Project ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("projectId", projectID.String()).Msg("project deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}
