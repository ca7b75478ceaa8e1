package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

const (
	DraftTitle = "Untitled project"

	// relatedLimit caps the "other projects" list on a detail page.
	relatedLimit = 3
)

// GalleryItem is one entry of the ordered gallery in a ProjectForm.
type GalleryItem struct {
	URL         string             `json:"url" validate:"required,max=2048"`
	Type        models.MediaType   `json:"type" validate:"omitempty,oneof=image video"`
	Orientation models.Orientation `json:"orientation" validate:"omitempty,oneof=portrait landscape square"`
	Caption     string             `json:"caption" validate:"max=500"`
}

// ProjectForm is the editable state of a project: its fields, the selected
// category ids and the gallery in display order.
type ProjectForm struct {
	Title        string               `json:"title" validate:"required,max=200"`
	Slug         string               `json:"slug" validate:"max=200"`
	Summary      string               `json:"summary" validate:"max=1000"`
	Description  string               `json:"description"`
	Stack        []string             `json:"stack" validate:"dive,max=60"`
	Featured     bool                 `json:"featured"`
	Status       models.ProjectStatus `json:"status" validate:"omitempty,oneof=draft published"`
	ThumbnailURL string               `json:"thumbnail_url" validate:"max=2048"`
	LiveURL      string               `json:"live_url" validate:"omitempty,url,max=2048"`
	RepoURL      string               `json:"repo_url" validate:"omitempty,url,max=2048"`
	SortOrder    int                  `json:"sort_order"`
	CategoryIDs  []uuid.UUID          `json:"category_ids"`
	Gallery      []GalleryItem        `json:"gallery" validate:"dive"`
}

// FormFromProject builds the editable form of a loaded project.
func FormFromProject(p models.Project) ProjectForm {
	gallery := make([]GalleryItem, 0, len(p.Media))
	for _, m := range p.Media {
		gallery = append(gallery, GalleryItem{
			URL:         m.URL,
			Type:        m.Type,
			Orientation: m.Orientation,
			Caption:     m.Caption,
		})
	}
	stack := append([]string{}, p.Stack...)
	return ProjectForm{
		Title:        p.Title,
		Slug:         p.Slug,
		Summary:      p.Summary,
		Description:  p.Description,
		Stack:        stack,
		Featured:     p.Featured,
		Status:       p.Status,
		ThumbnailURL: p.ThumbnailURL,
		LiveURL:      p.LiveURL,
		RepoURL:      p.RepoURL,
		SortOrder:    p.SortOrder,
		CategoryIDs:  p.CategoryIDs(),
		Gallery:      gallery,
	}
}

func (f ProjectForm) clone() ProjectForm {
	cp := f
	cp.Stack = append([]string(nil), f.Stack...)
	cp.CategoryIDs = append([]uuid.UUID(nil), f.CategoryIDs...)
	cp.Gallery = append([]GalleryItem(nil), f.Gallery...)
	return cp
}

func (f ProjectForm) project(id uuid.UUID) *models.Project {
	slug := strings.TrimSpace(f.Slug)
	if slug == "" {
		slug = models.Slugify(f.Title)
	}
	status := f.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}
	stack := datatypes.JSONSlice[string]{}
	for _, s := range f.Stack {
		if s = strings.TrimSpace(s); s != "" {
			stack = append(stack, s)
		}
	}
	return &models.Project{
		ID:           id,
		Title:        strings.TrimSpace(f.Title),
		Slug:         slug,
		Summary:      f.Summary,
		Description:  f.Description,
		Stack:        stack,
		Featured:     f.Featured,
		Status:       status,
		ThumbnailURL: f.ThumbnailURL,
		LiveURL:      f.LiveURL,
		RepoURL:      f.RepoURL,
		SortOrder:    f.SortOrder,
	}
}

// joinRows returns one join row per distinct category id, in order.
func (f ProjectForm) joinRows(projectID uuid.UUID) []models.ProjectCategory {
	seen := make(map[uuid.UUID]bool, len(f.CategoryIDs))
	rows := make([]models.ProjectCategory, 0, len(f.CategoryIDs))
	for _, id := range f.CategoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.ProjectCategory{ProjectID: projectID, CategoryID: id})
	}
	return rows
}

// mediaRows numbers the gallery by position and fills in defaults.
func (f ProjectForm) mediaRows(projectID uuid.UUID) []models.Media {
	media := make([]models.Media, 0, len(f.Gallery))
	for i, item := range f.Gallery {
		m := models.Media{
			ProjectID:   projectID,
			URL:         item.URL,
			Type:        item.Type,
			Orientation: item.Orientation,
			Caption:     item.Caption,
			SortOrder:   i,
		}
		if m.Type == "" {
			m.Type = models.MediaTypeImage
		}
		if m.Orientation == "" {
			m.Orientation = models.OrientationLandscape
		}
		media = append(media, m)
	}
	return media
}

func (f ProjectForm) validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if f.Status != "" && !f.Status.Valid() {
		return errs.NewInvalidFieldError("status", "must be draft or published")
	}
	for _, item := range f.Gallery {
		if strings.TrimSpace(item.URL) == "" {
			return errs.NewMissingRequiredFieldError("gallery.url")
		}
		if item.Type != "" && !item.Type.Valid() {
			return errs.NewInvalidFieldError("gallery.type", "must be image or video")
		}
		if item.Orientation != "" && !item.Orientation.Valid() {
			return errs.NewInvalidFieldError("gallery.orientation", "must be portrait, landscape or square")
		}
	}
	return nil
}

type ListOptions struct {
	// Filter matches a category type or slug; "" and "all" match everything.
	Filter       string
	Limit        int
	FeaturedOnly bool
}

// ProjectDetail is a published project with the presentation data its page
// needs.
type ProjectDetail struct {
	Project        models.Project
	DisplayMode    models.DisplayMode
	CreatedDisplay string
	Others         []models.Project
}

type ProjectService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewProjectService(db database.Database) *ProjectService {
	return &ProjectService{
		db:     db,
		logger: log.With().Str("service", "projects").Logger(),
	}
}

// ListPublished returns published projects in display order. The limit is
// applied after filtering.
func (s *ProjectService) ListPublished(ctx context.Context, opts ListOptions) ([]models.Project, error) {
	projects, err := s.db.ProjectRepo().FindPublished(ctx, opts.FeaturedOnly)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	projects = models.FilterByCategory(projects, opts.Filter)
	if opts.Limit > 0 && len(projects) > opts.Limit {
		projects = projects[:opts.Limit]
	}
	return projects, nil
}

func (s *ProjectService) GetPublished(ctx context.Context, slug string) (*ProjectDetail, error) {
	project, err := s.db.ProjectRepo().FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	others, err := s.db.ProjectRepo().FindOthers(ctx, project.ID, relatedLimit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return &ProjectDetail{
		Project:        *project,
		DisplayMode:    project.DisplayMode(),
		CreatedDisplay: models.FormatTime(project.CreatedAt),
		Others:         others,
	}, nil
}

// AdminList returns projects of every status, newest first.
func (s *ProjectService) AdminList(ctx context.Context, search string) ([]models.Project, error) {
	projects, err := s.db.ProjectRepo().FindAll(ctx, search)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return projects, nil
}

// CreateDraft reserves an id by persisting a placeholder draft, so uploads
// can target the project before its first save.
func (s *ProjectService) CreateDraft(ctx context.Context) (*models.Project, error) {
	id := uuid.New()
	project := &models.Project{
		ID:     id,
		Title:  DraftTitle,
		Slug:   "untitled-" + id.String()[:8],
		Status: models.ProjectStatusDraft,
		Stack:  datatypes.JSONSlice[string]{},
	}
	if err := s.db.ProjectRepo().Add(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}
	s.logger.Info().Str("projectId", id.String()).Msg("draft reserved")
	return project, nil
}

// Load returns the editable form of project id.
func (s *ProjectService) Load(ctx context.Context, id uuid.UUID) (*ProjectForm, error) {
	project, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	form := FormFromProject(*project)
	return &form, nil
}

// Save persists form under id in one transaction: upsert the project row,
// replace its category links, then replace its gallery. Any failure leaves
// the previous state untouched.
func (s *ProjectService) Save(ctx context.Context, id uuid.UUID, form ProjectForm) (*models.Project, error) {
	if id == uuid.Nil {
		return nil, errs.NewMissingRequiredFieldError("id")
	}
	if err := form.validate(); err != nil {
		return nil, err
	}

	project := form.project(id)
	joins := form.joinRows(id)
	media := form.mediaRows(id)

	err := s.db.Transaction(ctx, func(tx database.Database) error {
		existing, err := tx.ProjectRepo().FindRowByID(ctx, id)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if existing != nil {
			project.CreatedAt = existing.CreatedAt
			err = tx.ProjectRepo().Update(ctx, project)
		} else {
			err = tx.ProjectRepo().Add(ctx, project)
		}
		if err != nil {
			return errs.NewDatabaseError("save", "project", err)
		}

		if err := tx.ProjectCategoryRepo().DeleteByProject(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "project categories", err)
		}
		if len(joins) > 0 {
			ids := make([]uuid.UUID, 0, len(joins))
			for _, j := range joins {
				ids = append(ids, j.CategoryID)
			}
			found, err := tx.CategoryRepo().FindByIDs(ctx, ids)
			if err != nil {
				return errs.NewDatabaseError("find", "categories", err)
			}
			if len(found) != len(ids) {
				return errs.NewInvalidFieldError("category_ids", "references a category that does not exist")
			}
		}
		if err := tx.ProjectCategoryRepo().BulkAdd(ctx, joins); err != nil {
			return errs.NewDatabaseError("create", "project categories", err)
		}

		if err := tx.MediaRepo().DeleteByProject(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "media", err)
		}
		if err := tx.MediaRepo().BulkAdd(ctx, media); err != nil {
			return errs.NewDatabaseError("create", "media", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("projectId", id.String()).Msg("project save failed")
		return nil, errs.NewTransactionFailedError("project save", err)
	}

	saved, err := s.db.ProjectRepo().FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return saved, nil
}

// Delete removes a project with its category links and gallery.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transaction(ctx, func(tx database.Database) error {
		if err := tx.ProjectCategoryRepo().DeleteByProject(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "project categories", err)
		}
		if err := tx.MediaRepo().DeleteByProject(ctx, id); err != nil {
			return errs.NewDatabaseError("delete", "media", err)
		}
		return tx.ProjectRepo().Delete(ctx, id)
	})
	if err != nil {
		return errs.NewTransactionFailedError("project delete", err)
	}
	return nil
}
