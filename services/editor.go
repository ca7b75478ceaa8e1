package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/bgpaten/ahyarpattani/models"
)

type EditorState string

const (
	EditorLoading EditorState = "loading"
	EditorEditing EditorState = "editing"
	EditorSaving  EditorState = "saving"
	EditorDone    EditorState = "done"
	EditorError   EditorState = "error"
)

var ErrEditorClosed = errors.New("editor is not accepting changes")

// Editor holds the in-memory form of one project between load and save.
// Mutations never touch the database; Save runs the transactional save.
// An Editor is not safe for concurrent use.
type Editor struct {
	projects    *ProjectService
	id          uuid.UUID
	isNew       bool
	state       EditorState
	form        ProjectForm
	slugTouched bool
	lastErr     error
}

// OpenEditor loads project id into an editor. With uuid.Nil a draft is
// reserved first and the editor starts from an empty form.
func (s *ProjectService) OpenEditor(ctx context.Context, id uuid.UUID) (*Editor, error) {
	e := &Editor{projects: s, state: EditorLoading}

	if id == uuid.Nil {
		draft, err := s.CreateDraft(ctx)
		if err != nil {
			return nil, err
		}
		e.id = draft.ID
		e.isNew = true
		e.form = ProjectForm{Status: models.ProjectStatusDraft}
		e.state = EditorEditing
		return e, nil
	}

	form, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	e.id = id
	e.form = *form
	e.slugTouched = form.Slug != models.Slugify(form.Title)
	e.state = EditorEditing
	return e, nil
}

func (e *Editor) ID() uuid.UUID {
	return e.id
}

func (e *Editor) IsNew() bool {
	return e.isNew
}

func (e *Editor) State() EditorState {
	return e.state
}

// Err returns the failure of the last Save, if it failed.
func (e *Editor) Err() error {
	return e.lastErr
}

// Form returns a copy of the current form.
func (e *Editor) Form() ProjectForm {
	return e.form.clone()
}

func (e *Editor) mutate(fn func(f *ProjectForm)) error {
	switch e.state {
	case EditorEditing:
	case EditorError:
		e.state = EditorEditing
		e.lastErr = nil
	default:
		return ErrEditorClosed
	}
	fn(&e.form)
	return nil
}

// SetTitle updates the title and, unless the slug was set by hand, the slug.
func (e *Editor) SetTitle(title string) error {
	return e.mutate(func(f *ProjectForm) {
		f.Title = title
		if !e.slugTouched {
			f.Slug = models.Slugify(title)
		}
	})
}

// SetSlug overrides the slug. An empty slug hands control back to the title.
func (e *Editor) SetSlug(slug string) error {
	return e.mutate(func(f *ProjectForm) {
		f.Slug = slug
		e.slugTouched = slug != ""
		if !e.slugTouched {
			f.Slug = models.Slugify(f.Title)
		}
	})
}

func (e *Editor) SetSummary(summary string) error {
	return e.mutate(func(f *ProjectForm) { f.Summary = summary })
}

func (e *Editor) SetDescription(description string) error {
	return e.mutate(func(f *ProjectForm) { f.Description = description })
}

// AddStack appends a technology, ignoring blanks and duplicates.
func (e *Editor) AddStack(tech string) error {
	tech = strings.TrimSpace(tech)
	return e.mutate(func(f *ProjectForm) {
		if tech == "" {
			return
		}
		for _, s := range f.Stack {
			if s == tech {
				return
			}
		}
		f.Stack = append(f.Stack, tech)
	})
}

func (e *Editor) RemoveStack(tech string) error {
	return e.mutate(func(f *ProjectForm) {
		out := f.Stack[:0]
		for _, s := range f.Stack {
			if s != tech {
				out = append(out, s)
			}
		}
		f.Stack = out
	})
}

// ToggleCategory selects id if unselected and unselects it otherwise.
func (e *Editor) ToggleCategory(id uuid.UUID) error {
	return e.mutate(func(f *ProjectForm) {
		for i, c := range f.CategoryIDs {
			if c == id {
				f.CategoryIDs = append(f.CategoryIDs[:i], f.CategoryIDs[i+1:]...)
				return
			}
		}
		f.CategoryIDs = append(f.CategoryIDs, id)
	})
}

func (e *Editor) AddMedia(item GalleryItem) error {
	return e.mutate(func(f *ProjectForm) { f.Gallery = append(f.Gallery, item) })
}

// RemoveMedia drops the gallery entry at index; out of range is a no-op.
func (e *Editor) RemoveMedia(index int) error {
	return e.mutate(func(f *ProjectForm) {
		if index < 0 || index >= len(f.Gallery) {
			return
		}
		f.Gallery = append(f.Gallery[:index], f.Gallery[index+1:]...)
	})
}

// MoveMedia moves the gallery entry at from to position to.
func (e *Editor) MoveMedia(from, to int) error {
	return e.mutate(func(f *ProjectForm) {
		n := len(f.Gallery)
		if from < 0 || from >= n || to < 0 || to >= n || from == to {
			return
		}
		item := f.Gallery[from]
		f.Gallery = append(f.Gallery[:from], f.Gallery[from+1:]...)
		f.Gallery = append(f.Gallery[:to], append([]GalleryItem{item}, f.Gallery[to:]...)...)
	})
}

func (e *Editor) SetThumbnail(url string) error {
	return e.mutate(func(f *ProjectForm) { f.ThumbnailURL = url })
}

func (e *Editor) SetStatus(status models.ProjectStatus) error {
	return e.mutate(func(f *ProjectForm) { f.Status = status })
}

func (e *Editor) SetFeatured(featured bool) error {
	return e.mutate(func(f *ProjectForm) { f.Featured = featured })
}

func (e *Editor) SetSortOrder(order int) error {
	return e.mutate(func(f *ProjectForm) { f.SortOrder = order })
}

func (e *Editor) SetLinks(liveURL, repoURL string) error {
	return e.mutate(func(f *ProjectForm) {
		f.LiveURL = liveURL
		f.RepoURL = repoURL
	})
}

// Save persists the form. On failure the editor moves to EditorError with
// the form untouched, and the next mutation or Save retries from there.
func (e *Editor) Save(ctx context.Context) (*models.Project, error) {
	if e.state != EditorEditing && e.state != EditorError {
		return nil, ErrEditorClosed
	}
	e.state = EditorSaving

	saved, err := e.projects.Save(ctx, e.id, e.form.clone())
	if err != nil {
		e.state = EditorError
		e.lastErr = err
		return nil, err
	}
	e.state = EditorDone
	e.lastErr = nil
	return saved, nil
}
