package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type DashboardStats struct {
	Projects       int64 `json:"projects"`
	Published      int64 `json:"published"`
	Drafts         int64 `json:"drafts"`
	Categories     int64 `json:"categories"`
	Media          int64 `json:"media"`
	Messages       int64 `json:"messages"`
	UnreadMessages int64 `json:"unread_messages"`
}

type DashboardService struct {
	db database.Database
}

func NewDashboardService(db database.Database) *DashboardService {
	return &DashboardService{db: db}
}

// Stats runs the count queries concurrently. Each goroutine writes its own
// field.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Projects, err = s.db.ProjectRepo().Count(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.Published, err = s.db.ProjectRepo().Count(gctx, models.ProjectStatusPublished)
		return err
	})
	g.Go(func() (err error) {
		stats.Drafts, err = s.db.ProjectRepo().Count(gctx, models.ProjectStatusDraft)
		return err
	})
	g.Go(func() (err error) {
		stats.Categories, err = s.db.CategoryRepo().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Media, err = s.db.MediaRepo().Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Messages, err = s.db.ContactMessageRepo().Count(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		stats.UnreadMessages, err = s.db.ContactMessageRepo().Count(gctx, true)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, errs.NewDatabaseError("count", "dashboard", err)
	}
	return &stats, nil
}
