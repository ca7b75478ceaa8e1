package api

import (
	"time"

	"github.com/bgpaten/ahyarpattani/auth"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/services"
	"github.com/bgpaten/ahyarpattani/storage"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Database database.Database
	Uploader *storage.Uploader
	Verifier auth.Verifier
	// Issuer enables password login. It is nil when an external identity
	// provider issues the tokens.
	Issuer   *auth.TokenIssuer
	Notifier services.Notifier
	// LocalStore, when set, is served read-only under its URL prefix.
	LocalStore *storage.LocalStore
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startupTime time.Time) *routeHandlers {
	projects := services.NewProjectService(deps.Database)
	contact := services.NewContactService(deps.Database, deps.Notifier)

	return &routeHandlers{
		projectHandler:   newProjectHandler(projects),
		categoryHandler:  newCategoryHandler(services.NewCategoryService(deps.Database)),
		settingsHandler:  newSettingsHandler(services.NewSettingsService(deps.Database)),
		contactHandler:   newContactHandler(contact),
		uploadHandler:    newUploadHandler(deps.Uploader),
		dashboardHandler: newDashboardHandler(services.NewDashboardService(deps.Database)),
		authHandler:      newAuthHandler(deps.Database.ProfileRepo(), deps.Issuer),
		healthHandler:    newHealthHandler(deps.Database, startupTime),
	}
}
