package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bgpaten/ahyarpattani/storage"
)

// setupPublicRoutes sets up the routes the public site reads from
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, contactLimiter *ipRateLimiter) {
	r.Get("/healthz", handlers.healthHandler.check())

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", handlers.projectHandler.listPublished())
		r.Get("/projects/{slug}", handlers.projectHandler.getPublished())
		r.Get("/settings", handlers.settingsHandler.getSettings())
		r.With(contactLimiter.middleware).Post("/contact", handlers.contactHandler.submit())
	})
}

// setupAdminRoutes sets up the admin routes. Everything but login requires a
// token, and everything but login and me requires the admin role.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", handlers.authHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Get("/me", handlers.authHandler.me())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.requireAdmin)

				r.Get("/dashboard", handlers.dashboardHandler.getStats())

				// Project Handler endpoints
				r.Get("/projects", handlers.projectHandler.adminList())
				r.Post("/projects", handlers.projectHandler.createProject())
				r.Post("/projects/draft", handlers.projectHandler.createDraft())
				r.Get("/projects/{projectID}", handlers.projectHandler.getProjectForm())
				r.Put("/projects/{projectID}", handlers.projectHandler.saveProject())
				r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

				// Category Handler endpoints
				r.Get("/categories", handlers.categoryHandler.listCategories())
				r.Post("/categories", handlers.categoryHandler.createCategory())
				r.Put("/categories/{categoryID}", handlers.categoryHandler.updateCategory())
				r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

				r.Get("/settings", handlers.settingsHandler.getSettings())
				r.Put("/settings", handlers.settingsHandler.saveSettings())

				r.Post("/uploads", handlers.uploadHandler.upload())

				r.Get("/messages", handlers.contactHandler.listMessages())
				r.Patch("/messages/{messageID}", handlers.contactHandler.markRead())
			})
		})
	})
}

// setupUploadFileServer serves files written by a local object store. A
// prefix that is a full URL points elsewhere and is not served here.
func setupUploadFileServer(r chi.Router, store *storage.LocalStore) {
	prefix := strings.TrimSuffix(store.URLPrefix(), "/")
	if !strings.HasPrefix(prefix, "/") {
		return
	}
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(store.Root())))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
