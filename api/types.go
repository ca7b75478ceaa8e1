package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler   projectHandler
	categoryHandler  categoryHandler
	settingsHandler  settingsHandler
	contactHandler   contactHandler
	uploadHandler    uploadHandler
	dashboardHandler dashboardHandler
	authHandler      authHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error    string `json:"error" example:"not found: project"`
	Kind     string `json:"kind" example:"not_found"`
	Status   int    `json:"status" example:"404"`
	Field    string `json:"field,omitempty" example:"title"`
	Details  string `json:"details,omitempty" example:"Additional error details"`
	Cause    string `json:"cause,omitempty" example:"Underlying error cause"`
	Redirect string `json:"redirect,omitempty" example:"/admin/login"`
}
