package auth

import (
	"context"

	"github.com/descope/go-sdk/descope/client"

	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

// DescopeVerifier validates Descope session tokens. Callers holding the
// "admin" role in Descope get the admin role here.
type DescopeVerifier struct {
	client *client.DescopeClient
}

func NewDescopeVerifier(projectID string) (*DescopeVerifier, error) {
	if projectID == "" {
		return nil, errs.NewEnvironmentVariableError("DESCOPE_PROJECT_ID")
	}
	c, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, errs.NewConfigError("descope", err)
	}
	return &DescopeVerifier{client: c}, nil
}

func (v *DescopeVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}

	ok, session, err := v.client.Auth.ValidateSessionWithToken(ctx, token)
	if err != nil || !ok || session == nil {
		return nil, errs.NewInvalidTokenError()
	}

	role := models.RoleViewer
	if v.client.Auth.ValidateRoles(ctx, session, []string{string(models.RoleAdmin)}) {
		role = models.RoleAdmin
	}
	email, _ := session.Claims["email"].(string)

	return &Identity{
		Subject: session.ID,
		Email:   email,
		Role:    role,
	}, nil
}
