package auth

import (
	"context"

	"github.com/bgpaten/ahyarpattani/models"
)

// Identity is the authenticated caller behind a request.
type Identity struct {
	Subject string             `json:"subject"`
	Email   string             `json:"email"`
	Role    models.ProfileRole `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Verifier turns a bearer token into an Identity. Implementations return
// an auth error from errs for missing, expired or invalid tokens.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
