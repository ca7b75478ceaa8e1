package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/auth"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	issuer      *auth.TokenIssuer
}

func newAuthHandler(profileRepo *database.ProfileRepo, issuer *auth.TokenIssuer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		issuer:      issuer,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries a bearer token for the admin API
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Profile   models.Profile `json:"profile"`
}

// login exchanges email and password for a token
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.issuer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("password login is not enabled"))
			return
		}

		var req loginRequest
		if err := decodeJSON(r, "login", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("find", "profile", err))
			return
		}
		if err := auth.CheckPassword(req.Password, profile.PasswordHash); err != nil {
			h.logger.Warn().Str("email", profile.Email).Msg("failed login")
			h.responder.WriteError(w, errs.NewInvalidCredentialsError())
			return
		}

		token, expiresAt, err := h.issuer.Issue(*profile)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issue token", err))
			return
		}

		h.responder.WriteJSON(w, LoginResponse{Token: token, ExpiresAt: expiresAt, Profile: *profile})
	}
}

// me returns the caller's identity
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.Identity
// @Failure 401 {object} ErrorResponse
// @Router /api/admin/me [get]
func (h authHandler) me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := ctxGetIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		h.responder.WriteJSON(w, identity)
	}
}
