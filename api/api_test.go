package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgpaten/ahyarpattani/auth"
	"github.com/bgpaten/ahyarpattani/database"
	"github.com/bgpaten/ahyarpattani/errs"
	"github.com/bgpaten/ahyarpattani/models"
	"github.com/bgpaten/ahyarpattani/storage"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	db      database.Database
	issuer  *auth.TokenIssuer
}

func newTestServer(t *testing.T, opts ...func(*router)) *testServer {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "api.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	d := database.New(db)
	require.NoError(t, d.Migrate(context.Background()))

	issuer, err := auth.NewTokenIssuer("test-signing-secret", "portfolio-test", time.Hour)
	require.NoError(t, err)

	store, err := storage.NewLocalStore(filepath.Join(t.TempDir(), "uploads"), "/uploads")
	require.NoError(t, err)

	deps := Dependencies{
		Database:   d,
		Uploader:   storage.NewUploader(store, 1<<20),
		Verifier:   issuer,
		Issuer:     issuer,
		LocalStore: store,
	}
	return &testServer{t: t, handler: newRouter(deps, opts...), db: d, issuer: issuer}
}

func (s *testServer) token(role models.ProfileRole) string {
	s.t.Helper()
	tok, _, err := s.issuer.Issue(models.Profile{ID: uuid.New(), Email: string(role) + "@example.com", Role: role})
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type projectListBody struct {
	Projects []struct {
		ID          uuid.UUID `json:"id"`
		Slug        string    `json:"slug"`
		DisplayMode string    `json:"display_mode"`
	} `json:"projects"`
	Total int `json:"total"`
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[HealthResponse](t, rec).Status)
}

func TestAdminGate(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/admin/dashboard", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, string(errs.KindAuthRequired), body.Kind)
	assert.Equal(t, "/admin/login", body.Redirect)

	rec = s.do(http.MethodGet, "/api/admin/dashboard", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/admin/login", decodeBody[ErrorResponse](t, rec).Redirect)

	viewer := s.token(models.RoleViewer)
	rec = s.do(http.MethodGet, "/api/admin/dashboard", viewer, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	body = decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, string(errs.KindForbidden), body.Kind)
	assert.Equal(t, "/", body.Redirect)

	rec = s.do(http.MethodGet, "/api/admin/me", viewer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleViewer, decodeBody[auth.Identity](t, rec).Role)

	rec = s.do(http.MethodGet, "/api/admin/dashboard", s.token(models.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjectEndToEnd(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/admin/categories", admin, map[string]any{"name": "Web", "type": "web"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	category := decodeBody[models.Category](t, rec)
	assert.Equal(t, "web", category.Slug)

	rec = s.do(http.MethodPost, "/api/admin/projects/draft", admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	draft := decodeBody[ProjectFormResponse](t, rec)
	require.NotEqual(t, uuid.Nil, draft.ID)

	// Drafts stay off the public site.
	rec = s.do(http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeBody[projectListBody](t, rec).Total)

	path := "/api/admin/projects/" + draft.ID.String()
	rec = s.do(http.MethodPut, path, admin, map[string]any{
		"title":        "Demo",
		"status":       "published",
		"stack":        []string{"Go"},
		"category_ids": []string{category.ID.String()},
		"gallery":      []map[string]string{{"url": "/uploads/b.png"}, {"url": "/uploads/a.png"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/projects?filter=web", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[projectListBody](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "demo", list.Projects[0].Slug)
	assert.Equal(t, string(models.DisplayModeWeb), list.Projects[0].DisplayMode)

	rec = s.do(http.MethodGet, "/api/projects?filter=mobile", "", nil)
	assert.Zero(t, decodeBody[projectListBody](t, rec).Total)

	rec = s.do(http.MethodGet, "/api/projects/demo", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody[ProjectDetailResponse](t, rec)
	assert.Equal(t, draft.ID, detail.Project.ID)
	assert.NotEmpty(t, detail.CreatedDisplay)
	require.Len(t, detail.Project.Media, 2)
	assert.Equal(t, "/uploads/b.png", detail.Project.Media[0].URL)

	rec = s.do(http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	form := decodeBody[ProjectFormResponse](t, rec)
	assert.Equal(t, []uuid.UUID{category.ID}, form.Form.CategoryIDs)

	rec = s.do(http.MethodGet, "/api/admin/projects?q=DEM", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[projectListBody](t, rec).Total)

	rec = s.do(http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/projects/demo", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(errs.KindNotFound), decodeBody[ErrorResponse](t, rec).Kind)
}

func TestProjectValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)
	path := "/api/admin/projects/" + uuid.NewString()

	rec := s.do(http.MethodPut, path, admin, map[string]any{"title": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, string(errs.KindValidationFailed), body.Kind)
	assert.Equal(t, "title", body.Field)

	rec = s.do(http.MethodPut, path, admin, map[string]any{"title": "X", "live_url": "not a url"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "live_url", decodeBody[ErrorResponse](t, rec).Field)

	rec = s.do(http.MethodPut, path, admin, `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/admin/projects/nope", admin, map[string]any{"title": "X"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "projectID", decodeBody[ErrorResponse](t, rec).Field)

	rec = s.do(http.MethodGet, "/api/projects?limit=-1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactAndMessages(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Ada", "email": "ada@example.com", "message": "Hello there",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[ContactResponse](t, rec)
	assert.Equal(t, models.ContactStatusSuccess, created.Status)

	rec = s.do(http.MethodPost, "/api/contact", "", map[string]any{
		"name": "Ada", "email": "not-an-email", "message": "Hello",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decodeBody[ErrorResponse](t, rec).Field)

	rec = s.do(http.MethodGet, "/api/admin/messages", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs := decodeBody[[]models.ContactMessage](t, rec)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Read)

	rec = s.do(http.MethodPatch, "/api/admin/messages/"+created.ID.String(), admin, map[string]any{"read": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decodeBody[models.ContactMessage](t, rec).Read)

	rec = s.do(http.MethodPatch, "/api/admin/messages/"+created.ID.String(), admin, map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "read", decodeBody[ErrorResponse](t, rec).Field)
}

func TestContactRateLimit(t *testing.T) {
	s := newTestServer(t, withContactRate(1, 2))
	msg := map[string]any{"name": "Ada", "email": "ada@example.com", "message": "Hi"}

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/api/contact", "", msg)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.do(http.MethodPost, "/api/contact", "", msg)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, string(errs.KindRateLimited), decodeBody[ErrorResponse](t, rec).Kind)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func multipartUpload(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)
	content := []byte("\x89PNG fake image bytes")

	rec := s.send(multipartUpload(t, "shot.png", content, map[string]string{
		"project_id": "global",
		"folder":     "thumbnail",
	}), admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decodeBody[storage.UploadResult](t, rec)
	assert.Equal(t, models.MediaTypeImage, result.Type)
	assert.True(t, strings.HasPrefix(result.URL, "/uploads/projects/global/thumbnail/"), result.URL)

	rec = s.do(http.MethodGet, result.URL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())

	rec = s.send(multipartUpload(t, "notes.txt", content, nil), admin)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = s.send(multipartUpload(t, "big.mp4", bytes.Repeat([]byte{1}, 3<<19), nil), admin)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = s.send(multipartUpload(t, "shot.png", content, map[string]string{"project_id": "bogus"}), admin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "project_id", decodeBody[ErrorResponse](t, rec).Field)

	rec = s.send(multipartUpload(t, "shot.png", content, nil), s.token(models.RoleViewer))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSettings(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)

	rec := s.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[models.Settings](t, rec).FullName)

	rec = s.do(http.MethodPut, "/api/admin/settings", admin, map[string]any{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
		"socials":   map[string]string{"github": "https://github.com/ada"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[models.Settings](t, rec)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "https://github.com/ada", got.Socials["github"])

	rec = s.do(http.MethodPut, "/api/admin/settings", admin, map[string]any{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email", decodeBody[ErrorResponse](t, rec).Field)
}

func TestCategoryRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/admin/categories", admin, map[string]any{"name": "Mobile Apps", "type": "mobile"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decodeBody[models.Category](t, rec)
	assert.Equal(t, "mobile-apps", category.Slug)

	rec = s.do(http.MethodPost, "/api/admin/categories", admin, map[string]any{"name": "Desktop", "type": "desktop"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type", decodeBody[ErrorResponse](t, rec).Field)

	rec = s.do(http.MethodPut, "/api/admin/categories/"+category.ID.String(), admin, map[string]any{"name": "Mobile", "slug": "mobile", "type": "mobile"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mobile", decodeBody[models.Category](t, rec).Slug)

	rec = s.do(http.MethodGet, "/api/admin/categories", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Category](t, rec), 1)

	rec = s.do(http.MethodDelete, "/api/admin/categories/"+category.ID.String(), admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/admin/categories/"+category.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	hash, err := auth.HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NoError(t, s.db.ProfileRepo().Add(context.Background(), &models.Profile{
		Email:        "owner@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}))

	rec := s.do(http.MethodPost, "/api/admin/login", "", map[string]any{"email": "owner@example.com", "password": "wrong password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/login", "", map[string]any{"email": "nobody@example.com", "password": "whatever1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/admin/login", "", map[string]any{"email": "Owner@Example.com", "password": "correct horse battery"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decodeBody[LoginResponse](t, rec)
	require.NotEmpty(t, login.Token)

	rec = s.do(http.MethodGet, "/api/admin/dashboard", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, withAcceptedOrigins([]string{"http://localhost:5173"}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		return s.send(req, "")
	}

	rec := preflight("http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("https://evil.example.com")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, string(errs.KindForbidden), decodeBody[ErrorResponse](t, rec).Kind)
}

func TestUnexpectedErrorsAreOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec, fmt.Errorf("disk exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, string(errs.KindInternal), body.Kind)
	assert.NotContains(t, rec.Body.String(), "disk exploded")
}
