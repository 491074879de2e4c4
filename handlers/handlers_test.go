package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"digital-menu-api/config"
	"digital-menu-api/handlers"
	"digital-menu-api/identity"
	"digital-menu-api/metrics"
	"digital-menu-api/middleware"
	"digital-menu-api/models"
	"digital-menu-api/routes"
	"digital-menu-api/storage/storagetest"
	"digital-menu-api/store"
	"digital-menu-api/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	store   *store.Store
	objects *storagetest.Memory
	local   *identity.Local
	metrics *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := storetest.New(t)
	storetest.SeedAllergens(t, s)

	authCfg := config.AuthConfig{CookieName: "access_token", TokenTTL: time.Hour}
	local := identity.NewLocal(s, "handler-test-secret", time.Hour)
	objects := storagetest.NewMemory()
	m := metrics.New("test")

	r := gin.New()
	err := routes.SetupRoutes(r, routes.Deps{
		Handler: &handlers.Handler{Store: s, Storage: objects, Metrics: m, Local: local, Auth: authCfg},
		Auth:    &middleware.Auth{Provider: local, CookieName: authCfg.CookieName, Metrics: m},
		Logger:  zap.NewNop(),
		Server:  config.ServerConfig{CORSOrigins: []string{"http://localhost:5173"}},
	})
	require.NoError(t, err)

	return &testEnv{router: r, store: s, objects: objects, local: local, metrics: m}
}

// account registers a user without a profile and returns its token
func (e *testEnv) account(t *testing.T, email string) (string, *identity.User) {
	t.Helper()
	u, err := e.local.Register(context.Background(), email, "password123")
	require.NoError(t, err)
	token, err := e.local.IssueToken(u)
	require.NoError(t, err)
	return token, u
}

// owner registers a user that already completed onboarding
func (e *testEnv) owner(t *testing.T, slug string) (string, *models.Profile) {
	t.Helper()
	token, u := e.account(t, slug+"@menu.test")
	p := &models.Profile{ID: u.ID, Slug: slug, RestaurantName: "Ristorante " + slug}
	require.NoError(t, e.store.CreateProfile(context.Background(), p))
	return token, p
}

func (e *testEnv) do(method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) record(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) form(method, path, token string, values url.Values) *httptest.ResponseRecorder {
	return e.do(method, path, token, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (e *testEnv) jsonReq(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(payload)
	return e.do(method, path, token, "application/json", bytes.NewReader(b))
}

func (e *testEnv) multipart(t *testing.T, method, path, token string, values url.Values, filename string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range values {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return e.do(method, path, token, mw.FormDataContentType(), &buf)
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}
