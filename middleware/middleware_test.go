package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"digital-menu-api/identity"
	"digital-menu-api/metrics"
	"digital-menu-api/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	users map[string]*identity.User
	calls int
}

func (f *fakeProvider) Authenticate(_ context.Context, token string) (*identity.User, error) {
	f.calls++
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, identity.ErrUnauthenticated
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth(users map[string]*identity.User) (*Auth, *fakeProvider) {
	p := &fakeProvider{users: users}
	return &Auth{Provider: p, CookieName: "access_token", Metrics: metrics.New("test")}, p
}

func TestRequireUser_MissingToken(t *testing.T) {
	a, _ := newAuth(nil)
	router := gin.New()
	router.Use(a.RequireUser())
	router.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Non autorizzato"}`, w.Body.String())

	assert.Equal(t, 2.0, testutil.ToFloat64(a.Metrics.AuthFailuresTotal))
}

func TestRequireUser_RevalidatesEveryRequest(t *testing.T) {
	user := &identity.User{ID: uuid.New(), Email: "chef@menu.it"}
	a, provider := newAuth(map[string]*identity.User{"good": user})

	router := gin.New()
	router.Use(a.RequireUser())
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": OwnerID(c).String()})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "good"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	}
	assert.Equal(t, 2, provider.calls)

	// the provider revoked the token; no cached session keeps it alive
	delete(provider.users, "good")
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestOptionalUser(t *testing.T) {
	user := &identity.User{ID: uuid.New()}
	a, _ := newAuth(map[string]*identity.User{"good": user})

	router := gin.New()
	router.Use(a.OptionalUser())
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": CurrentUser(c) == nil})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"anonymous":false}`, w.Body.String())
}

func TestOnboarding_Redirects(t *testing.T) {
	s := storetest.New(t)
	ready := storetest.Profile(t, s, "pronto")
	fresh := &identity.User{ID: uuid.New()}
	a, _ := newAuth(map[string]*identity.User{
		"fresh": fresh,
		"ready": {ID: ready.ID},
	})

	router := gin.New()
	guarded := router.Group("/", a.RequireUser(), Onboarding(s))
	ok := func(c *gin.Context) {
		slug := ""
		if p := CurrentProfile(c); p != nil {
			slug = p.Slug
		}
		c.String(http.StatusOK, slug)
	}
	guarded.GET("/onboarding", ok)
	guarded.GET("/dashboard", ok)

	cases := []struct {
		token, path string
		code        int
		location    string
	}{
		{"fresh", "/dashboard", http.StatusSeeOther, "/onboarding"},
		{"fresh", "/onboarding", http.StatusOK, ""},
		{"ready", "/onboarding", http.StatusSeeOther, "/dashboard"},
		{"ready", "/dashboard", http.StatusOK, ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.code, w.Code, "%s %s", tc.token, tc.path)
		assert.Equal(t, tc.location, w.Header().Get("Location"), "%s %s", tc.token, tc.path)
		if tc.token == "ready" && tc.code == http.StatusOK {
			assert.Equal(t, "pronto", w.Body.String())
		}
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", strings.TrimSpace(w.Body.String()))
}

func TestMetrics_RecordsRoutePattern(t *testing.T) {
	m := metrics.New("test")
	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/:slug", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/da-mario", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/:slug", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPStatusTotal.WithLabelValues("4xx")))
}
