package middleware

import (
	"errors"
	"net/http"

	"digital-menu-api/identity"
	"digital-menu-api/logger"
	"digital-menu-api/metrics"
	"digital-menu-api/models"
	"digital-menu-api/statemachine"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	userKey    = "user"
	profileKey = "profile"
)

// MsgUnauthorized is the only detail an unauthenticated caller gets
const MsgUnauthorized = "Non autorizzato"

// Auth resolves the caller through the identity provider on every request
type Auth struct {
	Provider   identity.Provider
	CookieName string
	Metrics    *metrics.Metrics
}

func (a *Auth) authenticate(c *gin.Context) (*identity.User, error) {
	token := identity.TokenFromRequest(c.Request, a.CookieName)
	if token == "" {
		return nil, identity.ErrUnauthenticated
	}
	return a.Provider.Authenticate(c.Request.Context(), token)
}

// RequireUser rejects requests without a valid identity: page loads are sent
// to the login page, everything else gets 401
func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.authenticate(c)
		if err != nil {
			if !errors.Is(err, identity.ErrUnauthenticated) {
				logger.FromContext(c).Warn("identity provider failed", zap.Error(err))
			}
			if a.Metrics != nil {
				a.Metrics.AuthFailuresTotal.Inc()
			}
			if c.Request.Method == http.MethodGet {
				c.Redirect(http.StatusSeeOther, statemachine.LoginPath)
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": MsgUnauthorized})
			}
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalUser sets the identity when one is presented and valid
func (a *Auth) OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := a.authenticate(c); err == nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// Onboarding applies the onboarding redirects. It must run after RequireUser.
func Onboarding(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		var profile *models.Profile
		if user != nil {
			p, err := s.ProfileByID(c.Request.Context(), user.ID)
			switch {
			case err == nil:
				profile = p
			case !errors.Is(err, store.ErrNotFound):
				logger.FromContext(c).Error("load profile", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Errore interno"})
				c.Abort()
				return
			}
		}

		state := statemachine.Resolve(user != nil, profile != nil)
		if to, moved := statemachine.Redirect(state, c.Request.URL.Path); moved {
			c.Redirect(http.StatusSeeOther, to)
			c.Abort()
			return
		}
		if profile != nil {
			c.Set(profileKey, profile)
		}
		c.Next()
	}
}

// CurrentUser returns the validated identity, or nil
func CurrentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*identity.User); ok {
			return u
		}
	}
	return nil
}

// OwnerID is the profile ID of the authenticated owner
func OwnerID(c *gin.Context) uuid.UUID {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}

// CurrentProfile returns the profile loaded by Onboarding, or nil
func CurrentProfile(c *gin.Context) *models.Profile {
	if v, ok := c.Get(profileKey); ok {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}
