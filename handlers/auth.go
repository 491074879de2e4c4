package handlers

import (
	"errors"
	"net/http"

	"digital-menu-api/identity"
	"digital-menu-api/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

// Register creates a local account and starts a session
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgCredentialsMissing)
		return
	}

	user, err := h.Local.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			fail(c, http.StatusConflict, MsgEmailTaken)
			return
		}
		logger.FromContext(c).Error("register account", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	h.startSession(c, http.StatusCreated, user)
}

// Login checks credentials and starts a session
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgCredentialsMissing)
		return
	}

	user, err := h.Local.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, MsgInvalidCredentials)
			return
		}
		logger.FromContext(c).Error("login", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	h.startSession(c, http.StatusOK, user)
}

// Logout clears the session cookie
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Auth.CookieName, "", -1, "/", "", h.Auth.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) startSession(c *gin.Context, status int, user *identity.User) {
	token, err := h.Local.IssueToken(user)
	if err != nil {
		logger.FromContext(c).Error("issue token", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Auth.CookieName, token, int(h.Auth.TokenTTL.Seconds()), "/", "", h.Auth.SecureCookie, true)
	c.JSON(status, gin.H{
		"token": token,
		"user":  user,
	})
}
