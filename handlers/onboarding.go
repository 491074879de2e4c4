package handlers

import (
	"errors"
	"net/http"
	"strings"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/models"
	"digital-menu-api/statemachine"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type onboardingRequest struct {
	RestaurantName string `form:"restaurant_name" json:"restaurant_name" binding:"required"`
	Slug           string `form:"slug" json:"slug" binding:"required,slug"`
}

// GetOnboarding is reachable only while the owner has no profile
func (h *Handler) GetOnboarding(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user":    middleware.CurrentUser(c),
		"profile": nil,
	})
}

// CreateProfile turns the authenticated user into a restaurant owner
func (h *Handler) CreateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	from := statemachine.Resolve(true, middleware.CurrentProfile(c) != nil)
	if err := statemachine.CanTransition(from, statemachine.ProfileReady, statemachine.EventCreateProfile); err != nil {
		logger.FromContext(c).Warn("onboarding refused", zap.Error(err))
		c.Redirect(http.StatusSeeOther, statemachine.DashboardPath)
		return
	}

	var req onboardingRequest
	if err := c.ShouldBind(&req); err != nil {
		if failedTag(err, "slug") && !failedTag(err, "required") {
			fail(c, http.StatusBadRequest, MsgInvalidSlug)
			return
		}
		fail(c, http.StatusBadRequest, MsgOnboardingMissing)
		return
	}
	req.RestaurantName = strings.TrimSpace(req.RestaurantName)
	if req.RestaurantName == "" {
		fail(c, http.StatusBadRequest, MsgOnboardingMissing)
		return
	}

	profile := &models.Profile{
		ID:             user.ID,
		Slug:           req.Slug,
		RestaurantName: req.RestaurantName,
		ThemeColor:     models.DefaultThemeColor,
	}
	if err := h.Store.CreateProfile(c.Request.Context(), profile); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateSlug):
			fail(c, http.StatusBadRequest, MsgSlugTaken)
			return
		case errors.Is(err, store.ErrProfileExists):
			c.Redirect(http.StatusSeeOther, statemachine.DashboardPath)
			return
		}
		logger.FromContext(c).Error("create profile", zap.Error(err), zap.String("slug", req.Slug))
		fail(c, http.StatusInternalServerError, MsgProfileCreate)
		return
	}

	logger.FromContext(c).Info("restaurant onboarded",
		zap.String("owner_id", user.ID.String()),
		zap.String("slug", profile.Slug),
	)
	c.Redirect(http.StatusSeeOther, statemachine.DashboardPath)
}
