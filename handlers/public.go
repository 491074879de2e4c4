package handlers

import (
	"errors"
	"net/http"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/statemachine"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetMenu renders a restaurant's public menu by slug
func (h *Handler) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")

	profile, err := h.Store.ProfileBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, MsgRestaurantNotFound)
			return
		}
		logger.FromContext(c).Error("load profile by slug", zap.Error(err), zap.String("slug", slug))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	allergens, err := h.Store.ListAllergens(ctx)
	if err != nil {
		logger.FromContext(c).Error("list allergens", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	categories, err := h.Store.CategoriesWithDishes(ctx, profile.ID)
	if err != nil {
		logger.FromContext(c).Error("load menu", zap.Error(err), zap.String("slug", slug))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	h.Metrics.RecordMenuView(profile.Slug)
	c.JSON(http.StatusOK, gin.H{
		"profile":    profile,
		"allergens":  allergens,
		"categories": categories,
	})
}

// Home tells the landing page who is signed in and where their menu lives
func (h *Handler) Home(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil, "profile": nil})
		return
	}

	var profile gin.H
	p, err := h.Store.ProfileByID(c.Request.Context(), user.ID)
	switch {
	case err == nil:
		profile = gin.H{"slug": p.Slug}
	case !errors.Is(err, store.ErrNotFound):
		logger.FromContext(c).Error("load profile", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "profile": profile})
}

// GetStateMachineInfo documents the onboarding flow
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":      []statemachine.State{statemachine.Anonymous, statemachine.NoProfile, statemachine.ProfileReady},
		"transitions": statemachine.GetAllTransitions(),
	})
}

// Health reports whether the database answers
func (h *Handler) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "digital-menu-api",
	})
}
