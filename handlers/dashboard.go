package handlers

import (
	"errors"
	"net/http"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetDashboard returns the owner's summary. Visits are not tracked yet and
// are reported as null.
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	dishCount, err := h.Store.CountDishes(ctx, ownerID)
	if err != nil {
		logger.FromContext(c).Error("count dishes", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	categoryCount, err := h.Store.CountCategories(ctx, ownerID)
	if err != nil {
		logger.FromContext(c).Error("count categories", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	topDish := MsgNoData
	first, err := h.Store.FirstDish(ctx, ownerID)
	switch {
	case err == nil:
		topDish = first.Name
	case !errors.Is(err, store.ErrNotFound):
		logger.FromContext(c).Error("first dish", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": middleware.CurrentProfile(c),
		"stats": gin.H{
			"visits":         nil,
			"dish_count":     dishCount,
			"category_count": categoryCount,
			"top_dish":       topDish,
		},
	})
}
