package handlers

import (
	"net/http"
	"strings"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type categoryRequest struct {
	Name      string `form:"name" json:"name"`
	SortOrder *int   `form:"sort_order" json:"sort_order"`
}

func (r *categoryRequest) bind(c *gin.Context) bool {
	if err := c.ShouldBind(r); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return false
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		fail(c, http.StatusBadRequest, MsgCategoryNameMissing)
		return false
	}
	return true
}

// GetMenuManagement loads everything the menu editor shows
func (h *Handler) GetMenuManagement(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	categories, err := h.Store.ListCategories(ctx, ownerID)
	if err != nil {
		logger.FromContext(c).Error("list categories", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	dishes, err := h.Store.ListDishes(ctx, ownerID)
	if err != nil {
		logger.FromContext(c).Error("list dishes", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	allergens, err := h.Store.ListAllergens(ctx)
	if err != nil {
		logger.FromContext(c).Error("list allergens", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"dishes":     dishes,
		"allergens":  allergens,
	})
}

// AddCategory appends a category to the owner's menu
func (h *Handler) AddCategory(c *gin.Context) {
	var req categoryRequest
	if !req.bind(c) {
		return
	}

	category := models.Category{
		RestaurantID: middleware.OwnerID(c),
		Name:         req.Name,
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if err := h.Store.CreateCategory(c.Request.Context(), &category); err != nil {
		logger.FromContext(c).Error("create category", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgSaveFailed)
		return
	}
	h.Metrics.RecordMenuWrite("category", "create")
	c.JSON(http.StatusCreated, gin.H{"success": true, "category": category})
}

// EditCategory renames one of the owner's categories
func (h *Handler) EditCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, MsgCategoryNotFound)
		return
	}
	var req categoryRequest
	if !req.bind(c) {
		return
	}

	if err := h.Store.RenameCategory(c.Request.Context(), middleware.OwnerID(c), id, req.Name, req.SortOrder); err != nil {
		logger.FromContext(c).Warn("update category", zap.Error(err), zap.Int64("category_id", id))
		status, msg := storeStatus(err, MsgCategoryNotFound, MsgUpdateFailed)
		fail(c, status, msg)
		return
	}
	h.Metrics.RecordMenuWrite("category", "update")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteCategory removes one of the owner's categories with its dishes
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, MsgCategoryNotFound)
		return
	}

	if err := h.Store.DeleteCategory(c.Request.Context(), middleware.OwnerID(c), id); err != nil {
		logger.FromContext(c).Warn("delete category", zap.Error(err), zap.Int64("category_id", id))
		status, msg := storeStatus(err, MsgCategoryNotFound, MsgDeleteFailed)
		fail(c, status, msg)
		return
	}
	h.Metrics.RecordMenuWrite("category", "delete")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
