package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/models"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type dishRequest struct {
	Name        string    `form:"name" json:"name" binding:"required"`
	Description string    `form:"description" json:"description"`
	Price       formValue `form:"price" json:"price" binding:"required"`
	CategoryID  formValue `form:"category_id" json:"category_id" binding:"required"`
	// comma separated allergen ids
	Allergens   string   `form:"allergens" json:"allergens"`
	IsAvailable checkbox `form:"is_available" json:"is_available"`
}

// formValue is a form field that JSON clients may also send as a number
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = formValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = formValue(n.String())
	return nil
}

// checkbox accepts HTML checkbox values ("on") as well as JSON booleans
type checkbox string

func (v *checkbox) UnmarshalJSON(b []byte) error {
	var on bool
	if string(b) != "null" && json.Unmarshal(b, &on) == nil {
		*v = checkbox(strconv.FormatBool(on))
		return nil
	}
	return (*formValue)(v).UnmarshalJSON(b)
}

var errInvalidCheckbox = errors.New("invalid checkbox value")

// bool returns nil when the field was not sent
func (v checkbox) bool() (*bool, error) {
	var on bool
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "":
		return nil, nil
	case "on", "true", "1", "yes":
		on = true
	case "off", "false", "0", "no":
		on = false
	default:
		return nil, errInvalidCheckbox
	}
	return &on, nil
}

// dishInput is a dishRequest that passed validation
type dishInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
	Allergens   []string
	IsAvailable *bool
}

// SplitAllergens turns "glutine, latte," into ["glutine", "latte"]
func SplitAllergens(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// bindDish validates the request against the owner's menu and writes the
// error response when it fails
func (h *Handler) bindDish(c *gin.Context, ownerID uuid.UUID) (*dishInput, bool) {
	var req dishRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgDishFieldsMissing)
		return nil, false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		fail(c, http.StatusBadRequest, MsgDishFieldsMissing)
		return nil, false
	}

	price, err := models.ParsePrice(string(req.Price))
	if err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidPrice)
		return nil, false
	}
	available, err := req.IsAvailable.bool()
	if err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidAvailability)
		return nil, false
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(string(req.CategoryID)), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, MsgCategoryNotFound)
		return nil, false
	}
	owned, err := h.Store.CategoryOwned(c.Request.Context(), ownerID, categoryID)
	if err != nil {
		logger.FromContext(c).Error("check category", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return nil, false
	}
	if !owned {
		fail(c, http.StatusBadRequest, MsgCategoryNotFound)
		return nil, false
	}

	allergens := SplitAllergens(req.Allergens)
	if _, err := h.Store.ResolveAllergens(c.Request.Context(), allergens); err != nil {
		if errors.Is(err, store.ErrUnknownAllergen) {
			fail(c, http.StatusBadRequest, unknownAllergenMessage(err))
			return nil, false
		}
		logger.FromContext(c).Error("resolve allergens", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgInternal)
		return nil, false
	}

	return &dishInput{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		CategoryID:  categoryID,
		Allergens:   allergens,
		IsAvailable: available,
	}, true
}

func unknownAllergenMessage(err error) string {
	ids := strings.TrimPrefix(err.Error(), store.ErrUnknownAllergen.Error()+": ")
	return fmt.Sprintf(MsgUnknownAllergen, ids)
}

// AddDish creates a dish, uploading its image first when one is attached
func (h *Handler) AddDish(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	in, ok := h.bindDish(c, ownerID)
	if !ok {
		return
	}

	var up *upload
	if fh := formImage(c); fh != nil {
		var err error
		if up, err = h.uploadImage(ctx, ownerID, fh); err != nil {
			logger.FromContext(c).Error("upload dish image", zap.Error(err))
			fail(c, http.StatusInternalServerError, MsgImageUploadFailed)
			return
		}
	}

	dish := models.Dish{
		RestaurantID: ownerID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		IsAvailable:  in.IsAvailable == nil || *in.IsAvailable,
	}
	if up != nil {
		dish.ImageURL = up.URL
	}

	if err := h.Store.CreateDish(ctx, &dish, in.Allergens); err != nil {
		err = h.abandonUpload(ctx, up, err)
		logger.FromContext(c).Error("create dish", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgDishSaveFailed)
		return
	}
	h.Metrics.RecordMenuWrite("dish", "create")
	c.JSON(http.StatusCreated, gin.H{"success": true, "dish": dish})
}

// EditDish rewrites one of the owner's dishes, optionally replacing its image
func (h *Handler) EditDish(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, MsgDishNotFound)
		return
	}
	existing, err := h.Store.DishByID(ctx, ownerID, id)
	if err != nil {
		status, msg := storeStatus(err, MsgDishNotFound, MsgDishUpdateFailed)
		fail(c, status, msg)
		return
	}

	in, ok := h.bindDish(c, ownerID)
	if !ok {
		return
	}

	var up *upload
	if fh := formImage(c); fh != nil {
		if up, err = h.uploadImage(ctx, ownerID, fh); err != nil {
			logger.FromContext(c).Error("upload dish image", zap.Error(err), zap.Int64("dish_id", id))
			fail(c, http.StatusInternalServerError, MsgImageUploadFailed)
			return
		}
	}

	update := store.DishUpdate{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Allergens:   in.Allergens,
		IsAvailable: in.IsAvailable,
	}
	if up != nil {
		update.ImageURL = &up.URL
	}

	if err := h.Store.UpdateDish(ctx, ownerID, id, update); err != nil {
		err = h.abandonUpload(ctx, up, err)
		logger.FromContext(c).Error("update dish", zap.Error(err), zap.Int64("dish_id", id))
		status, msg := storeStatus(err, MsgDishNotFound, MsgDishUpdateFailed)
		fail(c, status, msg)
		return
	}
	if up != nil && existing.ImageURL != up.URL {
		h.discardImage(c, existing.ImageURL)
	}

	dish, err := h.Store.DishByID(ctx, ownerID, id)
	if err != nil {
		logger.FromContext(c).Error("reload dish", zap.Error(err), zap.Int64("dish_id", id))
		fail(c, http.StatusInternalServerError, MsgDishUpdateFailed)
		return
	}
	h.Metrics.RecordMenuWrite("dish", "update")
	c.JSON(http.StatusOK, gin.H{"success": true, "dish": dish})
}

// DeleteDish removes one of the owner's dishes and its image
func (h *Handler) DeleteDish(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	id, ok := idParam(c)
	if !ok {
		fail(c, http.StatusNotFound, MsgDishNotFound)
		return
	}
	existing, err := h.Store.DishByID(ctx, ownerID, id)
	if err != nil {
		status, msg := storeStatus(err, MsgDishNotFound, MsgDishDeleteFailed)
		fail(c, status, msg)
		return
	}

	if err := h.Store.DeleteDish(ctx, ownerID, id); err != nil {
		logger.FromContext(c).Error("delete dish", zap.Error(err), zap.Int64("dish_id", id))
		status, msg := storeStatus(err, MsgDishNotFound, MsgDishDeleteFailed)
		fail(c, status, msg)
		return
	}
	h.discardImage(c, existing.ImageURL)

	h.Metrics.RecordMenuWrite("dish", "delete")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
