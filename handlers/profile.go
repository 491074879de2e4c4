package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"digital-menu-api/logger"
	"digital-menu-api/middleware"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type profileRequest struct {
	RestaurantName string `form:"restaurant_name" json:"restaurant_name"`
	Description    string `form:"description" json:"description"`
	Address        string `form:"address" json:"address"`
	Phone          string `form:"phone" json:"phone"`
	WebsiteURL     string `form:"website_url" json:"website_url"`
	InstagramURL   string `form:"instagram_url" json:"instagram_url"`
	FacebookURL    string `form:"facebook_url" json:"facebook_url"`
	WhatsappNumber string `form:"whatsapp_number" json:"whatsapp_number"`
	LogoURL        string `form:"logo_url" json:"logo_url"`
	// JSON bodies carry opening hours as an object, forms as a JSON string
	OpeningHours     json.RawMessage `form:"-" json:"opening_hours"`
	OpeningHoursForm string          `form:"opening_hours" json:"-"`
}

func (r *profileRequest) openingHours() (json.RawMessage, bool) {
	raw := r.OpeningHours
	if len(raw) == 0 && strings.TrimSpace(r.OpeningHoursForm) != "" {
		raw = json.RawMessage(r.OpeningHoursForm)
	}
	if len(raw) == 0 {
		return nil, true
	}
	return raw, json.Valid(raw)
}

// GetProfile returns the owner's restaurant profile
func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"profile": middleware.CurrentProfile(c)})
}

// UpdateProfile overwrites the editable profile fields. The slug never changes.
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.OwnerID(c)

	var req profileRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	req.RestaurantName = strings.TrimSpace(req.RestaurantName)
	if req.RestaurantName == "" {
		fail(c, http.StatusBadRequest, MsgRestaurantNameMissing)
		return
	}
	hours, ok := req.openingHours()
	if !ok {
		fail(c, http.StatusBadRequest, MsgInvalidOpeningHours)
		return
	}

	err := h.Store.UpdateProfile(ctx, ownerID, store.ProfileUpdate{
		RestaurantName: req.RestaurantName,
		Description:    req.Description,
		Address:        req.Address,
		Phone:          req.Phone,
		WebsiteURL:     req.WebsiteURL,
		InstagramURL:   req.InstagramURL,
		FacebookURL:    req.FacebookURL,
		WhatsappNumber: req.WhatsappNumber,
		LogoURL:        req.LogoURL,
		OpeningHours:   hours,
	})
	if err != nil {
		logger.FromContext(c).Error("update profile", zap.Error(err))
		status, msg := storeStatus(err, MsgRestaurantNotFound, MsgProfileUpdateFailed)
		fail(c, status, msg)
		return
	}

	profile, err := h.Store.ProfileByID(ctx, ownerID)
	if err != nil {
		logger.FromContext(c).Error("reload profile", zap.Error(err))
		fail(c, http.StatusInternalServerError, MsgProfileUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}
