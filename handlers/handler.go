package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"digital-menu-api/config"
	"digital-menu-api/identity"
	"digital-menu-api/metrics"
	"digital-menu-api/storage"
	"digital-menu-api/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handler carries the dependencies shared by every route
type Handler struct {
	Store   *store.Store
	Storage storage.Storage
	Metrics *metrics.Metrics
	// Local is nil when identities come from a remote provider
	Local *identity.Local
	Auth  config.AuthConfig
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// RegisterValidators adds the custom tags used in request bindings
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// failedTag reports whether binding failed on the given validation tag
func failedTag(err error, tag string) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// storeStatus maps an ownership-filtered write error to a response
func storeStatus(err error, notFoundMsg, failMsg string) (int, string) {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound, notFoundMsg
	}
	return http.StatusInternalServerError, failMsg
}
