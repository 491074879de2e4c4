package handlers

import (
	"context"
	"fmt"
	"mime/multipart"

	"digital-menu-api/logger"
	"digital-menu-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// upload is an image stored ahead of the row that will reference it
type upload struct {
	Key string
	URL string
}

// formImage returns the optional "image" part of a multipart request
func formImage(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile("image")
	if err != nil || fh.Size == 0 {
		return nil
	}
	return fh
}

// uploadImage stores fh under a fresh key in the owner's folder
func (h *Handler) uploadImage(ctx context.Context, ownerID uuid.UUID, fh *multipart.FileHeader) (*upload, error) {
	f, err := fh.Open()
	if err != nil {
		h.Metrics.RecordImageUpload("error")
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := storage.NewObjectKey(ownerID, fh.Filename)
	if err := h.Storage.Put(ctx, key, f, fh.Size, fh.Header.Get("Content-Type")); err != nil {
		h.Metrics.RecordImageUpload("error")
		return nil, err
	}
	h.Metrics.RecordImageUpload("ok")
	return &upload{Key: key, URL: h.Storage.PublicURL(key)}, nil
}

// abandonUpload deletes an image whose row write failed and folds any delete
// error into writeErr
func (h *Handler) abandonUpload(ctx context.Context, up *upload, writeErr error) error {
	if up == nil {
		return writeErr
	}
	return multierr.Append(writeErr, h.Storage.Delete(ctx, up.Key))
}

// discardImage removes an image that no row references anymore. Failures are
// only logged; the menu is already consistent.
func (h *Handler) discardImage(c *gin.Context, url string) {
	if url == "" {
		return
	}
	key, ok := h.Storage.KeyFromURL(url)
	if !ok {
		return
	}
	if err := h.Storage.Delete(c.Request.Context(), key); err != nil {
		logger.FromContext(c).Warn("delete replaced image", zap.Error(err), zap.String("key", key))
	}
}
