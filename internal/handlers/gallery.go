package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"animebooth/internal/apperr"
	"animebooth/internal/store"
)

// GalleryEntry is one previously produced artifact: its identifier and the URL
// it can be fetched from. Entries are a view over the store, computed on
// demand.
type GalleryEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ListGallery returns entries for every stored image artifact.
func (h *Handler) ListGallery(c *gin.Context) {
	names, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("gallery listing failed", "err", err)
		h.writeError(c, apperr.Wrap(apperr.CodeStorage, err, "failed to list images"))
		return
	}

	entries := []GalleryEntry{}
	for _, name := range names {
		if !store.IsImageName(name) {
			continue
		}
		entries = append(entries, GalleryEntry{
			ID:  name,
			URL: "/api/images/" + url.PathEscape(name),
		})
	}
	c.JSON(http.StatusOK, entries)
}

// GetImage serves one stored artifact by name.
func (h *Handler) GetImage(c *gin.Context) {
	// gin hands path params already percent-decoded; decoding again would
	// mangle stored names containing a literal %.
	name := c.Param("name")

	data, err := h.store.Get(c.Request.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(c, apperr.New(apperr.CodeNotFound, "image not found"))
		return
	}
	if err != nil {
		h.logger.Error("image fetch failed", "name", name, "err", err)
		h.writeError(c, apperr.Wrap(apperr.CodeStorage, err, "failed to serve image"))
		return
	}

	c.Data(http.StatusOK, contentTypeFor(name), data)
}

func contentTypeFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
