package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"animebooth/internal/apperr"
)

// MaxUploadBytes is the upload size ceiling. Larger payloads are cut off by
// the body limit middleware before reaching the pipeline.
const MaxUploadBytes = 10 << 20 // 10 MiB

// BodyLimit caps request bodies at the transport layer.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// Upload accepts one multipart image part, runs the pipeline, and streams the
// final composited JPEG back.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		// MaxBytesReader cutting the body off surfaces here as a form parse
		// failure; report the size problem, not a missing part.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(c, apperr.Wrap(apperr.CodeValidation, err, "uploaded image is too large"))
			return
		}
		h.writeError(c, apperr.Wrap(apperr.CodeValidation, err, "no image file provided"))
		return
	}

	f, err := file.Open()
	if err != nil {
		h.writeError(c, apperr.Wrap(apperr.CodeValidation, err, "could not read uploaded file"))
		return
	}
	defer f.Close()

	upload, err := io.ReadAll(f)
	if err != nil {
		h.writeError(c, apperr.Wrap(apperr.CodeValidation, err, "could not read uploaded file"))
		return
	}

	res, err := h.runner.Execute(c.Request.Context(), upload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/jpeg", res.Image)
}
