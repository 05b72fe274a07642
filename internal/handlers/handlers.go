package handlers

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"animebooth/internal/apperr"
	"animebooth/internal/pipeline"
	"animebooth/internal/store"
)

// Executor runs the upload pipeline; narrowed to an interface so handlers are
// testable without a live provider.
type Executor interface {
	Execute(ctx context.Context, upload []byte) (*pipeline.Result, error)
}

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	runner Executor
	store  store.Store
	logger *log.Logger
}

// New returns a new Handler instance.
func New(runner Executor, s store.Store, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{runner: runner, store: s, logger: logger}
}

// writeError answers with the JSON error body for err. It is the only error
// writer on the API surface, so a response is either an error document or
// binary image bytes, never both.
func (h *Handler) writeError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": apperr.UserMessage(err),
		"code":  apperr.GetCode(err),
	})
}

// SitemapXML serves a minimal sitemap for the site.
// Update the URLs if you add more pages.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"  <url>\n" +
		"    <loc>" + base + "/gallery" + "</loc>\n" +
		"    <changefreq>daily</changefreq>\n" +
		"    <priority>0.8</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(200, xml)
}
