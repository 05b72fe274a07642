package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"animebooth/internal/platform"
)

// Capabilities computes a platform profile from the request's User-Agent plus
// the signals the client reports as query parameters. The browser knows its
// own touch and media-device state; the server only classifies.
func (h *Handler) Capabilities(c *gin.Context) {
	env := platform.Environment{
		UserAgent:       c.Request.UserAgent(),
		Platform:        c.Query("platform"),
		HasMediaDevices: c.Query("mediaDevices") == "true",
		HasShareAPI:     c.Query("share") == "true",
	}
	if n, err := strconv.Atoi(c.Query("touchPoints")); err == nil {
		env.MaxTouchPoints = n
	}

	profile := platform.Detect(env)
	c.JSON(http.StatusOK, gin.H{
		"profile":      profile,
		"cssClasses":   profile.CSSClasses(),
		"saveStrategy": profile.SaveStrategy(),
	})
}
