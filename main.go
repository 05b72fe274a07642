package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"animebooth/internal/composite"
	"animebooth/internal/config"
	"animebooth/internal/handlers"
	"animebooth/internal/pipeline"
	"animebooth/internal/provider"
	"animebooth/internal/store"
	"animebooth/web/pages"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel,
		Prefix:          "animebooth",
	})

	st, err := store.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal("could not open storage directory", "dir", cfg.StorageDir, "err", err)
	}

	comp, err := composite.New(cfg.LogoPath)
	if err != nil {
		logger.Fatal("could not load logo", "path", cfg.LogoPath, "err", err)
	}

	prov := provider.FromConfig(cfg)
	runner := pipeline.NewRunner(prov, comp, st, cfg.QRTargetURL, logger)
	h := handlers.New(runner, st, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Static assets
	r.Static("/web/static", "web/static")
	r.Static("/web/assets", "web/assets")

	// API routes
	api := r.Group("/api")
	{
		api.POST("/upload", handlers.BodyLimit(handlers.MaxUploadBytes), h.Upload)
		api.GET("/gallery", h.ListGallery)
		api.GET("/images/:name", h.GetImage)
		api.GET("/capabilities", h.Capabilities)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/sitemap.xml", h.SitemapXML)

	// Pages
	r.GET("/", func(c *gin.Context) {
		if err := pages.HomePage().Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})
	r.GET("/gallery", func(c *gin.Context) {
		if err := pages.GalleryPage().Render(c.Request.Context(), c.Writer); err != nil {
			c.String(500, err.Error())
		}
	})

	addr := ":" + cfg.Port
	logger.Info("animebooth listening", "addr", addr, "provider", cfg.Provider)
	if err := r.Run(addr); err != nil {
		logger.Fatal("server exited", "err", err)
	}
}
