package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beatporter/beatporter/config"
	"github.com/beatporter/beatporter/internal/export"
	"github.com/beatporter/beatporter/internal/library"
)

// Server handles HTTP requests for the library interchange service.
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	store   *library.Store
	bundles export.Storage
}

// New creates a new HTTP server instance. bundles may be nil when no
// bundle persistence is configured.
func New(cfg *config.Config, store *library.Store, bundles export.Storage) *Server {
	router := gin.Default()

	server := &Server{
		cfg:     cfg,
		router:  router,
		store:   store,
		bundles: bundles,
	}

	server.setupRoutes(router)
	return server
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	router.Use(metricsMiddleware())

	router.GET("/health", s.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.POST("/import", s.importLibrary)

		lib := api.Group("/library/:id")
		{
			lib.GET("", s.getLibrary)
			lib.DELETE("", s.deleteLibrary)
			lib.GET("/tracks", s.listTracks)
			lib.PATCH("/tracks/:track_id", s.updateTrack)
			lib.GET("/playlists", s.listPlaylists)

			lib.POST("/export", s.exportLibrary)
			lib.POST("/export_bundle", s.exportBundle)

			lib.POST("/preview_rewrite_paths", s.previewRewritePaths)
			lib.POST("/apply_rewrite_paths", s.applyRewritePaths)
			lib.GET("/metadata_issues", s.metadataIssues)
			lib.POST("/metadata_auto_fix", s.metadataAutoFix)
			lib.GET("/duplicates", s.duplicates)

			lib.POST("/generate_playlist", s.generatePlaylist)
			lib.POST("/generate_playlist_v2", s.generatePlaylistV2)
			lib.POST("/merge_playlists", s.mergePlaylists)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "beatporter",
	})
}
