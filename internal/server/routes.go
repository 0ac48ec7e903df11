package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelops/reelsweep/internal/server/handlers/cleanup"
	"github.com/reelops/reelsweep/internal/server/handlers/compare"
	"github.com/reelops/reelsweep/internal/server/handlers/migrate"
	"github.com/reelops/reelsweep/internal/server/handlers/move"
	"github.com/reelops/reelsweep/internal/server/handlers/ops"
	"github.com/reelops/reelsweep/internal/server/handlers/salvage"
	"github.com/reelops/reelsweep/internal/server/handlers/subtitles"
	"github.com/reelops/reelsweep/internal/server/middlewares"
	"github.com/reelops/reelsweep/internal/version"
)

func SetupRoutes(config *Config, svc *Services) http.Handler {
	r := gin.New()

	roots := config.Roots
	compareH := compare.New(roots.Cleanup, roots.Target, svc.Journal)
	moveH := move.New(roots.Cleanup, roots.Target, config.UnwantedPatterns, svc.Journal)
	migrateH := migrate.New(roots.Target, roots.Migrated, svc.Journal)
	cleanupH := cleanup.New(roots.Cleanup, config.UnwantedPatterns, svc.Journal)
	salvageH := salvage.New(roots.Recycled, roots.Salvaged, svc.Journal)
	subtitlesH := subtitles.New(roots.Salvaged, roots.Migrated, roots.Target, svc.Journal)
	opsH := ops.New(svc.Journal)

	r.Use(middlewares.Logger())
	r.Use(gin.Recovery())
	r.Use(middlewares.GZIP())
	r.Use(middlewares.CORS())
	r.Use(middlewares.SecurityHeaders())

	r.GET("/", IndexHandler)
	r.GET("/healthz", HealthHandler)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/compare/directories", compareH.Directories)
		v1.GET("/scan/unwanted-files", cleanupH.ScanUnwantedFiles)
		v1.GET("/operations", opsH.List)

		mutating := v1.Group("", middlewares.RateLimiter(config.RateLimit))
		{
			mutating.POST("/move/non-duplicates", moveH.NonDuplicates)
			mutating.POST("/migrate/non-movie-folders", migrateH.NonMovieFolders)
			mutating.POST("/cleanup/empty-folders", cleanupH.EmptyFolders)
			mutating.POST("/cleanup/unwanted-files", cleanupH.UnwantedFiles)
			mutating.POST("/salvage/subtitle-folders", salvageH.SubtitleFolders)
			mutating.POST("/sync/subtitles-to-target", subtitlesH.SyncToTarget)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.PureJSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.PureJSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler()
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func HealthHandler(ctx *gin.Context) {
	ctx.PureJSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
