package server

import (
	"net/http"
	"time"

	httpHandler "media-catalog/interfaces/http"
	"media-catalog/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps carries optional collaborators wired by main.
type RouterDeps struct {
	SecretKey       string
	VerificationSSE gin.HandlerFunc
}

func InitiateRouter(
	videoHandler httpHandler.IVideoHandler,
	healthHandler httpHandler.IHealthHandler,
	deps RouterDeps,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)

	// Public catalog endpoints
	if videoHandler != nil {
		router.GET("/videos", videoHandler.SearchVideos)
		router.GET("/videos/:id", videoHandler.GetVideo)
	}

	// Admin API: ingestion, verification, deletion
	api := router.Group("api")
	api.Use(middleware.Auth(deps.SecretKey))

	if videoHandler != nil {
		api.POST("/videos", videoHandler.CreateVideo)
		api.PATCH("/videos/:id", videoHandler.UpdateVideo)
		api.DELETE("/videos", videoHandler.DeleteVideos)
		api.POST("/videos/verify", videoHandler.VerifyVideos)
	} else {
		// Fallback when the database is unavailable at startup
		api.POST("/videos", func(ctx *gin.Context) {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog store not configured"})
		})
	}

	// SSE endpoint for real-time verification status
	if deps.VerificationSSE != nil {
		api.GET("/videos/verify/stream", deps.VerificationSSE)
	}

	return router
}
