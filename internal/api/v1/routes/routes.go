package routes

import (
	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/v1/handlers"
	"voicescribe/internal/app"
)

// RegisterRoutes registers all v1 API routes against the shared App.
func RegisterRoutes(router *gin.RouterGroup, a *app.App) {
	providerHandler := handlers.NewProviderHandler(a)
	providers := router.Group("/providers")
	{
		providers.GET("", providerHandler.List)
		providers.GET("/:id", providerHandler.Get)
	}

	settingsHandler := handlers.NewSettingsHandler(a)
	settings := router.Group("/settings")
	{
		settings.GET("", settingsHandler.Get)
		settings.PUT("", settingsHandler.Update)
		settings.PUT("/credentials/:provider", settingsHandler.SetCredential)
	}
	router.GET("/languages", settingsHandler.Languages)

	sessionHandler := handlers.NewSessionHandler(a)
	session := router.Group("/session")
	{
		session.GET("", sessionHandler.State)
		session.POST("/start", sessionHandler.Start)
		session.POST("/pause", sessionHandler.Pause)
		session.POST("/resume", sessionHandler.Resume)
		session.POST("/stop", sessionHandler.Stop)
	}

	transcriptHandler := handlers.NewTranscriptHandler(a)
	transcripts := router.Group("/transcripts")
	{
		transcripts.GET("", transcriptHandler.List)
		transcripts.GET("/stats", transcriptHandler.Stats)
		transcripts.GET("/export", transcriptHandler.Export)
		transcripts.DELETE("", transcriptHandler.Clear)
	}

	recognizeHandler := handlers.NewRecognizeHandler(a)
	router.POST("/recognize", recognizeHandler.Upload)

	if a.Archive != nil {
		archiveHandler := handlers.NewArchiveHandler(a)
		archive := router.Group("/archive")
		{
			archive.GET("", archiveHandler.Recent)
			archive.GET("/:id", archiveHandler.Get)
		}
	}
}
