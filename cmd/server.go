package cmd

import (
	"os"
	"strconv"

	"cadenza/handlers"
	"cadenza/middleware"
	"cadenza/services"
	"cadenza/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartWebServer starts the web server
func StartWebServer(port int, log *zap.Logger) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// The external transcoder is a hard requirement; fail once, upfront.
	converter, err := services.NewConverter(log)
	if err != nil {
		log.Fatal("ffmpeg is required but was not found", zap.Error(err))
	}

	// Initialize services
	hub := websocket.NewHub(log)
	go hub.Run()

	fileService := services.NewFileService(log)

	jobQueue := services.NewJobQueue(1, converter, fileService, hub, log)
	jobQueue.Start()

	// Initialize handlers
	conversionHandler := handlers.NewConversionHandler(jobQueue, hub, log)
	fileHandler := handlers.NewFileHandler(fileService, log)
	searchHandler := handlers.NewSearchHandler(fileService)
	healthHandler := handlers.NewHealthHandler()
	settingsHandler := handlers.NewSettingsHandler()

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())

	// Apply middleware
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(log))

	// Setup routes
	setupRoutes(r, conversionHandler, fileHandler, searchHandler, healthHandler, settingsHandler)

	// Start server
	portStr := strconv.Itoa(port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Info("cadenza web server starting", zap.String("port", portStr))
	if err := r.Run(":" + portStr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, conversionHandler *handlers.ConversionHandler, fileHandler *handlers.FileHandler, searchHandler *handlers.SearchHandler, healthHandler *handlers.HealthHandler, settingsHandler *handlers.SettingsHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// API routes group
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Library search endpoint
		apiGroup.GET("/search", searchHandler.Search)

		// Conversion Management Endpoints
		conversionsGroup := apiGroup.Group("/conversions")
		{
			// Queue a conversion batch
			conversionsGroup.POST("", conversionHandler.QueueConversion)

			// Manage conversions
			conversionsGroup.GET("", conversionHandler.GetAllJobs)
			conversionsGroup.GET("/:jobId", conversionHandler.GetJob)
			conversionsGroup.DELETE("/:jobId", conversionHandler.CancelJob)
		}

		// WebSocket endpoints for real-time progress
		wsGroup := apiGroup.Group("/ws")
		{
			// WebSocket endpoint for specific job progress
			wsGroup.GET("/conversions/:jobId", conversionHandler.HandleWebSocketConnection)

			// WebSocket endpoint for all conversions progress
			wsGroup.GET("/conversions", conversionHandler.HandleWebSocketAllConnection)
		}

		// File discovery and streaming endpoints
		apiGroup.GET("/files", fileHandler.ListFiles)
		apiGroup.GET("/files/stream/*filepath", fileHandler.StreamFile)

		// Settings endpoints
		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.POST("/settings", settingsHandler.UpdateSettings)
	}
}
