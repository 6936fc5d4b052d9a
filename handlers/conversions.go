package handlers

import (
	"net/http"

	"cadenza/services"
	"cadenza/types"
	"cadenza/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConversionHandler handles conversion management endpoints
type ConversionHandler struct {
	jobQueue services.JobQueue
	hub      websocket.Hub
	log      *zap.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(jq services.JobQueue, hub websocket.Hub, log *zap.Logger) *ConversionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConversionHandler{
		jobQueue: jq,
		hub:      hub,
		log:      log,
	}
}

// QueueConversion queues a FLAC to MP3 conversion batch
func (h *ConversionHandler) QueueConversion(c *gin.Context) {
	var req types.ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid conversion request",
			"details": err.Error(),
		})
		return
	}

	if len(req.Inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "at least one input file or folder is required",
		})
		return
	}

	bitrate := types.DefaultBitrate
	if req.Bitrate != 0 {
		var err error
		bitrate, err = types.ParseBitrate(req.Bitrate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}

	// A bad destination should be one upfront error, not a queued job
	// that fails later.
	if req.OutputDir != "" {
		if err := services.EnsureOutputDir(req.OutputDir); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid output directory",
				"details": err.Error(),
			})
			return
		}
	}

	job := h.jobQueue.AddJob(req.Inputs, bitrate, req.OutputDir)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Conversion queued successfully",
		"job":     job,
	})
}

// GetAllJobs returns all conversion jobs
func (h *ConversionHandler) GetAllJobs(c *gin.Context) {
	jobs := h.jobQueue.GetAllJobs()
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}

// GetJob returns a specific conversion job by ID
func (h *ConversionHandler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")
	job, exists := h.jobQueue.GetJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "job not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job": job,
	})
}

// CancelJob cancels a conversion job
func (h *ConversionHandler) CancelJob(c *gin.Context) {
	jobID := c.Param("jobId")
	cancelled := h.jobQueue.CancelJob(jobID)
	if !cancelled {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job cannot be cancelled (not found or already processing)",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "job cancelled successfully",
	})
}

// HandleWebSocketConnection handles WebSocket connections for specific job progress
func (h *ConversionHandler) HandleWebSocketConnection(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job ID is required"})
		return
	}

	// Check if job exists
	_, exists := h.jobQueue.GetJob(jobID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, jobID, h.log)
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}

// HandleWebSocketAllConnection handles WebSocket connections for all job progress
func (h *ConversionHandler) HandleWebSocketAllConnection(c *gin.Context) {
	upgrader := websocket.GetUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, "all", h.log)
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}
