package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

// LogHandlers exposes live log streaming and per-channel level control for
// the admin console.
type LogHandlers struct {
	logger *logging.ChanneledLogger
}

func NewLogHandlers(logger *logging.ChanneledLogger) *LogHandlers {
	return &LogHandlers{logger: logger}
}

// StreamLogs handles the SSE connection for live log streaming.
func (h *LogHandlers) StreamLogs(c *gin.Context) {
	broadcaster := logging.GetBroadcaster()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	channelFilter := c.DefaultQuery("channel", "all")
	level, ok := parseLogLevel(c.DefaultQuery("level", "INFO"))
	if !ok {
		level = slog.LevelInfo
	}

	client := broadcaster.NewClient(logging.AppliedFilters{
		Channel: logging.Channel(channelFilter),
		Level:   level,
	})
	broadcaster.RegisterClient(client)
	defer broadcaster.UnregisterClient(client)

	fmt.Fprintf(c.Writer, ": connection established\n\n")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client.Channel:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GetLogLevels handles GET /api/v1/admin/logs/levels
func (h *LogHandlers) GetLogLevels(c *gin.Context) {
	levels := h.logger.ChannelLevels()
	payload := make(map[string]string, len(levels))
	for channel, level := range levels {
		payload[string(channel)] = level.String()
	}
	c.JSON(http.StatusOK, payload)
}

// SetLogLevel handles POST /api/v1/admin/logs/levels
func (h *LogHandlers) SetLogLevel(c *gin.Context) {
	var req struct {
		Channel string `json:"channel" binding:"required"`
		Level   string `json:"level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	level, ok := parseLogLevel(req.Level)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log level specified"})
		return
	}

	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), level); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to set log level", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": fmt.Sprintf("Log level for channel '%s' set to '%s'", req.Channel, req.Level)})
}

func parseLogLevel(raw string) (slog.Level, bool) {
	switch raw {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
