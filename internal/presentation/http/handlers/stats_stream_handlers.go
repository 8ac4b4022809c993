package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/messaging"
	"github.com/TiendoLabs/tiendo-go/internal/infrastructure/observability/logging"
)

var statsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The route sits behind the admin session gate already.
		return true
	},
}

// StatsStreamHandlers upgrades admin console connections onto the live
// store statistics stream.
type StatsStreamHandlers struct {
	broadcaster *messaging.StatsBroadcaster
	logger      *logging.ChanneledLogger
}

func NewStatsStreamHandlers(broadcaster *messaging.StatsBroadcaster, logger *logging.ChanneledLogger) *StatsStreamHandlers {
	return &StatsStreamHandlers{broadcaster: broadcaster, logger: logger}
}

// Stream handles GET /admin/stats/stream behind the admin session gate.
func (h *StatsStreamHandlers) Stream(c *gin.Context) {
	conn, err := statsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.System().Warn("Stats stream upgrade failed", "error", err)
		return
	}

	client := &messaging.StatsClient{
		Conn: conn,
		Send: make(chan []byte, 8),
	}

	h.broadcaster.Register(client)
	go client.WritePump()
	go client.ReadPump(h.broadcaster)
}
