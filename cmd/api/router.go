package api

import (
	"net/http"

	"authws-backend/internal/rpc"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP surface. Everything interesting happens over
// the WebSocket; the plain routes exist for liveness checks and curiosity.
func SetupRoutes(r *gin.Engine, wsHandler *rpc.WSHandler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the auth backend"})
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws", wsHandler.Handle)
}
