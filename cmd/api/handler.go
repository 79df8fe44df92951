package api

import (
	"authws-backend/internal/auth/delivery"
	"authws-backend/internal/auth/usecase"
	"authws-backend/internal/rpc"
	"authws-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase usecase.AuthUsecase
	config      *config.Config
	wsHandler   *rpc.WSHandler
}

func NewHandler(authUsecase usecase.AuthUsecase, cfg *config.Config) *Handler {
	registry := rpc.NewRegistry()
	delivery.RegisterMethods(registry, authUsecase)

	sessions := rpc.NewSessionTable()
	dispatcher := rpc.NewDispatcher(registry, sessions, delivery.NewAuthenticator(authUsecase))
	wsHandler := rpc.NewWSHandler(dispatcher, sessions, nil)

	return &Handler{
		authUsecase: authUsecase,
		config:      cfg,
		wsHandler:   wsHandler,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && h.originAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.wsHandler)

	return r.Run(addr)
}

func (h *Handler) originAllowed(origin string) bool {
	if len(h.config.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range h.config.AllowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}
