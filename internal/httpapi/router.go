package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopmate/support-chat/internal/chatsvc"
	"github.com/shopmate/support-chat/internal/common"
	"github.com/shopmate/support-chat/internal/config"
	"github.com/shopmate/support-chat/internal/httpapi/handlers"
	"github.com/shopmate/support-chat/internal/httpapi/middleware"
)

func NewRouter(cfg config.Config, chat *chatsvc.Service) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(cfg, chat)

	r.GET("/ping", h.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// session creation is open; everything else needs the visitor token
	r.POST("/chat/sessions", h.CreateChatSession)

	authGroup := r.Group("/")
	authGroup.Use(middleware.AuthRequired(cfg.JWTSecret))
	authGroup.POST("/chat/messages", h.SendChatMessage)
	authGroup.GET("/chat/sessions/:session_id/messages", h.ListChatMessages)
	authGroup.DELETE("/chat/sessions/:session_id", h.EndChatSession)

	return r
}
