package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopmate/support-chat/internal/chatsvc"
	"github.com/shopmate/support-chat/internal/common"
	"github.com/shopmate/support-chat/internal/config"
)

type Handler struct {
	Cfg  config.Config
	Chat *chatsvc.Service
}

func NewHandler(cfg config.Config, chat *chatsvc.Service) *Handler {
	return &Handler{Cfg: cfg, Chat: chat}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}
