package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopmate/support-chat/internal/common"
	"github.com/shopmate/support-chat/internal/httpapi/middleware"
	"github.com/shopmate/support-chat/internal/session"
)

func sessionIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.SessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CreateChatSession starts an anonymous conversation and returns the
// session id plus the visitor token scoped to it.
func (h *Handler) CreateChatSession(c *gin.Context) {
	conv, err := h.Chat.CreateSession(c.Request.Context())
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to create session")
		return
	}

	token, err := middleware.SignVisitorToken(h.Cfg.JWTSecret, conv.SessionID, h.Cfg.SessionTTL)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50001, "failed to create session")
		return
	}

	common.OK(c, gin.H{
		"session_id": conv.SessionID,
		"token":      token,
	})
}

type sendMessageReq struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

func (h *Handler) SendChatMessage(c *gin.Context) {
	authSID, okk := sessionIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if req.SessionID != authSID {
		// token is scoped to one session; hide other sessions entirely
		common.Fail(c, http.StatusNotFound, 40004, "session not found")
		return
	}

	reply, err := h.Chat.HandleTurn(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40004, "session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to handle message")
		return
	}

	common.OK(c, gin.H{
		"session_id": req.SessionID,
		"reply":      reply,
	})
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	authSID, okk := sessionIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	sessionID := c.Param("session_id")
	if sessionID != authSID {
		common.Fail(c, http.StatusNotFound, 40004, "session not found")
		return
	}

	msgs, err := h.Chat.History(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40004, "session not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list messages")
		return
	}

	common.OK(c, gin.H{"messages": msgs})
}

// EndChatSession drops the conversation state.
func (h *Handler) EndChatSession(c *gin.Context) {
	authSID, okk := sessionIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	sessionID := c.Param("session_id")
	if sessionID != authSID {
		common.Fail(c, http.StatusNotFound, 40004, "session not found")
		return
	}

	if err := h.Chat.EndSession(c.Request.Context(), sessionID); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to end session")
		return
	}
	common.OK(c, gin.H{"ended": true})
}
