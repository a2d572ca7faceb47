package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"session-service/internal/models"
	"session-service/internal/session"
)

// SessionHandler exposes the session coordinator over HTTP.
type SessionHandler struct {
	coordinator *session.Coordinator
}

// NewSessionHandler builds a SessionHandler.
func NewSessionHandler(coordinator *session.Coordinator) *SessionHandler {
	return &SessionHandler{coordinator: coordinator}
}

// GetState returns the current session snapshot.
func (h *SessionHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}

// SetUser switches the session identity to a directory user.
func (h *SessionHandler) SetUser(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target *models.User
	for _, u := range h.coordinator.Snapshot().Users {
		if u.ID == req.UserID {
			user := u
			target = &user
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not in directory"})
		return
	}

	if err := h.coordinator.SetCurrentUser(c.Request.Context(), target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not set user"})
		return
	}
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}

// ListChats returns the selectable conversations.
func (h *SessionHandler) ListChats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"chats": h.coordinator.Chats()})
}

// SelectChat switches the active chat and reloads its messages.
func (h *SessionHandler) SelectChat(c *gin.Context) {
	var req struct {
		Kind     models.ChatKind `json:"kind" binding:"required"`
		TargetID string          `json:"target_id" binding:"required"`
		Name     string          `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind != models.ChatKindUser && req.Kind != models.ChatKindGroup {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat kind"})
		return
	}

	chat := models.Chat{Kind: req.Kind, TargetID: req.TargetID, Name: req.Name}
	if err := h.coordinator.SelectChat(c.Request.Context(), &chat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load chat"})
		return
	}
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}

// ClearChat deselects the active chat.
func (h *SessionHandler) ClearChat(c *gin.Context) {
	if err := h.coordinator.SelectChat(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear chat"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SetVisibility records whether the client is foregrounded.
func (h *SessionHandler) SetVisibility(c *gin.Context) {
	var req struct {
		Visible *bool `json:"visible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.coordinator.SetVisible(*req.Visible)
	c.Status(http.StatusNoContent)
}

// GetMessages returns the active chat's message list.
func (h *SessionHandler) GetMessages(c *gin.Context) {
	snap := h.coordinator.Snapshot()
	c.JSON(http.StatusOK, gin.H{"messages": snap.Messages})
}

// PostMessage sends a text or ai_query message to the active chat.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content string             `json:"content" binding:"required"`
		Type    models.MessageType `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type == "" {
		req.Type = models.MessageText
	}
	if req.Type != models.MessageText && req.Type != models.MessageAIQuery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message type"})
		return
	}

	if err := h.coordinator.SendMessage(c.Request.Context(), req.Content, req.Type); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"messages": h.coordinator.Snapshot().Messages})
}

// ShareLocation runs the location flow for the active chat.
func (h *SessionHandler) ShareLocation(c *gin.Context) {
	if err := h.coordinator.ShareLocation(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share location"})
		return
	}
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}

// StartCall initiates a voice or video call.
func (h *SessionHandler) StartCall(c *gin.Context) {
	kind := models.CallKind(c.Param("kind"))
	if kind != models.CallVoice && kind != models.CallVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid call kind"})
		return
	}

	if err := h.coordinator.InitiateCall(c.Request.Context(), kind); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start call"})
		return
	}
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}

// EndCall tears the active call down.
func (h *SessionHandler) EndCall(c *gin.Context) {
	if err := h.coordinator.EndCall(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to end call"})
		return
	}
	c.JSON(http.StatusOK, h.coordinator.Snapshot())
}
