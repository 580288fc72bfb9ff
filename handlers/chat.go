package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Lancelot03/Operion/models"
	"github.com/Lancelot03/Operion/services"
)

// RootStatus is the fixed payload served on GET /
const RootStatus = "AI Agent Backend is running with Google Gemini!"

// ChatProcessor runs one chat turn
type ChatProcessor interface {
	Process(ctx context.Context, req models.ChatRequest) services.ChatResult
}

// Handler serves the relay's HTTP endpoints
type Handler struct {
	chat        ChatProcessor
	errorStatus int
	log         *logrus.Entry
}

// New creates the handler. errorStatus is the HTTP status used when the
// model call fails.
func New(chat ChatProcessor, errorStatus int, log *logrus.Entry) *Handler {
	return &Handler{chat: chat, errorStatus: errorStatus, log: log}
}

// Root reports that the service is up
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: RootStatus})
}

// Health is the liveness probe
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Status: "healthy",
		Time:   time.Now().Format(time.RFC3339),
	})
}

// Chat relays one message to the agent's model session
func (h *Handler) Chat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"agent":      req.AgentConfig.Name,
	}).Infof("chat request - Message: %s", req.Message)

	result := h.chat.Process(c.Request.Context(), req)
	if !result.OK() {
		c.JSON(h.errorStatus, gin.H{"error": result.Err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": result.Reply})
}

// NotFound answers unknown routes
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}
