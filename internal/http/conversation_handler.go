package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"induk-agents/internal/agents"
	"induk-agents/internal/conversation"
	"induk-agents/internal/repository"
	"induk-agents/internal/service"
)

// ConversationHandler expone la maquina de estados de conversacion por HTTP.
type ConversationHandler struct {
	logger      *zap.Logger
	store       *conversation.Store
	registry    *agents.Registry
	limiter     service.SubmitRateLimiter
	transcripts repository.TranscriptRepository
}

// NewConversationHandler crea el handler. limiter y transcripts son opcionales.
func NewConversationHandler(
	logger *zap.Logger,
	store *conversation.Store,
	registry *agents.Registry,
	limiter service.SubmitRateLimiter,
	transcripts repository.TranscriptRepository,
) *ConversationHandler {
	return &ConversationHandler{
		logger:      logger,
		store:       store,
		registry:    registry,
		limiter:     limiter,
		transcripts: transcripts,
	}
}

// ListAgents maneja GET /agents.
func (h *ConversationHandler) ListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": h.registry.All()})
}

// CreateConversation maneja POST /conversations.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	conv := h.store.Create()
	h.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID()),
		zap.String("operator_id", operatorID(c)),
	)
	c.JSON(http.StatusCreated, gin.H{"conversation": conv.Snapshot()})
}

// GetConversation maneja GET /conversations/:id.
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	conv, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv.Snapshot()})
}

// PostMessage maneja POST /conversations/:id/messages. Responde cuando el turno termina.
func (h *ConversationHandler) PostMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id := c.Param("id")
	conv, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}

	operator := operatorID(c)
	if h.limiter != nil && !h.limiter.Allow(id) {
		h.logger.Warn("submit rate limited", zap.String("conversation_id", id), zap.String("operator_id", operator))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, try again later"})
		return
	}

	// Un turno enviado corre hasta terminar aunque el cliente se desconecte.
	ctx := context.WithoutCancel(c.Request.Context())
	snap, err := conv.Submit(ctx, req.Content)
	h.logger.Info("turn submitted",
		zap.String("conversation_id", id),
		zap.String("operator_id", operator),
		zap.String("phase", string(snap.Phase)),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
	case errors.Is(err, conversation.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "conversation is busy", "conversation": snap})
	case err != nil:
		h.logger.Error("submit failed", zap.Error(err), zap.String("conversation_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
	default:
		c.JSON(http.StatusCreated, gin.H{"conversation": snap})
	}
}

// GetTranscript maneja GET /conversations/:id/transcript, leyendo del archivo.
func (h *ConversationHandler) GetTranscript(c *gin.Context) {
	if h.transcripts == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "transcript archive not configured"})
		return
	}

	id := c.Param("id")
	messages, err := h.transcripts.ListByConversationID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("list transcript failed", zap.Error(err), zap.String("conversation_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load transcript"})
		return
	}
	if len(messages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": id, "messages": messages})
}
