package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"induk-agents/internal/service"
)

// AuthHandler emite tokens de operador.
type AuthHandler struct {
	logger *zap.Logger
	auth   *service.OperatorAuth
}

func NewAuthHandler(logger *zap.Logger, auth *service.OperatorAuth) *AuthHandler {
	return &AuthHandler{logger: logger, auth: auth}
}

// IssueToken maneja POST /auth/token.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		OperatorID  string `json:"operator_id"`
		OperatorKey string `json:"operator_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid token request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.auth.IssueToken(req.OperatorID, req.OperatorKey)
	switch {
	case errors.Is(err, service.ErrOperatorAuthDisabled):
		c.JSON(http.StatusNotFound, gin.H{"error": "operator auth disabled"})
	case errors.Is(err, service.ErrOperatorKeyInvalid):
		h.logger.Warn("operator key rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid operator key"})
	case err != nil:
		h.logger.Error("issue token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
	default:
		c.JSON(http.StatusOK, token)
	}
}
