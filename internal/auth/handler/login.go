package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	userID, err := h.credentialService.Authenticate(
		c.Request.Context(),
		req.Username,
		req.Password,
	)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	signed, err := h.tokens.Issue(c.Request.Context(), userID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed})
}

func (h *Handler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	if raw != "" {
		// Best-effort revocation; logout is idempotent either way.
		_ = h.tokens.Revoke(c.Request.Context(), raw)
	}

	c.Status(http.StatusNoContent)
}
