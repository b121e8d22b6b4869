package handler

import (
	"net/http"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/credentials"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	_, err := h.credentialService.Register(
		c.Request.Context(),
		req.Username,
		req.Password,
	)

	if err != nil {
		switch err {
		case credentials.ErrAlreadyRegistered:
			c.JSON(http.StatusBadRequest, gin.H{"error": "account already exists"})
		case credentials.ErrPasswordTooShort:
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}
