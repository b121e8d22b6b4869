package handler

import (
	"context"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/token"

	"github.com/gin-gonic/gin"
)

// CredentialService is the slice of the credentials package the handlers
// need. Both the Postgres-backed and in-memory services satisfy it.
type CredentialService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type Handler struct {
	credentialService CredentialService
	tokens            *token.Issuer
}

func NewHandler(
	credentialService CredentialService,
	tokens *token.Issuer,
) *Handler {
	return &Handler{
		credentialService: credentialService,
		tokens:            tokens,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
}
