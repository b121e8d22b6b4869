package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/token"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"

	"go.uber.org/zap"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

type AuthMiddleware struct {
	Tokens *token.Issuer
}

func NewAuthMiddleware(tokens *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read bearer token
		raw := bearerToken(r)
		if raw == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Verify signature, expiry and active-store membership. A token
		// store outage is not the caller's fault and must not read as 401.
		userID, err := a.Tokens.Verify(r.Context(), raw)
		if err != nil {
			if errors.Is(err, token.ErrInvalidToken) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			logger.Error("token verification backend failure", zap.Error(err))
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}

		// 3. Attach user_id to context
		ctx := context.WithValue(r.Context(), userIDKey, userID)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
