package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	authctx "github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
)

// TokenVerifier is the part of *auth.Client the middleware uses.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info
func FirebaseAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(authctx.CtxFirebaseUID, decodedToken.UID)
		if email, ok := decodedToken.Claims["email"].(string); ok {
			c.Set(authctx.CtxEmail, email)
		}
		c.Set("firebase_token", decodedToken)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
