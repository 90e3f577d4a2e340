package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/GoSim-25-26J-441/site-builder-backend/internal/auth"
)

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token expired")
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	v := fakeVerifier{tokens: map[string]*auth.Token{
		"good": {UID: "uid-123", Claims: map[string]interface{}{"email": "owner@example.jp"}},
	}}
	r := gin.New()
	r.Use(FirebaseAuthMiddleware(v))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": authctx.UserID(c), "email": c.GetString(authctx.CtxEmail)})
	})
	return r
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"valid token", "Bearer good", http.StatusOK, `{"uid":"uid-123","email":"owner@example.jp"}`},
		{"missing header", "", http.StatusUnauthorized, `{"ok":false,"error":"missing authorization token"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"ok":false,"error":"missing authorization token"}`},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, `{"ok":false,"error":"invalid token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
