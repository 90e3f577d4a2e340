package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"
)

// UserID returns the authenticated user's id, or "" when the request carries
// none. Set by the Firebase middleware or, in development, HeaderUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
