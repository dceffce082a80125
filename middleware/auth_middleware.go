package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folio/api/utils"
)

const (
	AdminIDKey    = "admin_id"
	AdminEmailKey = "admin_email"
)

// AuthRequired accepts a JWT from the session cookie or an
// "Authorization: Bearer" header and stores the admin identity on the context.
func AuthRequired(tokens *utils.TokenIssuer, cookieName string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if tokenString == "" {
			log.Debug("auth: no token in cookie or header", zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
			return
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if err != nil {
			log.Info("auth: invalid token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}
