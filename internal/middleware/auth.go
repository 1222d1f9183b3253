package middleware

import (
	"net/http"
	"strings"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/Fatimata-sang/OC-S.F-Project10/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"code": "unauthorized", "message": message},
	})
}

// AuthMiddleware resolves the bearer token into a principal and stores it in
// the gin context. Every protected handler reads the principal from here and
// passes it explicitly into the service layer.
func AuthMiddleware(jwtSecret string, db *gorm.DB, denylist *service.TokenDenylist, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			abortUnauthorized(c, "malformed authorization header")
			return
		}

		claims, err := jwt.ParseToken(jwtSecret, tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				abortUnauthorized(c, "token expired")
			} else {
				abortUnauthorized(c, "invalid token")
			}
			return
		}

		revoked, err := denylist.Revoked(c.Request.Context(), tokenStr)
		if err != nil {
			logger.Error("token denylist lookup", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"code": "internal_error", "message": "internal server error"},
			})
			return
		}
		if revoked {
			abortUnauthorized(c, "token revoked")
			return
		}

		var user model.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			abortUnauthorized(c, "unknown user")
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", &user)
		c.Next()
	}
}

func GetCurrentUser(c *gin.Context) *model.User {
	u, exists := c.Get("user")
	if !exists {
		return nil
	}
	return u.(*model.User)
}

func GetCurrentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	return id.(uint)
}
