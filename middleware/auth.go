package middleware

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/heritagearc/gatekeeper/config"
	logger "github.com/heritagearc/gatekeeper/logging"
)

// PrincipalExtractor resolves the requesting principal from a bearer token.
// A missing or invalid token degrades to an anonymous request rather than
// rejecting it: the decision engine treats anonymity as the public context,
// so authentication failures surface as access decisions, not HTTP errors.
func PrincipalExtractor() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.Next()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		secret := config.GetString("auth.jwtSecret")
		if secret == "" {
			// Never verify against the empty key.
			logger.Warn("auth.jwtSecret is not configured, treating request as anonymous")
			c.Next()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			logger.Warn("Rejecting bearer token, treating request as anonymous", zap.Error(err))
			c.Next()
			return
		}

		if claims, ok := token.Claims.(*jwt.StandardClaims); ok && token.Valid && claims.Subject != "" {
			c.Set("userID", claims.Subject)
		}

		c.Next()
	}
}
