package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sokoni/sokoni-api/config"
)

// Authenticate extracts and validates the bearer token, then attaches
// the decoded identity to the request context. It fails closed with
// 401 on a missing or invalid token; no session state is kept.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "Fail",
				"message": "unauthorized: no token provided",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "Fail",
				"message": "unauthorized: malformed authorization header",
			})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "Fail",
				"message": "unauthorized: invalid or expired token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "Fail",
				"message": "unauthorized: invalid token claims",
			})
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "Fail",
				"message": "unauthorized: invalid token claims",
			})
			return
		}

		ctx.Set("user", claims)
		ctx.Set("userId", uint(id))
		if role, ok := claims["role"].(string); ok {
			ctx.Set("role", role)
		}

		ctx.Next()
	}
}
