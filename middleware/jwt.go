package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"gatekeeper-http-service/config"
	"gatekeeper-http-service/internal/error/code"
	"gatekeeper-http-service/internal/error/response"
	"gatekeeper-http-service/models"
	"gatekeeper-http-service/services"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware wires the JWT service into the auth middleware
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken strips the "Bearer " prefix from an authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate validates the bearer token and, when roles are given,
// requires the caller's role to be one of them. Claims land in the
// request context under "userID", "role" and "societyID".
func authenticate(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Authorization header is required", nil)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		token, err := jwtService.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.FailWithMessage(c, code.ErrTokenInvalid, "Invalid token claims", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				response.Fail(c, code.ErrForbidden, nil)
				c.Abort()
				return
			}
		}

		if userID, ok := claims["user_id"].(float64); ok {
			c.Set("userID", uint(userID))
		}
		c.Set("role", role)
		if societyID, ok := claims["society_id"].(float64); ok {
			c.Set("societyID", uint(societyID))
		}
		c.Set("claims", claims)
		c.Next()
	}
}

// AuthenticateAdmin requires the admin role
func AuthenticateAdmin() gin.HandlerFunc {
	return authenticate(models.RoleAdmin)
}

// AuthenticateGuard requires a gate-side role. Admins can operate the
// gate as well.
func AuthenticateGuard() gin.HandlerFunc {
	return authenticate(models.RoleGuard, models.RoleAdmin)
}

// AuthenticateResident requires the resident role. Admins can act on a
// resident's behalf.
func AuthenticateResident() gin.HandlerFunc {
	return authenticate(models.RoleResident, models.RoleAdmin)
}
