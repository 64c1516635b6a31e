package middleware

import (
	"fmt"
	"strings"

	"github.com/cinevault/movie-catalog-api/internal/domain/user"
	"github.com/cinevault/movie-catalog-api/internal/ierr"
	"github.com/cinevault/movie-catalog-api/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
	claimsContextKey    = "accessClaims"
)

func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("AuthMiddleware")
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			log.Debug("Authorization header is missing")
			_ = c.Error(fmt.Errorf("%w: authorization header required", ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug("Authorization header format is invalid")
			_ = c.Error(fmt.Errorf("%w: invalid authorization header format", ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			log.Debug("Token is missing after Bearer prefix")
			_ = c.Error(fmt.Errorf("%w: token missing", ierr.ErrUnauthorized))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			log.Warn("Token validation failed", zap.Error(err))
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware; it rejects non-admin claims.
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("RequireAdmin")
	return func(c *gin.Context) {
		claims := GetAccessClaims(c)
		if claims == nil || claims.Role != user.RoleAdmin {
			log.Warn("Non-admin attempted admin endpoint")
			_ = c.Error(fmt.Errorf("%w: admin role required", ierr.ErrForbidden))
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetAccessClaims(c *gin.Context) *service.AccessClaims {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*service.AccessClaims)
	if !ok {
		return nil
	}
	return claims
}
