package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"nps/pkg/logger"
	mem "nps/pkg/memcache"
	"nps/pkg/utils"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// AccountChecker confirms that a token subject still exists and is allowed
// to sign in. It returns utils.ErrUnknownUser or utils.ErrAccountInactive.
type AccountChecker interface {
	CheckActive(ctx context.Context, userID int64) error
}

func JWTAuthMiddleware(jwt *utils.JWTManager, revoked mem.RevokedTokenStore, accounts AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, utils.ErrTokenMissing)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			abort(c, utils.ErrTokenMalformed)
			return
		}

		claims, err := jwt.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			abort(c, err)
			return
		}

		ctx := c.Request.Context()
		isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			abort(c, utils.NewDatabaseError(err))
			return
		}
		if isRevoked {
			abort(c, utils.ErrTokenRevoked)
			return
		}

		if err := accounts.CheckActive(ctx, claims.UserID); err != nil {
			abort(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Request = c.Request.WithContext(logger.WithLogFields(ctx, logger.LogFields{
			UserID: &claims.UserID,
			Role:   &claims.Role,
		}))
		c.Next()
	}
}

// RoleMiddleware lets the request through only for one of the given roles.
// It must run after JWTAuthMiddleware.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		abort(c, utils.ErrInsufficientRole)
	}
}

// CurrentClaims returns the claims stored by JWTAuthMiddleware.
func CurrentClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

func abort(c *gin.Context, err error) {
	utils.HandleServiceError(c, err)
	c.Abort()
}
