// Package middleware holds gin middleware for the HTTP API: JWT auth and
// request logging. Grounded on the teacher's
// services/api-gateway/internal/middleware/auth.go, adapted from the
// golang-jwt/jwt/v4 API the teacher uses to the v5 API pinned in go.mod
// (jwt.ParseWithClaims + jwt.WithValidMethods replace the teacher's
// manual signing-method check inside the keyfunc).
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jstittsworth/pitchsim/pkg/utils"
)

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// claims is the payload of run-operator tokens: who they are and their
// role. The role is stored in the request context; the start-run routes
// only require a valid token and do not check it.
type claims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func parseToken(tokenString, secret string) (*claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return c, nil
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			utils.SendError(c, http.StatusUnauthorized, utils.NewAppError(utils.ErrCodeUnauthorized, "missing bearer token"))
			c.Abort()
			return
		}

		parsed, err := parseToken(tokenString, jwtSecret)
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, utils.NewAppError(utils.ErrCodeUnauthorized, "invalid token", err.Error()))
			c.Abort()
			return
		}

		c.Set(contextKeyUserID, parsed.UserID)
		c.Set(contextKeyRole, parsed.Role)
		c.Next()
	}
}

// OptionalAuth attaches claims to the context when a valid token is
// present, but never rejects the request - used for read-only progress
// endpoints that are also reachable anonymously.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		parsed, err := parseToken(tokenString, jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		c.Set(contextKeyUserID, parsed.UserID)
		c.Set(contextKeyRole, parsed.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose token role does not match one of
// the allowed roles. Must run after AuthRequired.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(contextKeyRole)
		roleStr, _ := role.(string)
		for _, a := range allowed {
			if roleStr == a {
				c.Next()
				return
			}
		}
		utils.SendError(c, http.StatusForbidden, utils.NewAppError(utils.ErrCodeForbidden, "insufficient role"))
		c.Abort()
	}
}
