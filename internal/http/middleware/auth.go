package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// SessionCookie mirrors the handlers' cookie name; the protect middleware
// falls back to it when no Authorization header is present.
const SessionCookie = "session"

// AuthMW wraps the auth service for the protect middleware
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// Protect returns the authentication guard. It extracts the access token
// from the Authorization header or the session cookie, resolves it to a
// live verified account and attaches the account to the request context.
func (mw *AuthMW) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrNotAuthenticated.Error()})
			c.Abort()
			return
		}

		account, err := mw.authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			msg := err.Error()
			if !isAuthError(err) {
				status = http.StatusInternalServerError
				msg = "Authentication failed"
			}
			c.JSON(status, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set("account", account)
		c.Set("account_id", account.ID)
		c.Set("account_role", account.Role)

		c.Next()
	}
}

// RequireRoles restricts a route to the given roles. Plain membership test
// over the enumerated role set; the protect middleware must run first.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get("account_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": domain.ErrNotAuthenticated.Error()})
			c.Abort()
			return
		}

		if _, ok := allowed[role.(string)]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) ||
		errors.Is(err, domain.ErrTokenInvalid) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrAccountGone) ||
		errors.Is(err, domain.ErrNotVerified) ||
		errors.Is(err, domain.ErrStalePassword)
}
