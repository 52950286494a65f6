package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Authenticate resolves the bearer token or session cookie and stores the
// principal on the request context. Requests without a session continue
// anonymously.
func Authenticate(resolver Resolver, cookieName string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}

		if token == "" {
			c.Next()
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve session", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			return
		}

		if principal != nil {
			c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no principal
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c.Request.Context()) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
