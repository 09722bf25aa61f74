package middleware

import (
	"alert-srv/pkg/response"
	"alert-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Auth verifies the bearer token and stores the caller scope in the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token := scope.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			m.l.Warnf(ctx, "internal.middleware.Auth.BearerToken: missing bearer token path=%s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		payload, err := m.tokens.Verify(token)
		if err != nil {
			m.l.Warnf(ctx, "internal.middleware.Auth.Verify: %v path=%s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := payload.Scope()
		c.Set(scope.GinTenantKey, sc.TenantID)
		c.Request = c.Request.WithContext(scope.SetScopeToContext(ctx, sc))
		c.Next()
	}
}
