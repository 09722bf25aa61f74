package middleware

import (
	"alert-srv/pkg/discord"
	"alert-srv/pkg/log"
	"alert-srv/pkg/response"
	"alert-srv/pkg/tracing"

	"github.com/gin-gonic/gin"
)

// Recovery answers a panicking handler with a 500. Unmapped domain errors reach it
// this way, and d, when set, receives the bug report.
func Recovery(l log.Logger, d discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ctx := c.Request.Context()
			l.Errorf(ctx, "internal.middleware.Recovery: %v method=%s path=%s trace=%s",
				rec, c.Request.Method, c.Request.URL.Path, tracing.TraceID(ctx))
			response.PanicError(c, rec, d)
			c.Abort()
		}()
		c.Next()
	}
}
