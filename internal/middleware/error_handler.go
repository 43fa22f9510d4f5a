package middleware

import (
	"net/http"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// requestLog returns an event carrying request_id and, behind JWTAuth, the
// owner of the session.
func requestLog(c *gin.Context, ev *zerolog.Event) *zerolog.Event {
	ev = ev.Str("request_id", c.GetString(RequestIDKey))
	if owner, ok := c.Get(OwnerKey); ok {
		ev = ev.Interface("owner_id", owner)
	}
	return ev
}

// ErrorHandler turns errors attached with c.Error into a generic 500 and logs
// the real cause. Responses already on the wire (PDF downloads, the event
// stream) are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestLog(c, log.Error()).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err.Err).
			Msg("unhandled error")

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Interno())
	}
}

// Recovery converts panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestLog(c, log.Error()).
					Interface("panic", r).
					Msg("panic recovered")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Interno())
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// Logger logs one line per request. Health probes go to debug so they do not
// drown the POS traffic.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			ev = log.Warn()
		case c.Request.URL.Path == "/health":
			ev = log.Debug()
		}
		requestLog(c, ev).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
